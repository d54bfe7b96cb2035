package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/internal/web"
)

func newServeCmd(rc *RootConfig) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analytics JSON API",
		Long: `Serve the analytics over HTTP until interrupted.

Endpoints:
  GET /api/report    metrics, series, score and breakdowns
  GET /api/calendar  daily cells and summary for ?month=YYYY-MM
  GET /api/trades    filtered trades, newest first
  GET /ws/report     websocket; send filter JSON, receive a report per message
  GET /healthz

Filters are passed as query parameters: account, symbol, direction,
outcome, range and currency.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				rc.Config.Web.Port = port
			}

			j, err := rc.openStore()
			if err != nil {
				return err
			}
			defer j.Close()

			srv := web.NewServer(j, rc.Config, rc.Log)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				rc.Log.Info("shutdown signal received", "signal", sig.String())
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				rc.Log.Error("web server shutdown error", "error", err)
				return err
			}
			rc.Log.Info("web server stopped")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port (overrides config)")
	return cmd
}
