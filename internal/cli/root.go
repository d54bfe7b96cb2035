package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logger"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/journal/postgres"
)

// RootConfig carries the persistent flags and what PersistentPreRunE
// builds from them.
type RootConfig struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
	EnvFile    string

	Config *config.Config
	Log    *logger.Logger
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:   "tradejournal",
		Short: "Trade journal and performance analytics",
		Long: `Tradejournal keeps a SQLite or PostgreSQL journal of closed trades and turns it into
performance analytics: win rate, profit factor, equity and drawdown
series, a P&L calendar, streaks and a composite score.

Trades come in through broker CSV exports or the add command and can
be explored from the command line or over a small JSON API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite journal database (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().StringVar(&rc.EnvFile, "env-file", ".env", "dotenv file with overrides")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.load()
	}

	cmd.AddCommand(
		newImportCmd(rc),
		newAddCmd(rc),
		newTradesCmd(rc),
		newDeleteCmd(rc),
		newAccountCmd(rc),
		newStatsCmd(rc),
		newCalendarCmd(rc),
		newSeriesCmd(rc),
		newServeCmd(rc),
		newConfigCmd(rc),
		newVersionCmd(),
	)

	return cmd
}

// load resolves configuration in order: defaults, config file, environment,
// then explicit flags.
func (rc *RootConfig) load() error {
	cfg := config.Default()
	if rc.ConfigPath != "" {
		loaded, err := config.LoadFromFile(rc.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(rc.EnvFile); err != nil {
		return err
	}
	if rc.DBPath != "" {
		cfg.Journal.Driver = config.DriverSQLite
		cfg.Journal.DBPath = rc.DBPath
	}
	if rc.LogLevel != "" {
		cfg.Logging.Level = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	rc.Config = cfg
	rc.Log = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

func (rc *RootConfig) openStore() (journal.Store, error) {
	jc := rc.Config.Journal
	if jc.Driver == config.DriverPostgres {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		s, err := postgres.Open(ctx, jc.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		rc.Log.Debug("journal opened", "driver", jc.Driver)
		return s, nil
	}

	j, err := journal.NewSQLite(jc.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	rc.Log.Debug("journal opened", "driver", config.DriverSQLite, "path", jc.DBPath)
	return j, nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
