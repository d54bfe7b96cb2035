package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logger"
	"github.com/rustyeddy/tradejournal/journal"
)

type Server struct {
	httpServer *http.Server
	store      journal.Store
	config     *config.Config
	logger     *logger.Logger

	// now anchors relative date ranges; tests pin it.
	now func() time.Time
}

func NewServer(store journal.Store, cfg *config.Config, log *logger.Logger) *Server {
	s := &Server{
		store:  store,
		config: cfg,
		logger: log,
		now:    time.Now,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/report", s.handleReport)
	mux.HandleFunc("GET /api/calendar", s.handleCalendar)
	mux.HandleFunc("GET /api/trades", s.handleTrades)
	mux.HandleFunc("GET /ws/report", s.handleReportWS)
	return mux
}

func (s *Server) Start() error {
	s.logger.Info("web server starting", "port", s.config.Web.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
