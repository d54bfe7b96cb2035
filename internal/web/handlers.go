package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

type CalendarResponse struct {
	Month   string               `json:"month"`
	Days    []analytics.DayCell  `json:"days"`
	Summary analytics.MonthStats `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := s.filterFromQuery(q)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	trades, err := s.loadTrades(r.Context(), q.Get("currency"))
	if err != nil {
		s.writeLoadError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, analytics.Analyze(trades, f, s.config.Analytics.Options()))
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := s.filterFromQuery(q)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	month := f.Now
	if m := q.Get("month"); m != "" {
		month, err = time.Parse("2006-01", m)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid month %q: want YYYY-MM", m))
			return
		}
	}

	trades, err := s.loadTrades(r.Context(), q.Get("currency"))
	if err != nil {
		s.writeLoadError(w, err)
		return
	}

	view := analytics.ApplyFilters(trades, calendarFilter(f))
	prefix := month.Format("2006-01-")
	days := make([]analytics.DayCell, 0)
	for _, d := range analytics.BuildCalendar(view).Days() {
		if strings.HasPrefix(d.Date, prefix) {
			days = append(days, d)
		}
	}

	s.writeJSON(w, http.StatusOK, CalendarResponse{
		Month:   month.Format("2006-01"),
		Days:    days,
		Summary: analytics.MonthSummary(view, month.Year(), month.Month()),
	})
}

// calendarFilter drops the relative date range. A month view covers the
// whole requested month whatever window the other views use.
func calendarFilter(f analytics.Filter) analytics.Filter {
	f.DateRange = analytics.All
	return f
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := s.filterFromQuery(q)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	trades, err := s.loadTrades(r.Context(), q.Get("currency"))
	if err != nil {
		s.writeLoadError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, analytics.ApplyFilters(trades, f))
}

// filterFromQuery reads the filter selection. A missing range falls back to
// the configured default.
func (s *Server) filterFromQuery(q url.Values) (analytics.Filter, error) {
	f := analytics.Filter{
		AccountID: q.Get("account"),
		Symbol:    q.Get("symbol"),
		Direction: q.Get("direction"),
		Outcome:   q.Get("outcome"),
		DateRange: q.Get("range"),
		Now:       s.now(),
	}
	if f.DateRange == "" {
		f.DateRange = s.config.Analytics.DefaultRange
	}
	if err := f.Validate(); err != nil {
		return analytics.Filter{}, err
	}
	return f, nil
}

// loadTrades reads the journal newest first, converting P&L when currency
// is set.
func (s *Server) loadTrades(ctx context.Context, currency string) ([]analytics.Trade, error) {
	rates, err := s.config.Analytics.RateTable()
	if err != nil {
		return nil, err
	}
	return journal.LoadTradesIn(ctx, s.store, rates, currency)
}

func (s *Server) writeLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, analytics.ErrUnknownCurrency) {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.logger.Error("load trades", "error", err)
	s.writeError(w, http.StatusInternalServerError, errors.New("internal error"))
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
