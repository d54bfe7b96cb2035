package web

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rustyeddy/tradejournal/analytics"
)

const (
	wsWriteWait = 10 * time.Second
	wsIdleWait  = 5 * time.Minute
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// ReportRequest is one filter selection sent over /ws/report. Fields take
// the same values as the /api/report query parameters.
type ReportRequest struct {
	Account   string `json:"account,omitempty"`
	Symbol    string `json:"symbol,omitempty"`
	Direction string `json:"direction,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
	Range     string `json:"range,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

// ReportMessage answers a ReportRequest. Exactly one field is set.
type ReportMessage struct {
	Report *analytics.Report `json:"report,omitempty"`
	Error  string            `json:"error,omitempty"`
}

func (r ReportRequest) values() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("account", r.Account)
	set("symbol", r.Symbol)
	set("direction", r.Direction)
	set("outcome", r.Outcome)
	set("range", r.Range)
	set("currency", r.Currency)
	return q
}

// handleReportWS keeps a connection open and recomputes the report from the
// journal for every filter selection the client sends. Bad selections get
// an error message; the connection stays up.
func (s *Server) handleReportWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Debug("report stream opened", "remote", r.RemoteAddr)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleWait))

		var req ReportRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("report stream read", "error", err)
			}
			return
		}

		msg := s.reportFor(r, req)

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			s.logger.Warn("report stream write", "error", err)
			return
		}
	}
}

func (s *Server) reportFor(r *http.Request, req ReportRequest) ReportMessage {
	q := req.values()
	f, err := s.filterFromQuery(q)
	if err != nil {
		return ReportMessage{Error: err.Error()}
	}

	trades, err := s.loadTrades(r.Context(), req.Currency)
	if err != nil {
		if errors.Is(err, analytics.ErrUnknownCurrency) {
			return ReportMessage{Error: err.Error()}
		}
		s.logger.Error("load trades", "error", err)
		return ReportMessage{Error: "internal error"}
	}

	report := analytics.Analyze(trades, f, s.config.Analytics.Options())
	return ReportMessage{Report: &report}
}
