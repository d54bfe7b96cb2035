package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialReport(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/report", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req ReportRequest) ReportMessage {
	t.Helper()
	require.NoError(t, conn.WriteJSON(req))

	var msg ReportMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestReportStream(t *testing.T) {
	t.Parallel()

	conn := dialReport(t, newTestServer(t))

	msg := roundTrip(t, conn, ReportRequest{})
	require.NotNil(t, msg.Report)
	assert.Empty(t, msg.Error)
	assert.Equal(t, 4, msg.Report.Metrics.TotalTrades)
	assert.InDelta(t, 202.0, msg.Report.Metrics.TotalPL, 1e-9)

	msg = roundTrip(t, conn, ReportRequest{Symbol: "ES"})
	require.NotNil(t, msg.Report)
	assert.Equal(t, 2, msg.Report.Metrics.TotalTrades)
	assert.InDelta(t, 150.0, msg.Report.Metrics.TotalPL, 1e-9)

	msg = roundTrip(t, conn, ReportRequest{Currency: "USD"})
	require.NotNil(t, msg.Report)
	assert.InDelta(t, 210.0, msg.Report.Metrics.TotalPL, 1e-9)
}

func TestReportStreamErrorsKeepConnection(t *testing.T) {
	t.Parallel()

	conn := dialReport(t, newTestServer(t))

	msg := roundTrip(t, conn, ReportRequest{Range: "lastweek"})
	assert.Nil(t, msg.Report)
	assert.NotEmpty(t, msg.Error)

	msg = roundTrip(t, conn, ReportRequest{Currency: "JPY"})
	assert.Nil(t, msg.Report)
	assert.Contains(t, msg.Error, "unknown currency")

	msg = roundTrip(t, conn, ReportRequest{Account: "A"})
	require.NotNil(t, msg.Report)
	assert.Equal(t, 3, msg.Report.Metrics.TotalTrades)
}

func TestReportStreamRequiresUpgrade(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t), "/ws/report")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
