package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOne(t *testing.T) {
	t.Parallel()

	tr := NormalizeOne(RawTrade{
		"id":          "T1",
		"date":        "2024-03-15",
		"symbol":      " ES ",
		"direction":   "buy",
		"status":      "Closed",
		"outcome":     "win",
		"profit_loss": "$1,234.50",
		"account_id":  "acc-1",
		"strategy_id": "orb",
		"open_time":   "09:45",
	})

	assert.Equal(t, "T1", tr.ID)
	assert.Equal(t, "2024-03-15", tr.Date)
	assert.Equal(t, "ES", tr.Symbol)
	assert.Equal(t, Long, tr.Direction)
	assert.Equal(t, "Closed", tr.Status)
	assert.Equal(t, Win, tr.Outcome)
	require.NotNil(t, tr.ProfitLoss)
	assert.InDelta(t, 1234.5, *tr.ProfitLoss, 1e-9)
	assert.Equal(t, "acc-1", tr.AccountID)
	assert.Equal(t, "orb", tr.StrategyID)
	assert.Equal(t, "09:45", tr.EntryTime)
}

func TestNormalizeDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Direction
	}{
		{"buy", Long},
		{"Long", Long},
		{"BUY", Long},
		{"sell", Short},
		{"short", Short},
		{" Sell ", Short},
		{"hedge", Direction("hedge")},
		{"", Direction("")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirection(tt.in))
		})
	}
}

func TestNormalizeOutcome(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Win, NormalizeOutcome("WIN"))
	assert.Equal(t, Loss, NormalizeOutcome("loss"))
	assert.Equal(t, Breakeven, NormalizeOutcome("Break Even"))
	assert.Equal(t, OutcomeNone, NormalizeOutcome("  "))
	assert.Equal(t, Outcome("Scratch"), NormalizeOutcome("Scratch"))
}

func TestParsePL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"float", 12.5, pl(12.5)},
		{"int", 7, pl(7)},
		{"json number", json.Number("-20"), pl(-20)},
		{"string", "-20.25", pl(-20.25)},
		{"currency", "$1,000", pl(1000)},
		{"parentheses", "(50.00)", pl(-50)},
		{"garbage", "n/a", nil},
		{"empty", "", nil},
		{"nil", nil, nil},
		{"bool", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePL(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestNormalizeKeepsMalformedTrades(t *testing.T) {
	t.Parallel()

	raw := []RawTrade{
		{"id": "ok", "date": "2024-01-02", "profit_loss": 10.0, "outcome": "Win"},
		{"id": "bad", "date": "yesterday-ish", "profit_loss": "lots", "outcome": "Loss"},
		{},
	}

	trades := Normalize(raw)
	require.Len(t, trades, 3)

	bad := trades[1]
	assert.Equal(t, "bad", bad.ID)
	assert.Equal(t, "yesterday-ish", bad.Date, "dates are not coerced away")
	assert.Nil(t, bad.ProfitLoss)
	assert.Equal(t, Loss, bad.Outcome)

	_, ok := bad.Time()
	assert.False(t, ok)

	m := ComputeMetrics(trades)
	assert.Equal(t, 3, m.TotalTrades)
}

func TestNormalizeKeyAliases(t *testing.T) {
	t.Parallel()

	tr := NormalizeOne(RawTrade{
		"_id":        "abc",
		"trade_date": "2024-06-01T14:30:00Z",
		"ticker":     "NQ",
		"side":       "short",
		"pnl":        -42.0,
		"accountId":  "a2",
		"entry_time": "14:30",
	})

	assert.Equal(t, "abc", tr.ID)
	assert.Equal(t, "NQ", tr.Symbol)
	assert.Equal(t, Short, tr.Direction)
	assert.Equal(t, "a2", tr.AccountID)
	require.NotNil(t, tr.ProfitLoss)
	assert.Equal(t, -42.0, *tr.ProfitLoss)

	day, ok := tr.Day()
	assert.True(t, ok)
	assert.Equal(t, "2024-06-01", day)

	h, ok := tr.Hour()
	assert.True(t, ok)
	assert.Equal(t, 14, h)
}

func TestDecodeRaw(t *testing.T) {
	t.Parallel()

	raw, err := DecodeRaw([]byte(`[{"id":"1","profit_loss":10},{"id":"2","profit_loss":"-5"}]`))
	require.NoError(t, err)
	require.Len(t, raw, 2)

	trades := Normalize(raw)
	assert.InDelta(t, 10.0, *trades[0].ProfitLoss, 1e-9)
	assert.InDelta(t, -5.0, *trades[1].ProfitLoss, 1e-9)

	raw, err = DecodeRaw([]byte(`{"id":"solo"}`))
	require.NoError(t, err)
	assert.Len(t, raw, 1)

	raw, err = DecodeRaw([]byte("[{\"id\":\"1\"}]\n\n"))
	require.NoError(t, err, "trailing whitespace is fine")
	assert.Len(t, raw, 1)
}

func TestDecodeRawInvalidShape(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		`42`, `"trades"`, `[1,2]`, `[{"id":"1"}, "x"]`, `not json`, `null`,
		`[{"outcome":"Win"}] {"garbage":`,
		`{"id":"1"}{"id":"2"}`,
	} {
		_, err := DecodeRaw([]byte(in))
		assert.ErrorIs(t, err, ErrInvalidInput, in)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"2024-05-01",
		"2024-05-01T10:00:00Z",
		"2024-05-01 10:00:00",
		"2024/05/01",
		"05/01/2024",
		"May 1, 2024",
	} {
		ts, ok := ParseDate(s)
		require.True(t, ok, s)
		assert.Equal(t, 2024, ts.Year(), s)
		assert.Equal(t, 5, int(ts.Month()), s)
		assert.Equal(t, 1, ts.Day(), s)
	}

	_, ok := ParseDate("soon")
	assert.False(t, ok)
}
