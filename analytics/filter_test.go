package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func sampleTrades() []Trade {
	return []Trade{
		{ID: "1", Date: "2026-10-19", Symbol: "ES", Direction: Long, Outcome: Win, AccountID: "a1", ProfitLoss: pl(100)},
		{ID: "2", Date: "2026-10-15", Symbol: "NQ", Direction: Short, Outcome: Loss, AccountID: "a1", ProfitLoss: pl(-40)},
		{ID: "3", Date: "2026-10-01", Symbol: "ES", Direction: Short, Outcome: Win, AccountID: "a2", ProfitLoss: pl(25)},
		{ID: "4", Date: "2026-08-01", Symbol: "CL", Direction: Long, Outcome: Breakeven, AccountID: "a2", ProfitLoss: pl(0)},
		{ID: "5", Date: "unknown", Symbol: "ES", Direction: "hedge", Outcome: OutcomeNone, AccountID: "a1"},
	}
}

func ids(trades []Trade) []string {
	out := make([]string, 0, len(trades))
	for _, t := range trades {
		out = append(out, t.ID)
	}
	return out
}

func TestApplyFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", AllTrades(), []string{"1", "2", "3", "4", "5"}},
		{"zero value", Filter{}, []string{"1", "2", "3", "4", "5"}},
		{"account", Filter{AccountID: "a2"}, []string{"3", "4"}},
		{"unknown account", Filter{AccountID: "nope"}, []string{}},
		{"symbol", Filter{Symbol: "ES"}, []string{"1", "3", "5"}},
		{"direction normalized", Filter{Direction: "sell"}, []string{"2", "3"}},
		{"outcome", Filter{Outcome: "Win"}, []string{"1", "3"}},
		{"outcome lower case", Filter{Outcome: "win"}, []string{"1", "3"}},
		{"outcome alias", Filter{Outcome: "break even"}, []string{"4"}},
		{"7d", Filter{DateRange: "7d", Now: fixedNow}, []string{"1", "2", "5"}},
		{"30d", Filter{DateRange: "30d", Now: fixedNow}, []string{"1", "2", "3", "5"}},
		{"combined", Filter{Symbol: "ES", Outcome: "Win", DateRange: "7d", Now: fixedNow}, []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ApplyFilters(sampleTrades(), tt.filter)))
		})
	}
}

func TestApplyFiltersDateRangeKeepsUndated(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		{ID: "today", Date: "2026-10-19"},
		{ID: "old", Date: "2026-10-09"},
		{ID: "undated", Date: "someday"},
	}

	got := ApplyFilters(trades, Filter{DateRange: "7d", Now: fixedNow})
	assert.Equal(t, []string{"today", "undated"}, ids(got))
}

func TestApplyFiltersDoesNotMutate(t *testing.T) {
	t.Parallel()

	trades := sampleTrades()
	before := ids(trades)

	out := ApplyFilters(trades, AllTrades())
	require.Len(t, out, len(trades))
	out[0].Symbol = "changed"

	assert.Equal(t, before, ids(trades))
	assert.Equal(t, "ES", trades[0].Symbol)
}

func TestFilterMonotonicity(t *testing.T) {
	t.Parallel()

	trades := sampleTrades()
	steps := []Filter{
		{Now: fixedNow},
		{Symbol: "ES", Now: fixedNow},
		{Symbol: "ES", AccountID: "a1", Now: fixedNow},
		{Symbol: "ES", AccountID: "a1", DateRange: "7d", Now: fixedNow},
		{Symbol: "ES", AccountID: "a1", DateRange: "7d", Outcome: "Win", Now: fixedNow},
		{Symbol: "ES", AccountID: "a1", DateRange: "7d", Outcome: "Win", Direction: "long", Now: fixedNow},
	}

	prev := len(trades)
	for _, f := range steps {
		n := ComputeMetrics(ApplyFilters(trades, f)).TotalTrades
		assert.LessOrEqual(t, n, prev)
		prev = n
	}
}

func TestApplyFiltersIdempotent(t *testing.T) {
	t.Parallel()

	f := Filter{DateRange: "30d", Now: fixedNow}
	a := Analyze(sampleTrades(), f, DefaultOptions())
	b := Analyze(sampleTrades(), f, DefaultOptions())
	assert.Equal(t, a, b)
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"all", 0, false},
		{"", 0, false},
		{"7d", 7, false},
		{"30d", 30, false},
		{"90D", 90, false},
		{"0d", 0, true},
		{"week", 0, true},
		{"-3d", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRange(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, AllTrades().Validate())
	assert.NoError(t, Filter{Direction: "buy", DateRange: "7d"}.Validate())
	assert.Error(t, Filter{Direction: "sideways"}.Validate())
	assert.Error(t, Filter{DateRange: "yesterday"}.Validate())
}

func TestIsClosedStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"Closed", "closed", "Cerrado", "Fermé", "Geschlossen", "Chiuso", "Fechado", "Закрыта"} {
		assert.True(t, IsClosedStatus(s), s)
	}
	for _, s := range []string{"Open", "", "Closing", "closed ", "Partially Closed"} {
		assert.False(t, IsClosedStatus(s), s)
	}
}
