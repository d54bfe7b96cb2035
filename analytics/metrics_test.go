package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pl(v float64) *float64 { return &v }

func trade(outcome Outcome, p *float64) Trade {
	return Trade{Outcome: outcome, ProfitLoss: p}
}

func TestComputeMetricsMixed(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		trade(Win, pl(100)),
		trade(Loss, pl(-50)),
		trade(Win, pl(80)),
	}

	m := ComputeMetrics(trades)

	assert.Equal(t, 3, m.TotalTrades)
	assert.Equal(t, 2, m.Wins)
	assert.Equal(t, 1, m.Losses)
	assert.InDelta(t, 66.7, m.WinRate, 0.05)
	assert.InDelta(t, 130.0, m.TotalPL, 1e-9)
	assert.InDelta(t, 90.0, m.AvgWin, 1e-9)
	assert.InDelta(t, -50.0, m.AvgLoss, 1e-9)
	assert.InDelta(t, 1.8, m.ProfitFactor, 1e-9)
	assert.InDelta(t, 100.0, m.LargestWin, 1e-9)
	assert.InDelta(t, -50.0, m.LargestLoss, 1e-9)
}

func TestComputeMetricsAllBreakeven(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		trade(Breakeven, pl(0)),
		trade(Breakeven, pl(0)),
		trade(Breakeven, nil),
	}

	m := ComputeMetrics(trades)

	assert.Equal(t, 3, m.Breakeven)
	assert.Zero(t, m.WinRate)
	assert.Zero(t, m.ProfitFactor)
	assert.Zero(t, m.AvgWin)
	assert.Zero(t, m.AvgLoss)
	assert.Zero(t, m.TotalPL)
	assert.Zero(t, m.AvgPL)
}

func TestComputeMetricsOutcomeIsAuthoritative(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		trade(Win, pl(100)),
		trade(Win, pl(-20)),
	}

	m := ComputeMetrics(trades)

	assert.Equal(t, 2, m.Wins)
	assert.InDelta(t, 40.0, m.AvgWin, 1e-9)
	assert.InDelta(t, 80.0, m.TotalPL, 1e-9)
	// no Loss-labelled trade, so no profit factor even though one win lost money
	assert.Zero(t, m.ProfitFactor)
}

func TestComputeMetricsEmpty(t *testing.T) {
	t.Parallel()

	m := ComputeMetrics(nil)

	assert.Equal(t, Metrics{}, m)

	s := CompositeScore(m)
	assert.Equal(t, 0, s.Composite)
}

func TestComputeMetricsNullPLExcludedFromAverages(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		trade(Win, pl(60)),
		trade(Win, nil),
		trade(Loss, pl(-30)),
	}

	m := ComputeMetrics(trades)

	assert.Equal(t, 2, m.Wins)
	assert.InDelta(t, 60.0, m.AvgWin, 1e-9, "nil P&L must not dilute the average")
	assert.InDelta(t, 15.0, m.AvgPL, 1e-9)
	assert.InDelta(t, 30.0, m.TotalPL, 1e-9)
}

func TestComputeMetricsLossWithPositivePLAccepted(t *testing.T) {
	t.Parallel()

	m := ComputeMetrics([]Trade{trade(Win, pl(50)), trade(Loss, pl(10))})

	assert.InDelta(t, 10.0, m.AvgLoss, 1e-9)
	assert.InDelta(t, 5.0, m.ProfitFactor, 1e-9)
}

func TestPartitionCompleteness(t *testing.T) {
	t.Parallel()

	sets := [][]Trade{
		nil,
		{trade(Win, pl(1))},
		{trade(Win, nil), trade(Loss, pl(-1)), trade(Breakeven, pl(0)), trade(OutcomeNone, pl(5)), trade("Scratch", nil)},
		{trade(OutcomeNone, nil), trade(OutcomeNone, nil)},
	}

	for _, trades := range sets {
		m := ComputeMetrics(trades)
		assert.Equal(t, m.TotalTrades, m.Wins+m.Losses+m.Breakeven+m.Other)
	}
}

func TestComputeMetricsDeterministic(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		trade(Win, pl(0.1)),
		trade(Win, pl(0.2)),
		trade(Loss, pl(-0.3)),
		trade(Win, pl(1e-7)),
	}

	first := ComputeMetrics(trades)
	second := ComputeMetrics(trades)
	require.Equal(t, first, second)
	assert.InDelta(t, 1e-7, first.TotalPL, 1e-15)
}

func TestSafeDivide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		n, d, fb float64
		want     float64
	}{
		{"normal", 10, 4, 0, 2.5},
		{"zero denominator", 10, 0, 0, 0},
		{"custom fallback", 1, 0, -1, -1},
		{"zero numerator", 0, 5, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeDivide(tt.n, tt.d, tt.fb))
		})
	}
}
