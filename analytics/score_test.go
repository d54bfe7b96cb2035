package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeScore(t *testing.T) {
	t.Parallel()

	m := ComputeMetrics([]Trade{
		trade(Win, pl(100)),
		trade(Loss, pl(-50)),
		trade(Win, pl(80)),
	})

	s := CompositeScore(m)
	assert.InDelta(t, 18.0, s.ProfitFactorScore, 1e-9)
	assert.InDelta(t, 66.67, s.WinRateScore, 0.01)
	assert.InDelta(t, 6.0, s.ConsistencyScore, 1e-9)
	assert.InDelta(t, 36.0, s.AvgWinLossScore, 1e-9)
	assert.Equal(t, 32, s.Composite)
}

func TestCompositeScoreClampsRunawayInputs(t *testing.T) {
	t.Parallel()

	m := Metrics{
		TotalTrades:  500,
		Wins:         500,
		WinRate:      100,
		AvgWin:       500,
		AvgLoss:      -10,
		ProfitFactor: 50,
	}

	s := CompositeScore(m)
	assert.Equal(t, 100.0, s.ProfitFactorScore)
	assert.Equal(t, 100.0, s.ConsistencyScore)
	assert.Equal(t, 100.0, s.AvgWinLossScore)
	assert.Equal(t, 100, s.Composite)
}

func TestCompositeScoreEmpty(t *testing.T) {
	t.Parallel()

	s := CompositeScore(ComputeMetrics(nil))
	assert.Equal(t, 0, s.Composite)
	assert.False(t, math.IsNaN(s.WinRateScore))

	r := RadarBreakdown(ComputeMetrics(nil))
	assert.Equal(t, Radar{}, r)
}

func TestRadarRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		trades []Trade
		want   float64
	}{
		{
			name:   "total over worst loss",
			trades: []Trade{trade(Win, pl(100)), trade(Loss, pl(-50)), trade(Win, pl(80))},
			want:   65,
		},
		{
			name:   "capped at 100",
			trades: []Trade{trade(Win, pl(1000)), trade(Loss, pl(-10))},
			want:   100,
		},
		{
			name:   "net negative floors at 0",
			trades: []Trade{trade(Win, pl(10)), trade(Loss, pl(-50))},
			want:   0,
		},
		{
			name:   "no losing trade uses total itself",
			trades: []Trade{trade(Win, pl(40)), trade(Win, pl(2))},
			want:   42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RadarBreakdown(ComputeMetrics(tt.trades))
			assert.InDelta(t, tt.want, r.Recovery, 1e-9)
			for _, v := range []float64{r.WinRate, r.Profit, r.Consistency, r.Recovery, r.AvgWinLoss} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 100.0)
			}
		})
	}
}
