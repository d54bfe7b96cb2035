package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func outcomes(chrono ...Outcome) []Trade {
	trades := make([]Trade, 0, len(chrono))
	for _, o := range chrono {
		trades = append(trades, Trade{Outcome: o})
	}
	return newestFirst(trades...)
}

func TestAnalyzeStreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		trades []Trade
		want   Streaks
	}{
		{"empty", nil, Streaks{}},
		{
			"simple runs",
			outcomes(Win, Win, Win, Loss, Loss, Win),
			Streaks{MaxWinStreak: 3, MaxLossStreak: 2, CurrentWinStreak: 1},
		},
		{
			"breakeven resets",
			outcomes(Win, Win, Breakeven, Win, Win),
			Streaks{MaxWinStreak: 2, CurrentWinStreak: 2},
		},
		{
			"missing outcome resets",
			outcomes(Loss, Loss, OutcomeNone, Loss),
			Streaks{MaxLossStreak: 2, CurrentLossStreak: 1},
		},
		{
			"loss to win starts at one",
			outcomes(Loss, Loss, Loss, Win),
			Streaks{MaxWinStreak: 1, MaxLossStreak: 3, CurrentWinStreak: 1},
		},
		{
			"ends on breakeven",
			outcomes(Win, Breakeven),
			Streaks{MaxWinStreak: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzeStreaks(tt.trades))
		})
	}
}

func TestAnalyzeStreaksUsesChronologicalOrder(t *testing.T) {
	t.Parallel()

	// storage order: newest first. Chronologically this is L, W, W, W.
	trades := []Trade{{Outcome: Win}, {Outcome: Win}, {Outcome: Win}, {Outcome: Loss}}

	s := AnalyzeStreaks(trades)
	assert.Equal(t, 3, s.CurrentWinStreak)
	assert.Equal(t, 0, s.CurrentLossStreak)
}
