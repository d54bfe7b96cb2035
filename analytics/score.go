package analytics

import "math"

// ConsistencyTarget is the trade count at which the volume sub-score maxes out.
const ConsistencyTarget = 50

// Score is the composite 0-100 performance score and its four inputs.
type Score struct {
	Composite         int     `json:"composite"`
	ProfitFactorScore float64 `json:"profitFactorScore"`
	WinRateScore      float64 `json:"winRateScore"`
	ConsistencyScore  float64 `json:"consistencyScore"`
	AvgWinLossScore   float64 `json:"avgWinLossScore"`
}

// Radar is the five-axis breakdown behind the radar chart.
type Radar struct {
	WinRate     float64 `json:"winRate"`
	Profit      float64 `json:"profit"`
	Consistency float64 `json:"consistency"`
	Recovery    float64 `json:"recovery"`
	AvgWinLoss  float64 `json:"avgWinLoss"`
}

// CompositeScore blends four clamped sub-scores into one rounded number.
func CompositeScore(m Metrics) Score {
	s := Score{
		ProfitFactorScore: clamp(m.ProfitFactor * 10),
		WinRateScore:      clamp(m.WinRate),
		ConsistencyScore:  clamp(SafeDivide(float64(m.TotalTrades), ConsistencyTarget, 0) * 100),
		AvgWinLossScore:   clamp(profitFactor(m.AvgWin, m.AvgLoss) * 20),
	}
	mean := (s.ProfitFactorScore + s.WinRateScore + s.ConsistencyScore + s.AvgWinLossScore) / 4
	s.Composite = int(math.Round(mean))
	return s
}

// RadarBreakdown exposes the score inputs plus the recovery proxy: total P&L
// measured in units of the worst single loss, times 25. Without any losing
// trade the total P&L itself is used. Every axis is clamped to [0, 100].
func RadarBreakdown(m Metrics) Radar {
	s := CompositeScore(m)

	recovery := m.TotalPL
	if m.LargestLoss < 0 {
		recovery = SafeDivide(m.TotalPL, math.Abs(m.LargestLoss), 0) * 25
	}

	return Radar{
		WinRate:     s.WinRateScore,
		Profit:      s.ProfitFactorScore,
		Consistency: s.ConsistencyScore,
		Recovery:    clamp(recovery),
		AvgWinLoss:  s.AvgWinLossScore,
	}
}
