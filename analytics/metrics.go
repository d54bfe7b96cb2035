package analytics

import "math"

// Metrics is the scalar summary of a filtered trade set.
type Metrics struct {
	TotalTrades int `json:"totalTrades"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Breakeven   int `json:"breakeven"`
	// Other counts trades with no outcome or an unrecognized one.
	Other int `json:"other"`

	WinRate      float64 `json:"winRate"`
	TotalPL      float64 `json:"totalPL"`
	AvgPL        float64 `json:"avgPL"`
	AvgWin       float64 `json:"avgWin"`
	AvgLoss      float64 `json:"avgLoss"`
	ProfitFactor float64 `json:"profitFactor"`

	LargestWin  float64 `json:"largestWin"`
	LargestLoss float64 `json:"largestLoss"`
}

// ComputeMetrics derives Metrics in dependency order: counts, win rate,
// totals, averages, then profit factor. Averages divide by the number of
// trades that actually carry a P&L.
func ComputeMetrics(trades []Trade) Metrics {
	var (
		m                 Metrics
		all, wins, losses plSum
	)

	for _, t := range trades {
		m.TotalTrades++
		switch t.Outcome {
		case Win:
			m.Wins++
			wins.add(t)
		case Loss:
			m.Losses++
			losses.add(t)
		case Breakeven:
			m.Breakeven++
		default:
			m.Other++
		}
		all.add(t)

		if t.HasPL() {
			pl := *t.ProfitLoss
			m.LargestWin = math.Max(m.LargestWin, pl)
			m.LargestLoss = math.Min(m.LargestLoss, pl)
		}
	}

	m.WinRate = SafeDivide(float64(m.Wins), float64(m.TotalTrades), 0) * 100
	m.TotalPL = all.total()
	m.AvgPL = all.mean()
	m.AvgWin = wins.mean()
	m.AvgLoss = losses.mean()
	m.ProfitFactor = profitFactor(m.AvgWin, m.AvgLoss)
	return m
}

// profitFactor is |avgWin/avgLoss|, reported as 0 when either side is 0.
// That makes "no losses yet" and "no wins yet" read the same; callers that
// need to tell them apart look at Wins and Losses.
func profitFactor(avgWin, avgLoss float64) float64 {
	if avgWin == 0 || avgLoss == 0 {
		return 0
	}
	return math.Abs(SafeDivide(avgWin, avgLoss, 0))
}
