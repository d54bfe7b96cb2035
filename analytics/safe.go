package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// SafeDivide returns n/d, or fallback when d is zero or the result is not a
// finite number. Every ratio in this package goes through it.
func SafeDivide(n, d, fallback float64) float64 {
	if d == 0 {
		return fallback
	}
	q := n / d
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return fallback
	}
	return q
}

// clamp bounds a score input to [0, 100].
func clamp(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x < 0:
		return 0
	case x > 100:
		return 100
	}
	return x
}

// plSum accumulates P&L exactly so totals do not depend on summation order.
type plSum struct {
	d decimal.Decimal
	n int
}

func (s *plSum) add(t Trade) {
	if !t.HasPL() {
		return
	}
	s.d = s.d.Add(decimal.NewFromFloat(*t.ProfitLoss))
	s.n++
}

func (s plSum) total() float64 {
	return s.d.InexactFloat64()
}

func (s plSum) mean() float64 {
	return SafeDivide(s.total(), float64(s.n), 0)
}
