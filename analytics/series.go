package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	DefaultCumulativeWindow = 20
	DefaultDailyWindow      = 10
)

// CumulativePoint is one step of the running P&L curve.
type CumulativePoint struct {
	Index        int     `json:"index"`
	CumulativePL float64 `json:"cumulativePL"`
	Symbol       string  `json:"symbol"`
	Date         string  `json:"date"`
}

// DailyPoint is the net P&L of one calendar day.
type DailyPoint struct {
	Date  string  `json:"date"`
	NetPL float64 `json:"netPL"`
	Count int     `json:"count"`
}

// DrawdownPoint is the distance below the running peak after a trade.
type DrawdownPoint struct {
	Date         string  `json:"date"`
	CumulativePL float64 `json:"cumulativePL"`
	Peak         float64 `json:"peak"`
	Drawdown     float64 `json:"drawdown"`
}

// ScatterPoint pairs an entry hour with the trade result.
type ScatterPoint struct {
	Hour int     `json:"hour"`
	PL   float64 `json:"pl"`
}

// Chronological returns the trades oldest first. Storage hands trades out
// newest first, so this is a reversal, not a sort.
func Chronological(trades []Trade) []Trade {
	out := make([]Trade, len(trades))
	for i, t := range trades {
		out[len(trades)-1-i] = t
	}
	return out
}

// CumulativeSeries takes the n most recent trades (storage order, newest
// first), puts them in chronological order and prefix-sums their P&L.
// n <= 0 or n beyond the collection size means every trade.
func CumulativeSeries(trades []Trade, n int) []CumulativePoint {
	if n <= 0 || n > len(trades) {
		n = len(trades)
	}
	recent := Chronological(trades[:n])

	out := make([]CumulativePoint, 0, len(recent))
	running := decimal.Zero
	for i, t := range recent {
		running = running.Add(decimal.NewFromFloat(t.PL()))
		out = append(out, CumulativePoint{
			Index:        i + 1,
			CumulativePL: running.InexactFloat64(),
			Symbol:       t.Symbol,
			Date:         t.Date,
		})
	}
	return out
}

// DailySeries groups dated trades by day, sums each day and returns the last
// n days in ascending order. n <= 0 keeps every day.
func DailySeries(trades []Trade, n int) []DailyPoint {
	type bucket struct {
		sum   decimal.Decimal
		count int
	}
	days := make(map[string]*bucket)
	for _, t := range trades {
		day, ok := t.Day()
		if !ok {
			continue
		}
		b, ok := days[day]
		if !ok {
			b = &bucket{}
			days[day] = b
		}
		b.sum = b.sum.Add(decimal.NewFromFloat(t.PL()))
		b.count++
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if n > 0 && len(keys) > n {
		keys = keys[len(keys)-n:]
	}

	out := make([]DailyPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, DailyPoint{Date: k, NetPL: days[k].sum.InexactFloat64(), Count: days[k].count})
	}
	return out
}

// DrawdownSeries walks the dated trades in date order and reports how far the
// running total sits below its best value so far. The peak starts at zero,
// so every point is <= 0 and a new high resets the point to exactly 0.
func DrawdownSeries(trades []Trade) []DrawdownPoint {
	dated := datedChronological(trades)

	out := make([]DrawdownPoint, 0, len(dated))
	running, peak := decimal.Zero, decimal.Zero
	for _, d := range dated {
		running = running.Add(decimal.NewFromFloat(d.trade.PL()))
		if running.GreaterThan(peak) {
			peak = running
		}
		out = append(out, DrawdownPoint{
			Date:         d.trade.Date,
			CumulativePL: running.InexactFloat64(),
			Peak:         peak.InexactFloat64(),
			Drawdown:     running.Sub(peak).InexactFloat64(),
		})
	}
	return out
}

// MaxDrawdown is the deepest point of the drawdown series (<= 0).
func MaxDrawdown(series []DrawdownPoint) float64 {
	var worst float64
	for _, p := range series {
		if p.Drawdown < worst {
			worst = p.Drawdown
		}
	}
	return worst
}

// IntradayScatter emits one point per trade with a usable entry time.
func IntradayScatter(trades []Trade) []ScatterPoint {
	out := make([]ScatterPoint, 0, len(trades))
	for _, t := range Chronological(trades) {
		h, ok := t.Hour()
		if !ok {
			continue
		}
		out = append(out, ScatterPoint{Hour: h, PL: t.PL()})
	}
	return out
}

type datedTrade struct {
	trade Trade
	unix  int64
}

// datedChronological drops undated trades and sorts the rest by date. Ties
// keep their chronological storage order.
func datedChronological(trades []Trade) []datedTrade {
	out := make([]datedTrade, 0, len(trades))
	for _, t := range Chronological(trades) {
		ts, ok := t.Time()
		if !ok {
			continue
		}
		out = append(out, datedTrade{trade: t, unix: ts.UnixNano()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].unix < out[j].unix })
	return out
}
