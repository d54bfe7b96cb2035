package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DayCell is one calendar square.
type DayCell struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	TotalPL float64 `json:"totalPL"`

	// HasWin and HasLoss drive the win/loss markers independently.
	HasWin  bool `json:"hasWin"`
	HasLoss bool `json:"hasLoss"`
}

// Calendar maps a YYYY-MM-DD key to its cell.
type Calendar map[string]DayCell

// Days returns the cells sorted by date.
func (c Calendar) Days() []DayCell {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]DayCell, 0, len(keys))
	for _, k := range keys {
		out = append(out, c[k])
	}
	return out
}

// MonthStats summarizes one displayed calendar month.
type MonthStats struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Count   int        `json:"count"`
	Wins    int        `json:"wins"`
	Losses  int        `json:"losses"`
	Closed  int        `json:"closed"`
	TotalPL float64    `json:"totalPL"`
	WinRate float64    `json:"winRate"`
}

// BuildCalendar buckets dated trades by day. Undated trades are skipped.
func BuildCalendar(trades []Trade) Calendar {
	sums := make(map[string]decimal.Decimal)
	cal := make(Calendar)
	for _, t := range trades {
		day, ok := t.Day()
		if !ok {
			continue
		}
		c := cal[day]
		c.Date = day
		c.Count++
		if t.IsWin() {
			c.Wins++
			c.HasWin = true
		}
		if t.IsLoss() {
			c.Losses++
			c.HasLoss = true
		}
		sums[day] = sums[day].Add(decimal.NewFromFloat(t.PL()))
		c.TotalPL = sums[day].InexactFloat64()
		cal[day] = c
	}
	return cal
}

// MonthSummary aggregates the trades dated inside year/month. It uses plain
// calendar-month membership and ignores any relative date window, so it can
// disagree with a "last 30 days" view on purpose.
func MonthSummary(trades []Trade, year int, month time.Month) MonthStats {
	ms := MonthStats{Year: year, Month: month}
	var sum plSum
	for _, t := range trades {
		ts, ok := t.Time()
		if !ok || ts.Year() != year || ts.Month() != month {
			continue
		}
		ms.Count++
		if t.IsWin() {
			ms.Wins++
		}
		if t.IsLoss() {
			ms.Losses++
		}
		if IsClosedStatus(t.Status) {
			ms.Closed++
		}
		sum.add(t)
	}
	ms.TotalPL = sum.total()
	ms.WinRate = SafeDivide(float64(ms.Wins), float64(ms.Count), 0) * 100
	return ms
}
