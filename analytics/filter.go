package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// All is the filter value that disables a predicate.
const All = "all"

// Filter is the declarative selection applied before any aggregation. Empty
// fields behave like All.
type Filter struct {
	AccountID string `json:"accountId" yaml:"account_id"`
	Symbol    string `json:"symbol" yaml:"symbol"`
	Direction string `json:"direction" yaml:"direction"`
	Outcome   string `json:"outcome" yaml:"outcome"`
	DateRange string `json:"dateRange" yaml:"date_range"`

	// Now anchors relative date ranges. Zero means the wall clock, which
	// makes results time dependent; callers wanting repeatable output set it.
	Now time.Time `json:"-" yaml:"-"`
}

// AllTrades is the filter that keeps everything.
func AllTrades() Filter {
	return Filter{AccountID: All, Symbol: All, Direction: All, Outcome: All, DateRange: All}
}

// Validate checks the values that have a closed set of meanings.
func (f Filter) Validate() error {
	if _, err := ParseRange(f.DateRange); err != nil {
		return err
	}
	if isAll(f.Direction) {
		return nil
	}
	switch NormalizeDirection(f.Direction) {
	case Long, Short:
		return nil
	}
	return fmt.Errorf("unknown direction %q", f.Direction)
}

// ParseRange converts a relative window such as "7d" into a number of days.
// "all" and "" return 0.
func ParseRange(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if isAll(s) {
		return 0, nil
	}
	if !strings.HasSuffix(s, "d") {
		return 0, fmt.Errorf("invalid date range %q: want all or <N>d", s)
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid date range %q: want all or <N>d", s)
	}
	return n, nil
}

// ApplyFilters returns a new slice holding the trades that pass every
// predicate of f. The input is never modified. An unparsable DateRange is
// treated as All here; use Filter.Validate to reject it up front.
func ApplyFilters(trades []Trade, f Filter) []Trade {
	pred := f.predicate()
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

func (f Filter) predicate() func(Trade) bool {
	var lower time.Time
	if days, err := ParseRange(f.DateRange); err == nil && days > 0 {
		now := f.Now
		if now.IsZero() {
			now = time.Now()
		}
		lower = now.AddDate(0, 0, -days)
	}
	dir := NormalizeDirection(f.Direction)
	outcome := NormalizeOutcome(f.Outcome)

	return func(t Trade) bool {
		if !isAll(f.AccountID) && t.AccountID != f.AccountID {
			return false
		}
		if !isAll(f.Symbol) && t.Symbol != f.Symbol {
			return false
		}
		if !isAll(f.Direction) && t.Direction != dir {
			return false
		}
		if !isAll(f.Outcome) && t.Outcome != outcome {
			return false
		}
		if !lower.IsZero() {
			// undated trades are never dropped by the date window
			if ts, ok := t.Time(); ok && ts.Before(lower) {
				return false
			}
		}
		return true
	}
}

func isAll(s string) bool {
	return s == "" || strings.EqualFold(s, All)
}

var closedStatuses = map[string]struct{}{
	"Closed":      {},
	"closed":      {},
	"CLOSED":      {},
	"Cerrado":     {},
	"cerrado":     {},
	"Cerrada":     {},
	"cerrada":     {},
	"Fermé":       {},
	"fermé":       {},
	"Fermée":      {},
	"fermée":      {},
	"Geschlossen": {},
	"geschlossen": {},
	"Chiuso":      {},
	"chiuso":      {},
	"Fechado":     {},
	"fechado":     {},
	"Fechada":     {},
	"fechada":     {},
	"Закрыта":     {},
	"закрыта":     {},
	"Закрыто":     {},
	"закрыто":     {},
}

// IsClosedStatus reports whether status is one of the known closed labels.
// It is an exact lookup: "Closing" or "closed " are not closed.
func IsClosedStatus(status string) bool {
	_, ok := closedStatuses[status]
	return ok
}
