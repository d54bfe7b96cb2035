// Package analytics derives performance statistics from a snapshot of journal
// trades. Everything in here is a pure function over its inputs: nothing is
// cached, nothing is mutated, and the same inputs always give the same output.
package analytics

import (
	"strconv"
	"strings"
	"time"
)

// Direction is the normalized side of a trade. Values other than Long and
// Short are carried through from the source record unchanged.
type Direction string

const (
	Long  Direction = "Long"
	Short Direction = "Short"
)

// Outcome is the authoritative result label of a trade. It is trusted for
// win/loss partitioning even when it disagrees with the sign of the P&L.
type Outcome string

const (
	OutcomeNone Outcome = ""
	Win         Outcome = "Win"
	Loss        Outcome = "Loss"
	Breakeven   Outcome = "Breakeven"
)

// RawTrade is a trade as it comes out of storage or an import: arbitrary
// keys, arbitrary value types.
type RawTrade map[string]any

// Trade is the canonical shape every component past the Normalizer works on.
type Trade struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	Symbol     string    `json:"symbol"`
	Direction  Direction `json:"direction"`
	Status     string    `json:"status"`
	Outcome    Outcome   `json:"outcome"`
	ProfitLoss *float64  `json:"profitLoss"`
	AccountID  string    `json:"accountId,omitempty"`
	StrategyID string    `json:"strategyId,omitempty"`
	EntryTime  string    `json:"entryTime,omitempty"`
}

// PL returns the trade P&L with nil treated as zero.
func (t Trade) PL() float64 {
	if t.ProfitLoss == nil {
		return 0
	}
	return *t.ProfitLoss
}

// HasPL reports whether the trade carries a usable P&L value.
func (t Trade) HasPL() bool {
	return t.ProfitLoss != nil
}

// Time parses the trade date. The second result is false when the date is
// missing or in none of the recognized layouts.
func (t Trade) Time() (time.Time, bool) {
	return ParseDate(t.Date)
}

// Day returns the YYYY-MM-DD key used by every date-bucketed view.
func (t Trade) Day() (string, bool) {
	ts, ok := t.Time()
	if !ok {
		return "", false
	}
	return ts.Format(dayLayout), true
}

// Hour returns the hour of day from EntryTime ("HH:MM" or "HH:MM:SS").
func (t Trade) Hour() (int, bool) {
	s := strings.TrimSpace(t.EntryTime)
	if s == "" {
		return 0, false
	}
	head, _, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(head)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// IsWin and IsLoss follow the outcome label, never the P&L sign.
func (t Trade) IsWin() bool  { return t.Outcome == Win }
func (t Trade) IsLoss() bool { return t.Outcome == Loss }

// WithPL returns a copy of t carrying a new P&L value.
func (t Trade) WithPL(pl float64) Trade {
	t.ProfitLoss = &pl
	return t
}

const dayLayout = "2006-01-02"

var dateLayouts = []string{
	dayLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate accepts the date layouts journal records show up with in
// practice. Dates without a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
