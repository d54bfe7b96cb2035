package analytics

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when a payload is neither a trade object nor
// an array of trade objects.
var ErrInvalidInput = errors.New("invalid input shape")

// DecodeRaw decodes a JSON payload into raw trades. An array of objects and
// a single object are accepted; anything else fails with ErrInvalidInput.
func DecodeRaw(data []byte) ([]RawTrade, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after the first value", ErrInvalidInput)
	}

	switch x := v.(type) {
	case map[string]any:
		return []RawTrade{x}, nil
	case []any:
		out := make([]RawTrade, 0, len(x))
		for i, el := range x {
			m, ok := el.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T, not an object", ErrInvalidInput, i, el)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidInput, v)
	}
}

// Normalize coerces raw records into canonical trades. It never fails: a
// field that cannot be parsed is left empty and the trade is still returned,
// in the same order as the input.
func Normalize(raw []RawTrade) []Trade {
	out := make([]Trade, 0, len(raw))
	for _, r := range raw {
		out = append(out, NormalizeOne(r))
	}
	return out
}

// NormalizeOne converts a single raw record.
func NormalizeOne(r RawTrade) Trade {
	return Trade{
		ID:         r.str("id", "_id", "trade_id"),
		Date:       r.str("date", "trade_date"),
		Symbol:     strings.TrimSpace(r.str("symbol", "ticker", "instrument")),
		Direction:  NormalizeDirection(r.str("direction", "side")),
		Status:     strings.TrimSpace(r.str("status")),
		Outcome:    NormalizeOutcome(r.str("outcome", "result")),
		ProfitLoss: ParsePL(r.first("profit_loss", "pnl", "profitLoss")),
		AccountID:  r.str("account_id", "accountId"),
		StrategyID: r.str("strategy_id", "strategyId"),
		EntryTime:  strings.TrimSpace(r.str("entry_time", "open_time", "entryTime")),
	}
}

// NormalizeDirection maps buy/long to Long and sell/short to Short. Anything
// else is returned as given.
func NormalizeDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "long":
		return Long
	case "sell", "short":
		return Short
	}
	return Direction(s)
}

// NormalizeOutcome maps the common spellings onto the Outcome constants.
// Unrecognized labels pass through so they still count toward totals.
func NormalizeOutcome(s string) Outcome {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return OutcomeNone
	case "win", "won", "winner":
		return Win
	case "loss", "lose", "lost", "loser":
		return Loss
	case "breakeven", "break even", "break-even", "be":
		return Breakeven
	}
	return Outcome(strings.TrimSpace(s))
}

// ParsePL turns a stored P&L value into a float. Strings may carry currency
// symbols, thousands separators and accounting-style parentheses. Anything
// unusable yields nil.
func ParsePL(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return nil
		}
		f = d.InexactFloat64()
	case string:
		d, ok := parseMoney(x)
		if !ok {
			return nil
		}
		f = d.InexactFloat64()
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseMoney(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

func (r RawTrade) first(keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func (r RawTrade) str(keys ...string) string {
	switch x := r.first(keys...).(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
