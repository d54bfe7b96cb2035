package analytics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownCurrency is returned when a currency has no conversion rate.
var ErrUnknownCurrency = errors.New("unknown currency")

// Rates holds fixed conversion rates as units of each currency per one unit
// of the base currency. The base itself may be listed with rate 1 or left
// out. Unit keys are upper-case codes; NewRates normalizes them.
// Conversions are approximate and meant for display only.
type Rates struct {
	Base  string
	Units map[string]float64
}

func (r Rates) rate(ccy string) (decimal.Decimal, error) {
	ccy = strings.ToUpper(strings.TrimSpace(ccy))
	if ccy == strings.ToUpper(r.Base) {
		return decimal.NewFromInt(1), nil
	}
	v, ok := r.Units[ccy]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: no rate for %q", ErrUnknownCurrency, ccy)
	}
	if v <= 0 {
		return decimal.Decimal{}, fmt.Errorf("non-positive rate for %s", ccy)
	}
	return decimal.NewFromFloat(v), nil
}

// NewRates builds a table with upper-cased currency codes. Codes that
// differ only in case are rejected, since either value could win.
func NewRates(base string, units map[string]float64) (Rates, error) {
	r := Rates{Base: strings.ToUpper(strings.TrimSpace(base)), Units: make(map[string]float64, len(units))}
	for k, v := range units {
		ccy := strings.ToUpper(strings.TrimSpace(k))
		if _, dup := r.Units[ccy]; dup {
			return Rates{}, fmt.Errorf("duplicate rate for %s", ccy)
		}
		r.Units[ccy] = v
	}
	return r, nil
}

// Convert moves amount from one currency to another through the base.
func (r Rates) Convert(amount float64, from, to string) (float64, error) {
	if strings.EqualFold(from, to) {
		return amount, nil
	}
	fr, err := r.rate(from)
	if err != nil {
		return 0, err
	}
	tr, err := r.rate(to)
	if err != nil {
		return 0, err
	}
	v := decimal.NewFromFloat(amount).Div(fr).Mul(tr)
	return v.Round(8).InexactFloat64(), nil
}

// ConvertTrades returns copies of trades with P&L expressed in target.
// accountCurrency maps account IDs to their currency; trades whose account
// is unknown, or whose currency has no rate, keep their P&L unchanged.
func (r Rates) ConvertTrades(trades []Trade, accountCurrency map[string]string, target string) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		from, ok := accountCurrency[t.AccountID]
		if !ok || !t.HasPL() {
			out = append(out, t)
			continue
		}
		v, err := r.Convert(*t.ProfitLoss, from, target)
		if err != nil {
			out = append(out, t)
			continue
		}
		out = append(out, t.WithPL(v))
	}
	return out
}
