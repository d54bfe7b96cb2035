// Package journal is the persistence side of the trade journal: the SQLite
// store (PostgreSQL lives in journal/postgres), CSV import and export, and
// Org-mode rendering. It keeps records in
// the raw shape they were entered with and leaves interpretation to the
// analytics package.
package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/pkg/id"
)

var (
	// ErrNotFound is returned when a trade or account does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an ID is already taken.
	ErrDuplicate = errors.New("duplicate id")
)

// Record is a trade as stored. Date, direction and outcome are kept as the
// user typed them; ProfitLoss is nil when no value was recorded.
type Record struct {
	TradeID    string
	AccountID  string
	StrategyID string
	Date       string
	Symbol     string
	Direction  string
	Status     string
	Outcome    string
	ProfitLoss *float64
	EntryTime  string
	Notes      string
}

// Account is a trading account trades can be filed under.
type Account struct {
	AccountID string
	Name      string
	Currency  string
	Broker    string
}

// Store is the journal persistence contract.
type Store interface {
	AddTrade(ctx context.Context, rec Record) (string, error)
	AddTrades(ctx context.Context, recs []Record) ([]string, error)
	GetTrade(ctx context.Context, tradeID string) (Record, error)
	ListTrades(ctx context.Context) ([]Record, error)
	DeleteTrade(ctx context.Context, tradeID string) error

	AddAccount(ctx context.Context, acct Account) (string, error)
	ListAccounts(ctx context.Context) ([]Account, error)

	Close() error
}

// NewTradeID returns a fresh trade ID. When date parses, the ID's time part
// is the trade date, so imported history sorts by when it was traded.
func NewTradeID(date string) string {
	if ts, ok := analytics.ParseDate(date); ok {
		return id.At(ts)
	}
	return id.New()
}

// Raw converts the record into the map form the analytics Normalizer reads.
// Empty fields are left out rather than stored as empty strings.
func (r Record) Raw() analytics.RawTrade {
	raw := analytics.RawTrade{}
	set := func(k, v string) {
		if v != "" {
			raw[k] = v
		}
	}
	set("id", r.TradeID)
	set("account_id", r.AccountID)
	set("strategy_id", r.StrategyID)
	set("date", r.Date)
	set("symbol", r.Symbol)
	set("direction", r.Direction)
	set("status", r.Status)
	set("outcome", r.Outcome)
	set("entry_time", r.EntryTime)
	if r.ProfitLoss != nil {
		raw["profit_loss"] = *r.ProfitLoss
	}
	return raw
}

// RawTrades converts records in order.
func RawTrades(recs []Record) []analytics.RawTrade {
	out := make([]analytics.RawTrade, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Raw())
	}
	return out
}

// RecordFromRaw builds a Record from an imported raw trade. P&L strings are
// parsed here because the column is numeric; everything else stays raw.
func RecordFromRaw(raw analytics.RawTrade) Record {
	str := func(k string) string {
		if v, ok := raw[k].(string); ok {
			return v
		}
		return ""
	}
	return Record{
		TradeID:    str("id"),
		AccountID:  str("account_id"),
		StrategyID: str("strategy_id"),
		Date:       str("date"),
		Symbol:     str("symbol"),
		Direction:  str("direction"),
		Status:     str("status"),
		Outcome:    str("outcome"),
		ProfitLoss: analytics.ParsePL(raw["profit_loss"]),
		EntryTime:  str("entry_time"),
		Notes:      str("notes"),
	}
}

// RecordFromTrade is the stored form of a canonical trade.
func RecordFromTrade(t analytics.Trade) Record {
	return Record{
		TradeID:    t.ID,
		AccountID:  t.AccountID,
		StrategyID: t.StrategyID,
		Date:       t.Date,
		Symbol:     t.Symbol,
		Direction:  string(t.Direction),
		Status:     t.Status,
		Outcome:    string(t.Outcome),
		ProfitLoss: t.ProfitLoss,
		EntryTime:  t.EntryTime,
	}
}

// CurrencyByAccount maps account IDs to their currency.
func CurrencyByAccount(accts []Account) map[string]string {
	out := make(map[string]string, len(accts))
	for _, a := range accts {
		out[a.AccountID] = a.Currency
	}
	return out
}

// LoadTrades reads every stored trade, newest first, in canonical form.
func LoadTrades(ctx context.Context, s Store) ([]analytics.Trade, error) {
	recs, err := s.ListTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return analytics.Normalize(RawTrades(recs)), nil
}

// LoadTradesIn is LoadTrades with P&L converted into currency using each
// account's currency. An empty currency leaves amounts as recorded. A
// currency rates cannot reach fails with analytics.ErrUnknownCurrency.
func LoadTradesIn(ctx context.Context, s Store, rates analytics.Rates, currency string) ([]analytics.Trade, error) {
	trades, err := LoadTrades(ctx, s)
	if err != nil || currency == "" {
		return trades, err
	}
	if _, err := rates.Convert(1, rates.Base, currency); err != nil {
		return nil, err
	}
	accts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return rates.ConvertTrades(trades, CurrencyByAccount(accts), currency), nil
}
