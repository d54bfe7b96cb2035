package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/pkg/id"
)

// Store implements journal.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

var _ journal.Store = (*Store)(nil)

// Open connects to dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	s, err := New(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing pool. The store owns the pool from here on.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

const insertTrade = `
	INSERT INTO trades
	(trade_id, account_id, strategy_id, trade_date, symbol, direction, status, outcome, profit_loss, entry_time, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const tradeColumns = `trade_id, account_id, strategy_id, trade_date, symbol, direction, status, outcome, profit_loss, entry_time, notes`

func insertArgs(rec journal.Record) []any {
	return []any{
		rec.TradeID, rec.AccountID, rec.StrategyID, rec.Date, rec.Symbol,
		rec.Direction, rec.Status, rec.Outcome, rec.ProfitLoss, rec.EntryTime, rec.Notes,
	}
}

func insertErr(kind, key string, err error) error {
	if isDuplicateKeyError(err) {
		return fmt.Errorf("insert %s %q: %w: %v", kind, key, journal.ErrDuplicate, err)
	}
	return fmt.Errorf("insert %s %q: %w", kind, key, err)
}

// AddTrade inserts rec and returns its ID, generating one when rec has none.
func (s *Store) AddTrade(ctx context.Context, rec journal.Record) (string, error) {
	if rec.TradeID == "" {
		rec.TradeID = journal.NewTradeID(rec.Date)
	}
	if _, err := s.pool.Exec(ctx, insertTrade, insertArgs(rec)...); err != nil {
		return "", insertErr("trade", rec.TradeID, err)
	}
	return rec.TradeID, nil
}

// AddTrades inserts recs atomically. Any failure rolls back the batch.
func (s *Store) AddTrades(ctx context.Context, recs []journal.Record) ([]string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		if rec.TradeID == "" {
			rec.TradeID = journal.NewTradeID(rec.Date)
		}
		if _, err := tx.Exec(ctx, insertTrade, insertArgs(rec)...); err != nil {
			return nil, insertErr("trade", rec.TradeID, err)
		}
		ids = append(ids, rec.TradeID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return ids, nil
}

func scanRecord(row pgx.Row) (journal.Record, error) {
	var rec journal.Record
	err := row.Scan(
		&rec.TradeID,
		&rec.AccountID,
		&rec.StrategyID,
		&rec.Date,
		&rec.Symbol,
		&rec.Direction,
		&rec.Status,
		&rec.Outcome,
		&rec.ProfitLoss,
		&rec.EntryTime,
		&rec.Notes,
	)
	return rec, err
}

// GetTrade returns a single trade record by ID.
func (s *Store) GetTrade(ctx context.Context, tradeID string) (journal.Record, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+tradeColumns+` FROM trades WHERE trade_id = $1`, tradeID)
	rec, err := scanRecord(row)
	if err != nil {
		if isNotFoundError(err) {
			return journal.Record{}, fmt.Errorf("trade %q: %w", tradeID, journal.ErrNotFound)
		}
		return journal.Record{}, fmt.Errorf("get trade: %w", err)
	}
	return rec, nil
}

// ListTrades returns every trade, most recently entered first.
func (s *Store) ListTrades(ctx context.Context) ([]journal.Record, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var out []journal.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteTrade removes a trade by ID.
func (s *Store) DeleteTrade(ctx context.Context, tradeID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM trades WHERE trade_id = $1`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trade %q: %w", tradeID, journal.ErrNotFound)
	}
	return nil
}

// AddAccount inserts an account, generating an ID when acct has none.
func (s *Store) AddAccount(ctx context.Context, acct journal.Account) (string, error) {
	if acct.AccountID == "" {
		acct.AccountID = id.New()
	}
	if acct.Currency == "" {
		acct.Currency = "USD"
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO accounts (account_id, name, currency, broker)
		VALUES ($1, $2, $3, $4)`,
		acct.AccountID, acct.Name, strings.ToUpper(acct.Currency), acct.Broker,
	)
	if err != nil {
		return "", insertErr("account", acct.AccountID, err)
	}
	return acct.AccountID, nil
}

// ListAccounts returns all accounts ordered by name.
func (s *Store) ListAccounts(ctx context.Context) ([]journal.Account, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT account_id, name, currency, broker
		FROM accounts
		ORDER BY name ASC, account_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []journal.Account
	for rows.Next() {
		var a journal.Account
		if err := rows.Scan(&a.AccountID, &a.Name, &a.Currency, &a.Broker); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
