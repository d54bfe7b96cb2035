package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

// SQLite is the default Store, a single-file database.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// AddTrade inserts rec and returns its ID, generating one when rec has none.
func (j *SQLite) AddTrade(ctx context.Context, rec Record) (string, error) {
	if rec.TradeID == "" {
		rec.TradeID = NewTradeID(rec.Date)
	}

	var pl sql.NullFloat64
	if rec.ProfitLoss != nil {
		pl = sql.NullFloat64{Float64: *rec.ProfitLoss, Valid: true}
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades
		(trade_id, account_id, strategy_id, trade_date, symbol, direction, status, outcome, profit_loss, entry_time, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.TradeID, rec.AccountID, rec.StrategyID, rec.Date, rec.Symbol,
		rec.Direction, rec.Status, rec.Outcome, pl, rec.EntryTime, rec.Notes,
	)
	if err != nil {
		return "", fmt.Errorf("insert trade %q: %w", rec.TradeID, wrapConstraint(err))
	}
	return rec.TradeID, nil
}

// AddTrades inserts recs in one transaction, so an import either lands
// whole or not at all.
func (j *SQLite) AddTrades(ctx context.Context, recs []Record) ([]string, error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trades
		(trade_id, account_id, strategy_id, trade_date, symbol, direction, status, outcome, profit_loss, entry_time, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		if rec.TradeID == "" {
			rec.TradeID = NewTradeID(rec.Date)
		}
		var pl sql.NullFloat64
		if rec.ProfitLoss != nil {
			pl = sql.NullFloat64{Float64: *rec.ProfitLoss, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			rec.TradeID, rec.AccountID, rec.StrategyID, rec.Date, rec.Symbol,
			rec.Direction, rec.Status, rec.Outcome, pl, rec.EntryTime, rec.Notes,
		); err != nil {
			return nil, fmt.Errorf("insert trade %q: %w", rec.TradeID, wrapConstraint(err))
		}
		ids = append(ids, rec.TradeID)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteTrade removes a trade by ID.
func (j *SQLite) DeleteTrade(ctx context.Context, tradeID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?`, tradeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
	}
	return nil
}

// AddAccount inserts an account, generating an ID when acct has none.
func (j *SQLite) AddAccount(ctx context.Context, acct Account) (string, error) {
	if acct.AccountID == "" {
		acct.AccountID = id.New()
	}
	if acct.Currency == "" {
		acct.Currency = "USD"
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO accounts (account_id, name, currency, broker)
		VALUES (?, ?, ?, ?)`,
		acct.AccountID, acct.Name, strings.ToUpper(acct.Currency), acct.Broker,
	)
	if err != nil {
		return "", fmt.Errorf("insert account %q: %w", acct.AccountID, wrapConstraint(err))
	}
	return acct.AccountID, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// wrapConstraint maps unique violations to ErrDuplicate.
func wrapConstraint(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) &&
		(se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
