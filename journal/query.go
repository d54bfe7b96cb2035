package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const tradeColumns = `trade_id, account_id, strategy_id, trade_date, symbol, direction, status, outcome, profit_loss, entry_time, notes`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var (
		rec Record
		pl  sql.NullFloat64
	)
	err := s.Scan(
		&rec.TradeID,
		&rec.AccountID,
		&rec.StrategyID,
		&rec.Date,
		&rec.Symbol,
		&rec.Direction,
		&rec.Status,
		&rec.Outcome,
		&pl,
		&rec.EntryTime,
		&rec.Notes,
	)
	if err != nil {
		return Record{}, err
	}
	if pl.Valid {
		v := pl.Float64
		rec.ProfitLoss = &v
	}
	return rec, nil
}

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(ctx context.Context, tradeID string) (Record, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`, tradeID)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return Record{}, err
	}
	return rec, nil
}

// ListTrades returns every trade, most recently entered first.
func (j *SQLite) ListTrades(ctx context.Context) ([]Record, error) {
	return j.listTrades(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY seq DESC`)
}

func (j *SQLite) listTrades(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAccounts returns all accounts ordered by name.
func (j *SQLite) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT account_id, name, currency, broker
		FROM accounts
		ORDER BY name ASC, account_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.AccountID, &a.Name, &a.Currency, &a.Broker); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
