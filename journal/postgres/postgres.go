// Package postgres is a journal.Store on PostgreSQL, for journals shared
// between machines or served from a container.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema mirrors the SQLite layout. seq keeps entry order.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	seq BIGSERIAL PRIMARY KEY,
	trade_id TEXT NOT NULL UNIQUE,
	account_id TEXT NOT NULL DEFAULT '',
	strategy_id TEXT NOT NULL DEFAULT '',
	trade_date TEXT NOT NULL DEFAULT '',
	symbol TEXT NOT NULL DEFAULT '',
	direction TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL DEFAULT '',
	profit_loss DOUBLE PRECISION,
	entry_time TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account_id);

CREATE TABLE IF NOT EXISTS accounts (
	account_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	currency TEXT NOT NULL DEFAULT 'USD',
	broker TEXT NOT NULL DEFAULT ''
);
`

// NewPool creates a connection pool and verifies it with a ping.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

const pgErrUniqueViolation = "23505"

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrUniqueViolation
	}
	return false
}

func isNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
