package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	trade_id TEXT NOT NULL UNIQUE,
	account_id TEXT NOT NULL DEFAULT '',
	strategy_id TEXT NOT NULL DEFAULT '',
	trade_date TEXT NOT NULL DEFAULT '',
	symbol TEXT NOT NULL DEFAULT '',
	direction TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL DEFAULT '',
	profit_loss REAL,
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
