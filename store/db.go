// Package store keeps a SQLite projection of the items replayed from the ledger.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database connection and configures pragmas.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}
	return db, nil
}

// schema stores amounts as decimal text, NULL when unknown.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id               TEXT PRIMARY KEY,
    title            TEXT NOT NULL,
    auction          TEXT NOT NULL DEFAULT '',
    lot              TEXT NOT NULL DEFAULT '',
    status           TEXT NOT NULL CHECK (status IN ('watch', 'won', 'listed', 'sold')),
    currency         TEXT NOT NULL DEFAULT '',
    planned_max_bid  TEXT,
    target_price     TEXT,
    suggested_price  TEXT,
    purchase_price   TEXT,
    refurb_cost      TEXT,
    sale_price       TEXT,
    sale_fees        TEXT,
    shipping_cost    TEXT,
    won_date         TEXT NOT NULL DEFAULT '',
    list_date        TEXT NOT NULL DEFAULT '',
    list_channel     TEXT NOT NULL DEFAULT '',
    sale_date        TEXT NOT NULL DEFAULT '',
    multi_piece      INTEGER NOT NULL DEFAULT 0,
    pieces_total     INTEGER NOT NULL DEFAULT 0,
    pieces_remaining INTEGER NOT NULL DEFAULT 0 CHECK (pieces_remaining >= 0),
    position         INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS expenses (
    id          INTEGER PRIMARY KEY,
    item_id     TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    date        TEXT NOT NULL,
    category    TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    amount      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS piece_sales (
    id       INTEGER PRIMARY KEY,
    item_id  TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    date     TEXT NOT NULL,
    pieces   INTEGER NOT NULL CHECK (pieces > 0),
    price    TEXT NOT NULL,
    fees     TEXT NOT NULL DEFAULT '0',
    shipping TEXT NOT NULL DEFAULT '0',
    channel  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS shares (
    item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    partner TEXT NOT NULL,
    pct     REAL NOT NULL CHECK (pct >= 0 AND pct <= 100),
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_piece_sales_item ON piece_sales(item_id);
CREATE INDEX IF NOT EXISTS idx_expenses_item ON expenses(item_id);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
