package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    article         TEXT,
    name            TEXT NOT NULL,
    packaged_weight REAL NOT NULL DEFAULT 0,
    packaged_volume REAL NOT NULL DEFAULT 0,
    width_mm        REAL,
    height_mm       REAL,
    depth_mm        REAL,
    default_color   TEXT,
    category        TEXT,
    description     TEXT,
    image_url       TEXT,
    source_url      TEXT
);

CREATE TABLE IF NOT EXISTS assets (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    url                 TEXT NOT NULL,
    public_id           TEXT,
    file_name           TEXT NOT NULL,
    file_size           INTEGER NOT NULL DEFAULT 0,
    type                TEXT NOT NULL,
    thumbnail_url       TEXT,
    thumbnail_public_id TEXT,
    width               INTEGER,
    height              INTEGER,
    created_at          TEXT NOT NULL,
    updated_at          TEXT,
    product_id          INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_assets_product_id ON assets(product_id);
CREATE INDEX IF NOT EXISTS idx_assets_type ON assets(type);

CREATE TABLE IF NOT EXISTS prices (
    id         TEXT PRIMARY KEY,
    kind       TEXT NOT NULL,
    currency   TEXT NOT NULL DEFAULT 'RUB',
    amount     INTEGER NOT NULL,
    min_qty    INTEGER NOT NULL DEFAULT 1,
    valid_from TEXT NOT NULL,
    valid_to   TEXT,
    product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    UNIQUE (product_id, kind)
);

CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    email         TEXT NOT NULL UNIQUE,
    display_name  TEXT NOT NULL,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id      INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
    display_name TEXT NOT NULL,
    description  TEXT,
    city         TEXT,
    country      TEXT
);
`

// Open opens the SQLite database and applies the schema. SQLite allows a
// single writer, so the pool is capped at one connection.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
