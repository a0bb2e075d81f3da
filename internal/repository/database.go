// Package repository is the Postgres storage backend, used when
// DATABASE_URL is configured. It implements the same store contracts as
// the in-memory backend; order commits run in a transaction so the
// journal row, cash balance, and holding change land together.
package repository

import (
	"context"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS account (
	id           SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	cash_balance NUMERIC(18,4) NOT NULL
);

CREATE TABLE IF NOT EXISTS holdings (
	ticker     TEXT PRIMARY KEY,
	quantity   NUMERIC(18,4) NOT NULL,
	avg_cost   NUMERIC(18,4) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	id           BIGSERIAL PRIMARY KEY,
	ticker       TEXT NOT NULL,
	order_type   TEXT NOT NULL,
	status       TEXT NOT NULL,
	quantity     NUMERIC(18,4) NOT NULL,
	price        NUMERIC(18,4) NOT NULL,
	total_amount NUMERIC(18,4) NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	executed_at  TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS orders_ticker_idx ON orders (ticker);

CREATE TABLE IF NOT EXISTS watchlist (
	id           BIGSERIAL PRIMARY KEY,
	ticker       TEXT NOT NULL UNIQUE,
	company_name TEXT NOT NULL DEFAULT '',
	notes        TEXT NOT NULL DEFAULT '',
	added_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS market_cache (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

// Database holds the connection pool. It satisfies the order engine,
// watchlist, and market cache store contracts.
type Database struct {
	conn *pgxpool.Pool
}

// NewDatabase opens a pool, verifies connectivity, and bootstraps the
// schema. NUMERIC columns scan straight into shopspring decimals via the
// registered codec.
func NewDatabase(ctx context.Context, dbURL string) (*Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Exec(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return &Database{conn: conn}, nil
}

func (db *Database) Close() {
	db.conn.Close()
}
