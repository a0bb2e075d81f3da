package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

var ErrCacheMiss = errors.New("cache entry not found")

func (db *Database) GetCache(ctx context.Context, key string) ([]byte, time.Time, error) {
	var value []byte
	var updatedAt time.Time
	err := db.conn.QueryRow(ctx,
		`SELECT value, updated_at FROM market_cache WHERE key = $1`, key,
	).Scan(&value, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, time.Time{}, ErrCacheMiss
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("select cache entry: %w", err)
	}
	return value, updatedAt, nil
}

func (db *Database) PutCache(ctx context.Context, key string, value []byte) error {
	_, err := db.conn.Exec(ctx,
		`INSERT INTO market_cache (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("upsert cache entry: %w", err)
	}
	return nil
}
