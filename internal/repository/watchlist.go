package repository

import (
	"context"
	"fmt"

	"github.com/sukrithpvs/Insight/internal/watchlist"
	"github.com/sukrithpvs/Insight/types"
)

func (db *Database) AddWatchlistItem(ctx context.Context, item types.WatchlistItem) (types.WatchlistItem, error) {
	err := db.conn.QueryRow(ctx,
		`INSERT INTO watchlist (ticker, company_name, notes, added_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		item.Ticker, item.CompanyName, item.Notes, item.AddedAt,
	).Scan(&item.ID)
	if err != nil {
		return types.WatchlistItem{}, fmt.Errorf("insert watchlist item: %w", err)
	}
	return item, nil
}

func (db *Database) WatchlistItems(ctx context.Context) ([]types.WatchlistItem, error) {
	rows, err := db.conn.Query(ctx,
		`SELECT id, ticker, company_name, notes, added_at
		 FROM watchlist ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("select watchlist: %w", err)
	}
	defer rows.Close()

	var out []types.WatchlistItem
	for rows.Next() {
		var item types.WatchlistItem
		if err := rows.Scan(&item.ID, &item.Ticker, &item.CompanyName,
			&item.Notes, &item.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (db *Database) WatchlistItemExists(ctx context.Context, ticker string) (bool, error) {
	var exists bool
	err := db.conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM watchlist WHERE upper(ticker) = upper($1))`, ticker,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check watchlist: %w", err)
	}
	return exists, nil
}

func (db *Database) RemoveWatchlistItem(ctx context.Context, id int64) error {
	tag, err := db.conn.Exec(ctx, `DELETE FROM watchlist WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete watchlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return watchlist.ErrItemNotFound
	}
	return nil
}

func (db *Database) RemoveWatchlistTicker(ctx context.Context, ticker string) error {
	tag, err := db.conn.Exec(ctx,
		`DELETE FROM watchlist WHERE upper(ticker) = upper($1)`, ticker)
	if err != nil {
		return fmt.Errorf("delete watchlist ticker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return watchlist.ErrItemNotFound
	}
	return nil
}
