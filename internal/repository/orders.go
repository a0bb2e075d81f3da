package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sukrithpvs/Insight/internal/engine"
	"github.com/sukrithpvs/Insight/types"
)

func (db *Database) Account(ctx context.Context) (*types.Account, error) {
	var account types.Account
	err := db.conn.QueryRow(ctx,
		`SELECT cash_balance FROM account WHERE id = 1`,
	).Scan(&account.CashBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select account: %w", err)
	}
	return &account, nil
}

// InitAccount inserts the singleton account row. A concurrent insert wins
// by primary key; the stored balance is returned either way.
func (db *Database) InitAccount(ctx context.Context, account types.Account) (types.Account, error) {
	var stored types.Account
	err := db.conn.QueryRow(ctx,
		`INSERT INTO account (id, cash_balance) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET cash_balance = account.cash_balance
		 RETURNING cash_balance`,
		account.CashBalance,
	).Scan(&stored.CashBalance)
	if err != nil {
		return types.Account{}, fmt.Errorf("init account: %w", err)
	}
	return stored, nil
}

func (db *Database) Holding(ctx context.Context, ticker string) (*types.Holding, error) {
	var holding types.Holding
	err := db.conn.QueryRow(ctx,
		`SELECT ticker, quantity, avg_cost, created_at, updated_at
		 FROM holdings WHERE ticker = $1`, ticker,
	).Scan(&holding.Ticker, &holding.Quantity, &holding.AvgCost, &holding.CreatedAt, &holding.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select holding: %w", err)
	}
	return &holding, nil
}

func (db *Database) Holdings(ctx context.Context) ([]types.Holding, error) {
	rows, err := db.conn.Query(ctx,
		`SELECT ticker, quantity, avg_cost, created_at, updated_at
		 FROM holdings ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("select holdings: %w", err)
	}
	defer rows.Close()

	var out []types.Holding
	for rows.Next() {
		var holding types.Holding
		if err := rows.Scan(&holding.Ticker, &holding.Quantity, &holding.AvgCost,
			&holding.CreatedAt, &holding.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, holding)
	}
	return out, rows.Err()
}

const orderColumns = `id, ticker, order_type, status, quantity, price, total_amount, created_at, executed_at`

func scanOrder(row pgx.Row) (types.Order, error) {
	var order types.Order
	var orderType, status string
	err := row.Scan(&order.ID, &order.Ticker, &orderType, &status,
		&order.Quantity, &order.Price, &order.TotalAmount,
		&order.CreatedAt, &order.ExecutedAt)
	if err != nil {
		return types.Order{}, err
	}
	if order.Type, err = types.ParseOrderType(orderType); err != nil {
		return types.Order{}, err
	}
	if order.Status, err = types.ParseOrderStatus(status); err != nil {
		return types.Order{}, err
	}
	return order, nil
}

func (db *Database) Order(ctx context.Context, id int64) (*types.Order, error) {
	order, err := scanOrder(db.conn.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	return &order, nil
}

func (db *Database) Orders(ctx context.Context, ticker string) ([]types.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY id DESC`
	args := []any{}
	if ticker != "" {
		query = `SELECT ` + orderColumns + ` FROM orders WHERE ticker = $1 ORDER BY id DESC`
		args = append(args, ticker)
	}

	rows, err := db.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var out []types.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	return out, rows.Err()
}

// CommitOrder applies a completed execution in one transaction: the journal
// row, the new cash balance, and the holding change.
func (db *Database) CommitOrder(ctx context.Context, commit engine.OrderCommit) (types.Order, error) {
	tx, err := db.conn.Begin(ctx)
	if err != nil {
		return types.Order{}, fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback(ctx)

	order := commit.Order
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (ticker, order_type, status, quantity, price, total_amount, created_at, executed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		order.Ticker, string(order.Type), string(order.Status),
		order.Quantity, order.Price, order.TotalAmount,
		order.CreatedAt, order.ExecutedAt,
	).Scan(&order.ID)
	if err != nil {
		return types.Order{}, fmt.Errorf("insert order: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO account (id, cash_balance) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET cash_balance = EXCLUDED.cash_balance`,
		commit.CashBalance,
	); err != nil {
		return types.Order{}, fmt.Errorf("update cash balance: %w", err)
	}

	if commit.Holding == nil {
		if _, err := tx.Exec(ctx,
			`DELETE FROM holdings WHERE ticker = $1`, order.Ticker,
		); err != nil {
			return types.Order{}, fmt.Errorf("delete holding: %w", err)
		}
	} else {
		h := commit.Holding
		if _, err := tx.Exec(ctx,
			`INSERT INTO holdings (ticker, quantity, avg_cost, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (ticker) DO UPDATE SET
				quantity = EXCLUDED.quantity,
				avg_cost = EXCLUDED.avg_cost,
				updated_at = EXCLUDED.updated_at`,
			h.Ticker, h.Quantity, h.AvgCost, h.CreatedAt, h.UpdatedAt,
		); err != nil {
			return types.Order{}, fmt.Errorf("upsert holding: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return types.Order{}, fmt.Errorf("commit order: %w", err)
	}
	return order, nil
}

func (db *Database) SetOrderStatus(ctx context.Context, id int64, status types.OrderStatus) error {
	tag, err := db.conn.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return engine.ErrOrderNotFound
	}
	return nil
}
