package engine

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

// Store is the persistence the engine needs: the single account, the
// holdings keyed by ticker, and the order journal. Lookups return nil
// (not an error) when the row does not exist.
type Store interface {
	// Account returns the portfolio account, or nil if it was never
	// initialized.
	Account(ctx context.Context) (*types.Account, error)
	// InitAccount creates the account with the given state unless one
	// already exists, and returns the stored account either way.
	InitAccount(ctx context.Context, account types.Account) (types.Account, error)

	Holding(ctx context.Context, ticker string) (*types.Holding, error)
	Holdings(ctx context.Context) ([]types.Holding, error)

	Order(ctx context.Context, id int64) (*types.Order, error)
	// Orders returns the journal newest first, optionally filtered by
	// ticker ("" means all).
	Orders(ctx context.Context, ticker string) ([]types.Order, error)

	// CommitOrder applies one full order transition atomically: append the
	// journal row, set the new cash balance, and upsert or delete the
	// holding. Readers never observe a partially applied commit. The store
	// assigns the order ID and returns the stored row.
	CommitOrder(ctx context.Context, commit OrderCommit) (types.Order, error)

	// SetOrderStatus updates the status of an existing order.
	SetOrderStatus(ctx context.Context, id int64, status types.OrderStatus) error
}

// OrderCommit is the post-state of a single executed order. The engine
// computes it under its write lock; stores only apply it.
type OrderCommit struct {
	// Order is the journal row to append (ID unset, assigned by the store).
	Order types.Order
	// CashBalance is the account balance after the order.
	CashBalance decimal.Decimal
	// Holding is the holding for Order.Ticker after the order, or nil when
	// the position was fully liquidated and the row must be deleted.
	Holding *types.Holding
}
