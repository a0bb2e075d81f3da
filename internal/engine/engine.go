package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

// OrderRequest is a validated-at-the-boundary buy/sell request. Price and
// quantity are caller-supplied; the engine never re-fetches prices on the
// order path.
type OrderRequest struct {
	Ticker   string
	Type     types.OrderType
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// Engine executes orders against the single portfolio. Order execution
// reads the account and the relevant holding, computes the post-state, and
// commits it through the store as one atomic unit. A mutex serializes
// writers so concurrent orders racing on the same ticker or the shared cash
// balance cannot interleave between read and commit.
type Engine struct {
	mu      sync.Mutex
	store   Store
	opening decimal.Decimal
	log     zerolog.Logger
}

func New(store Store, openingBalance decimal.Decimal, log zerolog.Logger) *Engine {
	return &Engine{
		store:   store,
		opening: openingBalance,
		log:     log.With().Str("component", "engine").Logger(),
	}
}

// ExecuteOrder validates the request, applies the holdings and cash
// transition, and appends a COMPLETED order to the journal. BUY orders are
// rejected when the cash balance cannot cover quantity*price; SELL orders
// are rejected when the position is absent or too small. On failure no
// state is mutated.
func (e *Engine) ExecuteOrder(ctx context.Context, req OrderRequest) (types.Order, error) {
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		return types.Order{}, fmt.Errorf("%w: ticker is required", ErrInvalidArgument)
	}
	if req.Type != types.OrderTypeBuy && req.Type != types.OrderTypeSell {
		return types.Order{}, fmt.Errorf("%w: order type must be BUY or SELL", ErrInvalidArgument)
	}
	if !req.Quantity.IsPositive() {
		return types.Order{}, fmt.Errorf("%w: quantity must be greater than 0", ErrInvalidArgument)
	}
	if req.Price.IsNegative() {
		return types.Order{}, fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	account, err := e.account(ctx)
	if err != nil {
		return types.Order{}, err
	}
	holding, err := e.store.Holding(ctx, ticker)
	if err != nil {
		return types.Order{}, err
	}

	now := time.Now()
	total := req.Quantity.Mul(req.Price)

	var next *types.Holding
	switch req.Type {
	case types.OrderTypeBuy:
		account, err = debit(account, total)
		if err != nil {
			return types.Order{}, err
		}
		bought := applyBuy(holding, ticker, req.Quantity, req.Price, now)
		next = &bought

	case types.OrderTypeSell:
		if holding == nil {
			return types.Order{}, fmt.Errorf("%w: no shares of %s held", ErrInsufficientPosition, ticker)
		}
		if holding.Quantity.LessThan(req.Quantity) {
			return types.Order{}, fmt.Errorf("%w: only %s shares of %s held",
				ErrInsufficientPosition, holding.Quantity.String(), ticker)
		}
		next, err = applySell(holding, req.Quantity, now)
		if err != nil {
			return types.Order{}, err
		}
		account = credit(account, total)
	}

	executedAt := now
	order, err := e.store.CommitOrder(ctx, OrderCommit{
		Order: types.Order{
			Ticker:      ticker,
			Type:        req.Type,
			Status:      types.OrderStatusCompleted,
			Quantity:    req.Quantity,
			Price:       req.Price,
			TotalAmount: total,
			CreatedAt:   now,
			ExecutedAt:  &executedAt,
		},
		CashBalance: account.CashBalance,
		Holding:     next,
	})
	if err != nil {
		return types.Order{}, fmt.Errorf("commit order: %w", err)
	}

	e.log.Info().
		Int64("order_id", order.ID).
		Str("ticker", ticker).
		Str("type", string(req.Type)).
		Str("quantity", req.Quantity.String()).
		Str("price", req.Price.String()).
		Msg("Order executed")

	return order, nil
}

// CancelOrder flips a PENDING order to CANCELLED. Orders execute instantly
// in this system, so a pending order never touched cash or holdings and
// cancellation is a pure status change.
func (e *Engine) CancelOrder(ctx context.Context, id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, err := e.store.Order(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("%w: id %d", ErrOrderNotFound, id)
	}
	if order.Status != types.OrderStatusPending {
		return ErrOrderNotPending
	}
	if err := e.store.SetOrderStatus(ctx, id, types.OrderStatusCancelled); err != nil {
		return fmt.Errorf("cancel order %d: %w", id, err)
	}

	e.log.Info().Int64("order_id", id).Msg("Order cancelled")
	return nil
}

// ListOrders returns the journal newest first, optionally filtered by
// ticker.
func (e *Engine) ListOrders(ctx context.Context, ticker string) ([]types.Order, error) {
	return e.store.Orders(ctx, strings.ToUpper(strings.TrimSpace(ticker)))
}

// Holdings returns all current positions.
func (e *Engine) Holdings(ctx context.Context) ([]types.Holding, error) {
	return e.store.Holdings(ctx)
}

// Account returns the portfolio account, creating it with the opening
// balance on first use.
func (e *Engine) Account(ctx context.Context) (types.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.account(ctx)
}

// Snapshot reads the account and all holdings as one unit. Holding the
// lock across both reads excludes in-flight commits, so the pair always
// reflects a single committed state.
func (e *Engine) Snapshot(ctx context.Context) (types.Account, []types.Holding, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	account, err := e.account(ctx)
	if err != nil {
		return types.Account{}, nil, err
	}
	holdings, err := e.store.Holdings(ctx)
	if err != nil {
		return types.Account{}, nil, err
	}
	return account, holdings, nil
}

func (e *Engine) account(ctx context.Context) (types.Account, error) {
	account, err := e.store.Account(ctx)
	if err != nil {
		return types.Account{}, err
	}
	if account != nil {
		return *account, nil
	}
	created, err := e.store.InitAccount(ctx, types.Account{CashBalance: e.opening})
	if err != nil {
		return types.Account{}, fmt.Errorf("initialize account: %w", err)
	}
	e.log.Info().Str("opening_balance", e.opening.String()).Msg("Portfolio account initialized")
	return created, nil
}
