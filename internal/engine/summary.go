package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

// moneyScale is the precision of monetary amounts and percentages in the
// summary response.
const moneyScale = 2

// PriceOracle supplies the current price for a ticker. Failures surface as
// errors; the calculator never substitutes zero for a missing price.
type PriceOracle interface {
	Price(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// SummaryCalculator computes the aggregate portfolio view: invested capital
// at cost, current market value, profit/loss, and percent return. It is
// read-only and safe to run concurrently with order execution.
type SummaryCalculator struct {
	engine *Engine
	oracle PriceOracle
	log    zerolog.Logger
}

func NewSummaryCalculator(engine *Engine, oracle PriceOracle, log zerolog.Logger) *SummaryCalculator {
	return &SummaryCalculator{
		engine: engine,
		oracle: oracle,
		log:    log.With().Str("component", "summary").Logger(),
	}
}

// Summary walks the holdings once, pricing each through the oracle. Cash
// and holdings come from one engine snapshot, so a concurrently committing
// order can never leave the summary mixing pre-order cash with post-order
// positions. Pricing happens after the snapshot, outside the engine lock;
// a failed price lookup aborts the whole computation.
func (c *SummaryCalculator) Summary(ctx context.Context) (types.Summary, error) {
	account, holdings, err := c.engine.Snapshot(ctx)
	if err != nil {
		return types.Summary{}, err
	}

	invested := decimal.Zero
	current := decimal.Zero
	for _, h := range holdings {
		invested = invested.Add(h.Quantity.Mul(h.AvgCost))

		price, err := c.oracle.Price(ctx, h.Ticker)
		if err != nil {
			return types.Summary{}, fmt.Errorf("%w: %s: %v", ErrPriceUnavailable, h.Ticker, err)
		}
		current = current.Add(h.Quantity.Mul(price))
	}

	profitLoss := current.Sub(invested)
	returnPercent := decimal.Zero
	if invested.IsPositive() {
		returnPercent = profitLoss.Div(invested).Mul(decimal.NewFromInt(100)).Round(moneyScale)
	}

	return types.Summary{
		CashBalance:   account.CashBalance.Round(moneyScale),
		TotalInvested: invested.Round(moneyScale),
		CurrentValue:  current.Round(moneyScale),
		ProfitLoss:    profitLoss.Round(moneyScale),
		ReturnPercent: returnPercent,
	}, nil
}

// HoldingViews prices every holding through the oracle and returns each
// position with its current value and profit/loss. Like Summary, the
// positions come from one engine snapshot and pricing stays outside the
// engine lock.
func (c *SummaryCalculator) HoldingViews(ctx context.Context) ([]types.HoldingView, error) {
	_, holdings, err := c.engine.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]types.HoldingView, 0, len(holdings))
	for _, h := range holdings {
		price, err := c.oracle.Price(ctx, h.Ticker)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPriceUnavailable, h.Ticker, err)
		}

		invested := h.Quantity.Mul(h.AvgCost)
		value := h.Quantity.Mul(price)
		profitLoss := value.Sub(invested)
		returnPercent := decimal.Zero
		if invested.IsPositive() {
			returnPercent = profitLoss.Div(invested).Mul(decimal.NewFromInt(100)).Round(moneyScale)
		}

		views = append(views, types.HoldingView{
			Holding:       h,
			CurrentPrice:  price,
			CurrentValue:  value.Round(moneyScale),
			ProfitLoss:    profitLoss.Round(moneyScale),
			ReturnPercent: returnPercent,
		})
	}
	return views, nil
}
