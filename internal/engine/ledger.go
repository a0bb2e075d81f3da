package engine

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

// avgCostScale is the precision of the weighted-average cost basis. All
// averaging divisions round half-up at this scale so repeated buys cannot
// grow unbounded fractions.
const avgCostScale = 4

// applyBuy folds a buy into an existing holding, or opens a new one. On a
// repeat buy the cost basis becomes the quantity-weighted average of the
// old basis and the fill price.
func applyBuy(existing *types.Holding, ticker string, quantity, price decimal.Decimal, now time.Time) types.Holding {
	if existing == nil {
		return types.Holding{
			Ticker:    ticker,
			Quantity:  quantity,
			AvgCost:   price,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	updated := *existing
	updated.AvgCost = weightedAvgCost(existing.AvgCost, existing.Quantity, price, quantity)
	updated.Quantity = existing.Quantity.Add(quantity)
	updated.UpdatedAt = now
	return updated
}

// applySell removes quantity from a holding. Cost basis is unaffected by
// partial sells; a sell that empties the position returns nil so the caller
// deletes the row instead of keeping it at zero. The caller has already
// validated the position; the guard here re-asserts the invariant.
func applySell(existing *types.Holding, quantity decimal.Decimal, now time.Time) (*types.Holding, error) {
	if existing == nil || existing.Quantity.LessThan(quantity) {
		return nil, ErrInsufficientPosition
	}
	remaining := existing.Quantity.Sub(quantity)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	updated := *existing
	updated.Quantity = remaining
	updated.UpdatedAt = now
	return &updated, nil
}

func weightedAvgCost(existingAvg, existingQty, price, quantity decimal.Decimal) decimal.Decimal {
	if existingQty.IsZero() {
		return price
	}
	total := existingAvg.Mul(existingQty).Add(price.Mul(quantity))
	return total.Div(existingQty.Add(quantity)).Round(avgCostScale)
}
