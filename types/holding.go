package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a position in a single ticker. A holding exists iff its
// quantity is strictly positive; a fully sold position is deleted rather
// than kept at zero.
type Holding struct {
	Ticker    string          `json:"ticker"`
	Quantity  decimal.Decimal `json:"quantity"`
	AvgCost   decimal.Decimal `json:"avgBuyPrice"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// HoldingView is a holding joined with its current market price.
type HoldingView struct {
	Holding
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
	ProfitLoss    decimal.Decimal `json:"profitLoss"`
	ReturnPercent decimal.Decimal `json:"returnPercent"`
}
