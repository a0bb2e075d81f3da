package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an append-only record of an executed or cancelled buy/sell order.
// Once an order reaches a terminal status (COMPLETED or CANCELLED) it never
// changes again.
type Order struct {
	ID          int64           `json:"id"`
	Ticker      string          `json:"ticker"`
	Type        OrderType       `json:"orderType"`
	Status      OrderStatus     `json:"status"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	ExecutedAt  *time.Time      `json:"executedAt,omitempty"`
}
