package types

import "github.com/shopspring/decimal"

// Account holds the single cash balance of the portfolio. The balance is
// only mutated inside an order commit and never goes negative.
type Account struct {
	CashBalance decimal.Decimal `json:"cashBalance"`
}
