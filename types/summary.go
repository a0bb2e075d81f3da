package types

import "github.com/shopspring/decimal"

// Summary aggregates the portfolio: invested capital at cost, current
// market value, and the resulting profit/loss. Monetary fields are rounded
// to 2 decimal places.
type Summary struct {
	CashBalance   decimal.Decimal `json:"cashBalance"`
	TotalInvested decimal.Decimal `json:"totalInvested"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
	ProfitLoss    decimal.Decimal `json:"profitLoss"`
	ReturnPercent decimal.Decimal `json:"returnPercent"`
}
