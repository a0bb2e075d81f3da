package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the minimal price point used by the order and summary paths.
type Quote struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
	AsOf   time.Time       `json:"asOf"`
}

// StockDetail is the full per-ticker market snapshot served by the stocks
// endpoint and used to build market movers.
type StockDetail struct {
	Ticker           string          `json:"ticker"`
	Name             string          `json:"name"`
	Exchange         string          `json:"exchange"`
	Currency         string          `json:"currency"`
	Price            decimal.Decimal `json:"price"`
	Open             decimal.Decimal `json:"open"`
	High             decimal.Decimal `json:"high"`
	Low              decimal.Decimal `json:"low"`
	PreviousClose    decimal.Decimal `json:"previousClose"`
	Volume           int64           `json:"volume"`
	AvgVolume        int64           `json:"avgVolume"`
	Change           decimal.Decimal `json:"change"`
	ChangePercent    decimal.Decimal `json:"changePercent"`
	MarketCap        decimal.Decimal `json:"marketCap"`
	PERatio          decimal.Decimal `json:"peRatio"`
	EPS              decimal.Decimal `json:"eps"`
	FiftyTwoWeekHigh decimal.Decimal `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  decimal.Decimal `json:"fiftyTwoWeekLow"`
	Timestamp        time.Time       `json:"timestamp"`
}

// Mover is a row in the top gainers / losers / most active lists.
type Mover struct {
	Ticker        string          `json:"ticker"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	Volume        int64           `json:"volume"`
	MarketCap     decimal.Decimal `json:"marketCap"`
}
