package market

import (
	"hash/fnv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

// usStocks is the universe scanned for market movers.
var usStocks = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "JPM", "V", "WMT"}

type mockStock struct {
	name          string
	price         string
	changePercent string
	marketCap     string
	peRatio       string
}

// mockStocks is the synthetic quote table used when the upstream provider
// is unavailable.
var mockStocks = map[string]mockStock{
	"AAPL":  {"Apple Inc.", "182.50", "5.2", "2850000000000", "28.5"},
	"MSFT":  {"Microsoft Corp.", "378.90", "3.8", "2810000000000", "35.2"},
	"GOOGL": {"Alphabet Inc.", "141.80", "4.1", "1780000000000", "25.8"},
	"AMZN":  {"Amazon.com Inc.", "178.25", "6.2", "1860000000000", "62.3"},
	"TSLA":  {"Tesla Inc.", "248.75", "-2.4", "790000000000", "72.5"},
	"META":  {"Meta Platforms", "485.60", "4.8", "1240000000000", "32.1"},
	"NVDA":  {"NVIDIA Corp.", "682.35", "7.2", "1680000000000", "65.4"},
	"JPM":   {"JPMorgan Chase", "195.40", "1.5", "562000000000", "11.2"},
	"V":     {"Visa Inc.", "275.20", "2.1", "565000000000", "29.8"},
	"WMT":   {"Walmart Inc.", "165.80", "0.8", "446000000000", "28.4"},
	"NFLX":  {"Netflix Inc.", "545.20", "3.5", "236000000000", "42.3"},
	"DIS":   {"Walt Disney Co.", "112.45", "-1.2", "205000000000", "68.5"},
}

// mockDetail builds a deterministic synthetic stock detail. Known tickers
// come from the table; unknown tickers get values seeded by a hash of the
// symbol so repeated lookups agree.
func mockDetail(ticker string, now time.Time) types.StockDetail {
	stock, ok := mockStocks[ticker]
	if !ok {
		stock = synthesize(ticker)
	}

	price := decimal.RequireFromString(stock.price)
	changePercent := decimal.RequireFromString(stock.changePercent)
	change := price.Mul(changePercent).Div(decimal.NewFromInt(100)).Round(2)
	peRatio := decimal.RequireFromString(stock.peRatio)

	return types.StockDetail{
		Ticker:           ticker,
		Name:             stock.name,
		Exchange:         "NASDAQ",
		Currency:         "USD",
		Price:            price,
		Open:             price.Mul(decimal.RequireFromString("0.99")).Round(2),
		High:             price.Mul(decimal.RequireFromString("1.02")).Round(2),
		Low:              price.Mul(decimal.RequireFromString("0.98")).Round(2),
		PreviousClose:    price.Sub(change).Round(2),
		Volume:           mockVolume(ticker),
		AvgVolume:        mockVolume(ticker) * 3 / 5,
		Change:           change,
		ChangePercent:    changePercent,
		MarketCap:        decimal.RequireFromString(stock.marketCap),
		PERatio:          peRatio,
		EPS:              price.Div(peRatio).Round(2),
		FiftyTwoWeekHigh: price.Mul(decimal.RequireFromString("1.3")).Round(2),
		FiftyTwoWeekLow:  price.Mul(decimal.RequireFromString("0.7")).Round(2),
		Timestamp:        now,
	}
}

// synthesize fabricates a stable mock row for a ticker outside the table:
// price in [100, 300), change percent in [-5, +5).
func synthesize(ticker string) mockStock {
	seed := tickerSeed(ticker)
	price := decimal.NewFromInt(int64(10000 + seed%20000)).Div(decimal.NewFromInt(100))
	changePercent := decimal.NewFromInt(int64(seed%1000) - 500).Div(decimal.NewFromInt(100))
	return mockStock{
		name:          ticker,
		price:         price.String(),
		changePercent: changePercent.String(),
		marketCap:     "100000000000",
		peRatio:       "25",
	}
}

func mockVolume(ticker string) int64 {
	return int64(5_000_000 + tickerSeed(ticker)%45_000_000)
}

func tickerSeed(ticker string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(ticker))
	return h.Sum64()
}
