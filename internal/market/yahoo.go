package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

var errNoResult = errors.New("yahoo: no result")

const defaultYahooBaseURL = "https://query2.finance.yahoo.com"

// YahooClient fetches quotes from the Yahoo Finance v8 chart API. The
// client timeout bounds every call so a slow upstream cannot stall the
// summary or watchlist paths.
type YahooClient struct {
	cli     *http.Client
	baseURL string
}

func NewYahooClient() *YahooClient {
	return &YahooClient{
		cli:     &http.Client{Timeout: 8 * time.Second},
		baseURL: defaultYahooBaseURL,
	}
}

// NewYahooClientWithBaseURL is used by tests to point the client at a
// local httptest server.
func NewYahooClientWithBaseURL(baseURL string) *YahooClient {
	c := NewYahooClient()
	c.baseURL = baseURL
	return c
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string  `json:"currency"`
				Symbol               string  `json:"symbol"`
				ExchangeName         string  `json:"exchangeName"`
				LongName             string  `json:"longName"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				RegularMarketTime    int64   `json:"regularMarketTime"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				RegularMarketVolume  int64   `json:"regularMarketVolume"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				PreviousClose        float64 `json:"previousClose"`
				FiftyTwoWeekHigh     float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow      float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []float64 `json:"open"`
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

func (c *YahooClient) fetchChart(ctx context.Context, ticker string) (*chartResponse, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, ticker)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "insight/1.0")

	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo http %d", resp.StatusCode)
	}

	var raw chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if len(raw.Chart.Result) == 0 {
		return nil, errNoResult
	}
	return &raw, nil
}

// Quote returns the current price for a ticker.
func (c *YahooClient) Quote(ctx context.Context, ticker string) (types.Quote, error) {
	raw, err := c.fetchChart(ctx, ticker)
	if err != nil {
		return types.Quote{}, err
	}

	meta := raw.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return types.Quote{}, errNoResult
	}
	asOf := time.Unix(meta.RegularMarketTime, 0)
	if meta.RegularMarketTime == 0 {
		asOf = time.Now()
	}

	return types.Quote{
		Ticker: ticker,
		Price:  decimal.NewFromFloat(meta.RegularMarketPrice),
		AsOf:   asOf,
	}, nil
}

// Detail returns the fuller market snapshot the chart endpoint can supply.
// Fundamentals (market cap, P/E, EPS) are not part of the chart payload
// and stay zero when the upstream path is taken.
func (c *YahooClient) Detail(ctx context.Context, ticker string) (types.StockDetail, error) {
	raw, err := c.fetchChart(ctx, ticker)
	if err != nil {
		return types.StockDetail{}, err
	}

	result := raw.Chart.Result[0]
	meta := result.Meta
	if meta.RegularMarketPrice <= 0 {
		return types.StockDetail{}, errNoResult
	}

	price := decimal.NewFromFloat(meta.RegularMarketPrice)
	previousClose := meta.PreviousClose
	if previousClose == 0 {
		previousClose = meta.ChartPreviousClose
	}

	detail := types.StockDetail{
		Ticker:           meta.Symbol,
		Name:             meta.LongName,
		Exchange:         meta.ExchangeName,
		Currency:         meta.Currency,
		Price:            price,
		High:             decimal.NewFromFloat(meta.RegularMarketDayHigh),
		Low:              decimal.NewFromFloat(meta.RegularMarketDayLow),
		PreviousClose:    decimal.NewFromFloat(previousClose),
		Volume:           meta.RegularMarketVolume,
		FiftyTwoWeekHigh: decimal.NewFromFloat(meta.FiftyTwoWeekHigh),
		FiftyTwoWeekLow:  decimal.NewFromFloat(meta.FiftyTwoWeekLow),
		Timestamp:        time.Now(),
	}
	if detail.Name == "" {
		detail.Name = meta.Symbol
	}
	if len(result.Indicators.Quote) > 0 && len(result.Indicators.Quote[0].Open) > 0 {
		detail.Open = decimal.NewFromFloat(result.Indicators.Quote[0].Open[0])
	}
	if previousClose > 0 {
		detail.Change = price.Sub(detail.PreviousClose).Round(2)
		detail.ChangePercent = detail.Change.
			Div(detail.PreviousClose).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return detail, nil
}
