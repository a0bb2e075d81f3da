// Package market serves stock quotes, per-ticker detail, and market mover
// lists. Live data comes from the Yahoo chart API; every lookup falls back
// to the synthetic mock table when the upstream fails, so the rest of the
// system never sees a provider outage. Mover lists are cached with a TTL
// and refreshed by a scheduled job.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

const (
	cacheKeyGainers = "market:gainers"
	cacheKeyLosers  = "market:losers"
	cacheKeyActive  = "market:active"

	moversLimit = 5
)

// Provider is the upstream quote source.
type Provider interface {
	Quote(ctx context.Context, ticker string) (types.Quote, error)
	Detail(ctx context.Context, ticker string) (types.StockDetail, error)
}

// CacheStore persists JSON cache entries keyed by name. Implementations
// report their own miss errors; the service treats any read failure as a
// miss and recomputes.
type CacheStore interface {
	GetCache(ctx context.Context, key string) (value []byte, updatedAt time.Time, err error)
	PutCache(ctx context.Context, key string, value []byte) error
}

type Service struct {
	provider Provider
	cache    CacheStore
	ttl      time.Duration
	log      zerolog.Logger
}

func NewService(provider Provider, cache CacheStore, ttl time.Duration, log zerolog.Logger) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		log:      log.With().Str("component", "market").Logger(),
	}
}

// Quote returns the current price for a ticker, substituting a synthetic
// quote when the provider fails.
func (s *Service) Quote(ctx context.Context, ticker string) (types.Quote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return types.Quote{}, fmt.Errorf("ticker is required")
	}

	if s.provider != nil {
		quote, err := s.provider.Quote(ctx, ticker)
		if err == nil {
			return quote, nil
		}
		s.log.Warn().Err(err).Str("ticker", ticker).Msg("Provider unavailable, using mock quote")
	}

	detail := mockDetail(ticker, time.Now())
	return types.Quote{Ticker: ticker, Price: detail.Price, AsOf: detail.Timestamp}, nil
}

// Price implements the summary calculator's price oracle.
func (s *Service) Price(ctx context.Context, ticker string) (decimal.Decimal, error) {
	quote, err := s.Quote(ctx, ticker)
	if err != nil {
		return decimal.Zero, err
	}
	return quote.Price, nil
}

// Detail returns the full market snapshot for a ticker, mock-backed like
// Quote.
func (s *Service) Detail(ctx context.Context, ticker string) (types.StockDetail, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return types.StockDetail{}, fmt.Errorf("ticker is required")
	}

	if s.provider != nil {
		detail, err := s.provider.Detail(ctx, ticker)
		if err == nil {
			return detail, nil
		}
		s.log.Warn().Err(err).Str("ticker", ticker).Msg("Provider unavailable, using mock detail")
	}

	return mockDetail(ticker, time.Now()), nil
}

// TopGainers returns up to five stocks with the largest positive change.
func (s *Service) TopGainers(ctx context.Context) ([]types.Mover, error) {
	return s.cachedMovers(ctx, cacheKeyGainers)
}

// TopLosers returns up to five stocks with the largest negative change.
func (s *Service) TopLosers(ctx context.Context) ([]types.Mover, error) {
	return s.cachedMovers(ctx, cacheKeyLosers)
}

// MostActive returns up to five stocks by traded volume.
func (s *Service) MostActive(ctx context.Context) ([]types.Mover, error) {
	return s.cachedMovers(ctx, cacheKeyActive)
}

// Refresh recomputes all mover lists and rewrites the cache. The scheduler
// runs this hourly; handlers also call through here on a cache miss.
func (s *Service) Refresh(ctx context.Context) error {
	details := s.scanUniverse(ctx)

	for key, movers := range map[string][]types.Mover{
		cacheKeyGainers: gainers(details),
		cacheKeyLosers:  losers(details),
		cacheKeyActive:  mostActive(details),
	} {
		payload, err := json.Marshal(movers)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		if err := s.cache.PutCache(ctx, key, payload); err != nil {
			return fmt.Errorf("cache %s: %w", key, err)
		}
	}

	s.log.Info().Int("universe", len(details)).Msg("Market movers refreshed")
	return nil
}

func (s *Service) cachedMovers(ctx context.Context, key string) ([]types.Mover, error) {
	if payload, updatedAt, err := s.cache.GetCache(ctx, key); err == nil && time.Since(updatedAt) < s.ttl {
		var movers []types.Mover
		if err := json.Unmarshal(payload, &movers); err == nil {
			return movers, nil
		}
		s.log.Warn().Str("key", key).Msg("Discarding unreadable cache entry")
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	payload, _, err := s.cache.GetCache(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("movers cache %s: %w", key, err)
	}
	var movers []types.Mover
	if err := json.Unmarshal(payload, &movers); err != nil {
		return nil, fmt.Errorf("decode movers %s: %w", key, err)
	}
	return movers, nil
}

func (s *Service) scanUniverse(ctx context.Context) []types.StockDetail {
	details := make([]types.StockDetail, 0, len(usStocks))
	for _, ticker := range usStocks {
		detail, err := s.Detail(ctx, ticker)
		if err != nil {
			s.log.Warn().Err(err).Str("ticker", ticker).Msg("Skipping ticker in movers scan")
			continue
		}
		details = append(details, detail)
	}
	return details
}

func gainers(details []types.StockDetail) []types.Mover {
	up := filterMovers(details, func(d types.StockDetail) bool { return d.ChangePercent.IsPositive() })
	sort.Slice(up, func(i, j int) bool { return up[i].ChangePercent.GreaterThan(up[j].ChangePercent) })
	return capMovers(up)
}

func losers(details []types.StockDetail) []types.Mover {
	down := filterMovers(details, func(d types.StockDetail) bool { return d.ChangePercent.IsNegative() })
	sort.Slice(down, func(i, j int) bool { return down[i].ChangePercent.LessThan(down[j].ChangePercent) })
	return capMovers(down)
}

func mostActive(details []types.StockDetail) []types.Mover {
	all := filterMovers(details, func(types.StockDetail) bool { return true })
	sort.Slice(all, func(i, j int) bool { return all[i].Volume > all[j].Volume })
	return capMovers(all)
}

func filterMovers(details []types.StockDetail, keep func(types.StockDetail) bool) []types.Mover {
	movers := make([]types.Mover, 0, len(details))
	for _, d := range details {
		if !keep(d) {
			continue
		}
		movers = append(movers, types.Mover{
			Ticker:        d.Ticker,
			Name:          d.Name,
			Price:         d.Price,
			Change:        d.Change,
			ChangePercent: d.ChangePercent,
			Volume:        d.Volume,
			MarketCap:     d.MarketCap,
		})
	}
	return movers
}

func capMovers(movers []types.Mover) []types.Mover {
	if len(movers) > moversLimit {
		return movers[:moversLimit]
	}
	return movers
}
