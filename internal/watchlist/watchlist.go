// Package watchlist tracks tickers the user follows without owning them.
// Listings are enriched with live prices from the market service; the
// enrichment is best effort and never fails a request.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sukrithpvs/Insight/types"
)

var (
	ErrItemNotFound    = errors.New("watchlist item not found")
	ErrDuplicateTicker = errors.New("ticker already on watchlist")
	ErrInvalidTicker   = errors.New("ticker is required")
)

// Store persists watchlist rows. Remove operations return ErrItemNotFound
// when nothing matches.
type Store interface {
	AddWatchlistItem(ctx context.Context, item types.WatchlistItem) (types.WatchlistItem, error)
	WatchlistItems(ctx context.Context) ([]types.WatchlistItem, error)
	WatchlistItemExists(ctx context.Context, ticker string) (bool, error)
	RemoveWatchlistItem(ctx context.Context, id int64) error
	RemoveWatchlistTicker(ctx context.Context, ticker string) error
}

// Quoter supplies the market snapshot used to enrich listings.
type Quoter interface {
	Detail(ctx context.Context, ticker string) (types.StockDetail, error)
}

// Entry is a watchlist row joined with its current market snapshot.
type Entry struct {
	types.WatchlistItem
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
}

type Service struct {
	store  Store
	quotes Quoter
	log    zerolog.Logger
}

func NewService(store Store, quotes Quoter, log zerolog.Logger) *Service {
	return &Service{
		store:  store,
		quotes: quotes,
		log:    log.With().Str("component", "watchlist").Logger(),
	}
}

// Add puts a ticker on the watchlist. Duplicates are rejected; the company
// name is filled in from the market snapshot when one is available.
func (s *Service) Add(ctx context.Context, ticker, notes string) (types.WatchlistItem, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return types.WatchlistItem{}, ErrInvalidTicker
	}

	exists, err := s.store.WatchlistItemExists(ctx, ticker)
	if err != nil {
		return types.WatchlistItem{}, fmt.Errorf("check watchlist: %w", err)
	}
	if exists {
		return types.WatchlistItem{}, fmt.Errorf("%w: %s", ErrDuplicateTicker, ticker)
	}

	item := types.WatchlistItem{
		Ticker:  ticker,
		Notes:   strings.TrimSpace(notes),
		AddedAt: time.Now(),
	}
	if s.quotes != nil {
		if detail, err := s.quotes.Detail(ctx, ticker); err == nil {
			item.CompanyName = detail.Name
		} else {
			s.log.Warn().Err(err).Str("ticker", ticker).Msg("Could not resolve company name")
		}
	}

	stored, err := s.store.AddWatchlistItem(ctx, item)
	if err != nil {
		return types.WatchlistItem{}, fmt.Errorf("add watchlist item: %w", err)
	}
	s.log.Info().Str("ticker", ticker).Int64("id", stored.ID).Msg("Watchlist item added")
	return stored, nil
}

// List returns the watchlist newest first, each row enriched with the
// current price and day change. A failed quote leaves the row's market
// fields zero rather than failing the listing.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	items, err := s.store.WatchlistItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entry := Entry{WatchlistItem: item}
		if s.quotes != nil {
			if detail, err := s.quotes.Detail(ctx, item.Ticker); err == nil {
				entry.Price = detail.Price
				entry.Change = detail.Change
				entry.ChangePercent = detail.ChangePercent
				if entry.CompanyName == "" {
					entry.CompanyName = detail.Name
				}
			} else {
				s.log.Warn().Err(err).Str("ticker", item.Ticker).Msg("Quote unavailable for watchlist row")
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// RemoveByID deletes a single watchlist row.
func (s *Service) RemoveByID(ctx context.Context, id int64) error {
	if err := s.store.RemoveWatchlistItem(ctx, id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
		}
		return fmt.Errorf("remove watchlist item: %w", err)
	}
	return nil
}

// RemoveByTicker deletes the row tracking a ticker.
func (s *Service) RemoveByTicker(ctx context.Context, ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return ErrInvalidTicker
	}
	if err := s.store.RemoveWatchlistTicker(ctx, ticker); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return fmt.Errorf("%w: %s", ErrItemNotFound, ticker)
		}
		return fmt.Errorf("remove watchlist ticker: %w", err)
	}
	return nil
}
