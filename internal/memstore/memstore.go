// Package memstore is the in-memory storage backend. It is the default
// when no DATABASE_URL is configured and the store used by the test
// suites. All mutating operations take the write lock, so a committed
// order is visible to readers only as a whole.
package memstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sukrithpvs/Insight/internal/engine"
	"github.com/sukrithpvs/Insight/internal/watchlist"
	"github.com/sukrithpvs/Insight/types"
)

var ErrCacheMiss = errors.New("cache entry not found")

type cacheEntry struct {
	value     []byte
	updatedAt time.Time
}

type Store struct {
	mu          sync.RWMutex
	account     *types.Account
	holdings    map[string]types.Holding
	orders      []types.Order
	nextOrderID int64
	watchlist   []types.WatchlistItem
	nextItemID  int64
	cache       map[string]cacheEntry
}

func New() *Store {
	return &Store{
		holdings:    make(map[string]types.Holding),
		cache:       make(map[string]cacheEntry),
		nextOrderID: 1,
		nextItemID:  1,
	}
}

// --- engine.Store ---

func (s *Store) Account(_ context.Context) (*types.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return nil, nil
	}
	account := *s.account
	return &account, nil
}

func (s *Store) InitAccount(_ context.Context, account types.Account) (types.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		stored := account
		s.account = &stored
	}
	return *s.account, nil
}

func (s *Store) Holding(_ context.Context, ticker string) (*types.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	holding, ok := s.holdings[ticker]
	if !ok {
		return nil, nil
	}
	return &holding, nil
}

func (s *Store) Holdings(_ context.Context) ([]types.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Holding, 0, len(s.holdings))
	for _, holding := range s.holdings {
		out = append(out, holding)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out, nil
}

func (s *Store) Order(_ context.Context, id int64) (*types.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			order := s.orders[i]
			return &order, nil
		}
	}
	return nil, nil
}

func (s *Store) Orders(_ context.Context, ticker string) ([]types.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Order, 0, len(s.orders))
	// Journal is append-only; walk backwards for newest first.
	for i := len(s.orders) - 1; i >= 0; i-- {
		if ticker != "" && s.orders[i].Ticker != ticker {
			continue
		}
		out = append(out, s.orders[i])
	}
	return out, nil
}

func (s *Store) CommitOrder(_ context.Context, commit engine.OrderCommit) (types.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := commit.Order
	order.ID = s.nextOrderID
	s.nextOrderID++
	s.orders = append(s.orders, order)

	if s.account == nil {
		s.account = &types.Account{}
	}
	s.account.CashBalance = commit.CashBalance

	if commit.Holding == nil {
		delete(s.holdings, order.Ticker)
	} else {
		s.holdings[commit.Holding.Ticker] = *commit.Holding
	}

	return order, nil
}

func (s *Store) SetOrderStatus(_ context.Context, id int64, status types.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return nil
		}
	}
	return engine.ErrOrderNotFound
}

// SeedOrder inserts a journal row directly, bypassing execution. Used by
// tests and by the cancel path tests to create PENDING rows that the
// instant-execution engine never produces itself.
func (s *Store) SeedOrder(order types.Order) types.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = s.nextOrderID
	s.nextOrderID++
	s.orders = append(s.orders, order)
	return order
}

// --- watchlist.Store ---

func (s *Store) AddWatchlistItem(_ context.Context, item types.WatchlistItem) (types.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextItemID
	s.nextItemID++
	s.watchlist = append(s.watchlist, item)
	return item, nil
}

func (s *Store) WatchlistItems(_ context.Context) ([]types.WatchlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.WatchlistItem, 0, len(s.watchlist))
	for i := len(s.watchlist) - 1; i >= 0; i-- {
		out = append(out, s.watchlist[i])
	}
	return out, nil
}

func (s *Store) WatchlistItemExists(_ context.Context, ticker string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.watchlist {
		if strings.EqualFold(s.watchlist[i].Ticker, ticker) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) RemoveWatchlistItem(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.watchlist {
		if s.watchlist[i].ID == id {
			s.watchlist = append(s.watchlist[:i], s.watchlist[i+1:]...)
			return nil
		}
	}
	return watchlist.ErrItemNotFound
}

func (s *Store) RemoveWatchlistTicker(_ context.Context, ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.watchlist {
		if strings.EqualFold(s.watchlist[i].Ticker, ticker) {
			s.watchlist = append(s.watchlist[:i], s.watchlist[i+1:]...)
			return nil
		}
	}
	return watchlist.ErrItemNotFound
}

// --- market.CacheStore ---

func (s *Store) GetCache(_ context.Context, key string) ([]byte, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cache[key]
	if !ok {
		return nil, time.Time{}, ErrCacheMiss
	}
	return entry.value, entry.updatedAt, nil
}

func (s *Store) PutCache(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{value: value, updatedAt: time.Now()}
	return nil
}
