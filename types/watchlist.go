package types

import "time"

// WatchlistItem is a ticker the user is tracking without owning it.
type WatchlistItem struct {
	ID          int64     `json:"id"`
	Ticker      string    `json:"ticker"`
	CompanyName string    `json:"companyName"`
	Notes       string    `json:"notes,omitempty"`
	AddedAt     time.Time `json:"addedAt"`
}
