// Package store holds cached market records keyed by normalized symbol.
// Records are only ever replaced wholesale; there are no partial updates.
package store

import (
	"context"

	"stockwatch/internal/market"
)

// Store is the cache the resolver falls back to when live data is
// unavailable. Implementations must be safe for concurrent use; writes to
// distinct symbols are independent and last-writer-wins per key.
type Store interface {
	// GetStock returns the cached record for a symbol, if any.
	GetStock(ctx context.Context, symbol string) (market.Stock, bool, error)
	// AllStocks returns every cached stock, in no particular order.
	AllStocks(ctx context.Context) ([]market.Stock, error)
	// UpsertStock inserts or overwrites the record keyed by its own symbol.
	UpsertStock(ctx context.Context, s market.Stock) error
	// SearchStocks returns stocks whose symbol or name contains the query,
	// case-insensitive. No ranking.
	SearchStocks(ctx context.Context, query string) ([]market.Stock, error)

	// Indices returns every cached market index.
	Indices(ctx context.Context) ([]market.MarketIndex, error)
	// UpsertIndex inserts or overwrites the index keyed by its own symbol.
	UpsertIndex(ctx context.Context, idx market.MarketIndex) error
}
