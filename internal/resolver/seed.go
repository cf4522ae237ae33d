package resolver

import (
	"context"

	"stockwatch/internal/market"
	"stockwatch/internal/watchlist"
)

// ResolveIndices returns the cached market indices. When none are cached yet
// the built-in sample set is written through the store and returned; index
// symbols are not reliably quotable upstream, so there is no live path.
func (r *Resolver) ResolveIndices(ctx context.Context) ([]market.MarketIndex, error) {
	cached, err := r.store.Indices(ctx)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}
	return r.seedIndices(ctx)
}

func (r *Resolver) seedIndices(ctx context.Context) ([]market.MarketIndex, error) {
	seeded := market.SampleIndices()
	for i := range seeded {
		seeded[i].ID = r.newID()
		seeded[i].LastUpdated = r.now()
		if err := r.store.UpsertIndex(ctx, seeded[i]); err != nil {
			return nil, err
		}
	}
	return seeded, nil
}

// SeedSampleData loads the demonstration stocks into the store and the
// watchlist, and the sample indices into the store.
func (r *Resolver) SeedSampleData(ctx context.Context, reg *watchlist.Registry) error {
	for _, s := range market.SampleStocks() {
		if _, err := reg.Add(s.Symbol); err != nil {
			return err
		}
		s.ID = r.newID()
		s.LastUpdated = r.now()
		if err := r.store.UpsertStock(ctx, s); err != nil {
			return err
		}
	}
	_, err := r.seedIndices(ctx)
	return err
}
