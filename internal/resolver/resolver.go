// Package resolver implements live-fetch-with-cache-fallback over a quote
// source and a record store. A successful fetch is the only path that ever
// advances a record's LastUpdated; failed fetches degrade to whatever the
// store already holds.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stockwatch/internal/market"
	"stockwatch/internal/source"
	"stockwatch/internal/store"
)

// ErrUnresolvable means a symbol has no live data and no cached record.
// Batch callers drop the symbol; single-item callers translate it to a
// not-found response.
var ErrUnresolvable = errors.New("symbol unresolvable")

type Resolver struct {
	src   source.Source
	store store.Store
	log   *zap.Logger

	maxConcurrency int
	now            func() time.Time
	newID          func() string
}

type Option func(*Resolver)

// WithMaxConcurrency bounds the number of in-flight resolutions during
// ResolveAll. Values below 1 mean sequential.
func WithMaxConcurrency(n int) Option {
	return func(r *Resolver) {
		if n >= 1 {
			r.maxConcurrency = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

func New(src source.Source, st store.Store, log *zap.Logger, opts ...Option) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Resolver{
		src:            src,
		store:          st,
		log:            log,
		maxConcurrency: 4,
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the freshest record available for a symbol: the live quote
// merged with its overview when the upstream cooperates, the cached record
// otherwise. No retries happen here; across refresh intervals the cache is
// the retry mechanism.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (market.Stock, error) {
	sym, err := market.NormalizeSymbol(symbol)
	if err != nil {
		return market.Stock{}, err
	}

	q, err := r.src.Quote(ctx, sym)
	if err != nil {
		r.log.Warn("live quote failed, falling back to cache",
			zap.String("symbol", sym), zap.Error(err))
		cached, ok, serr := r.store.GetStock(ctx, sym)
		if serr != nil {
			return market.Stock{}, serr
		}
		if ok {
			// Stale: LastUpdated is deliberately not refreshed.
			return cached, nil
		}
		return market.Stock{}, fmt.Errorf("%s: %w", sym, ErrUnresolvable)
	}

	ov := r.src.Overview(ctx, sym)

	rec := market.Stock{
		Symbol:        sym,
		Name:          ov.Name,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		Volume:        q.Volume,
		Open:          q.Open,
		High:          q.High,
		Low:           q.Low,
		MarketCap:     ov.MarketCap,
		LastUpdated:   r.now(),
	}
	// Refreshes overwrite the record wholesale but keep its identity.
	if existing, ok, serr := r.store.GetStock(ctx, sym); serr == nil && ok {
		rec.ID = existing.ID
	}
	if rec.ID == "" {
		rec.ID = r.newID()
	}
	if err := r.store.UpsertStock(ctx, rec); err != nil {
		return market.Stock{}, err
	}
	return rec, nil
}

// ResolveAll resolves each symbol independently and returns the records in
// input order. Symbols that cannot be resolved are omitted; one bad symbol
// never fails the whole listing.
func (r *Resolver) ResolveAll(ctx context.Context, symbols []string) ([]market.Stock, error) {
	results := make([]*market.Stock, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConcurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			rec, err := r.Resolve(gctx, symbol)
			if err != nil {
				if !errors.Is(err, ErrUnresolvable) && !errors.Is(err, market.ErrInvalidSymbol) {
					r.log.Warn("dropping symbol from listing",
						zap.String("symbol", symbol), zap.Error(err))
				}
				return nil
			}
			results[i] = &rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]market.Stock, 0, len(symbols))
	for _, rec := range results {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out, nil
}
