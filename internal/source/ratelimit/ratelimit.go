// Package ratelimit gates calls to a quote source. The free Alpha Vantage
// tier allows a handful of requests per minute, and both the quote and the
// overview endpoint draw on the same quota, so the gate sits in front of
// every call.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"stockwatch/internal/source"
)

// TokenBucketSource wraps a Source and gates calls using a token bucket.
type TokenBucketSource struct {
	S  source.Source
	TB *TokenBucket
}

var _ source.Source = (*TokenBucketSource)(nil)

func (t *TokenBucketSource) Name() string { return t.S.Name() }

func (t *TokenBucketSource) Quote(ctx context.Context, symbol string) (source.Quote, error) {
	if t.TB != nil {
		if err := t.TB.Wait(ctx); err != nil {
			return source.Quote{}, err
		}
	}
	return t.S.Quote(ctx, symbol)
}

func (t *TokenBucketSource) Overview(ctx context.Context, symbol string) source.Overview {
	if t.TB != nil {
		if err := t.TB.Wait(ctx); err != nil {
			return source.DegradedOverview(symbol)
		}
	}
	return t.S.Overview(ctx, symbol)
}

// MinInterval wraps a Source and enforces a minimum time between calls.
// Concurrent calls wait until the interval has elapsed since the last call,
// or return early if the context is canceled.
type MinInterval struct {
	S        source.Source
	Interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

var _ source.Source = (*MinInterval)(nil)

func (m *MinInterval) Name() string { return m.S.Name() }

func (m *MinInterval) Quote(ctx context.Context, symbol string) (source.Quote, error) {
	if err := m.gate(ctx); err != nil {
		return source.Quote{}, err
	}
	q, err := m.S.Quote(ctx, symbol)
	m.stamp()
	return q, err
}

func (m *MinInterval) Overview(ctx context.Context, symbol string) source.Overview {
	if err := m.gate(ctx); err != nil {
		return source.DegradedOverview(symbol)
	}
	o := m.S.Overview(ctx, symbol)
	m.stamp()
	return o
}

func (m *MinInterval) gate(ctx context.Context) error {
	if m.Interval <= 0 {
		return nil
	}
	m.mu.Lock()
	wait := time.Until(m.last.Add(m.Interval))
	m.mu.Unlock()
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *MinInterval) stamp() {
	if m.Interval <= 0 {
		return
	}
	m.mu.Lock()
	m.last = time.Now()
	m.mu.Unlock()
}
