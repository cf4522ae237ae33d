package store

import (
	"context"
	"strings"
	"sync"

	"stockwatch/internal/market"
)

// Memory is a process-lifetime Store backed by maps.
type Memory struct {
	mu      sync.RWMutex
	stocks  map[string]market.Stock
	indices map[string]market.MarketIndex
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		stocks:  make(map[string]market.Stock),
		indices: make(map[string]market.MarketIndex),
	}
}

func (m *Memory) GetStock(_ context.Context, symbol string) (market.Stock, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stocks[strings.ToUpper(symbol)]
	return s, ok, nil
}

func (m *Memory) AllStocks(_ context.Context) ([]market.Stock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]market.Stock, 0, len(m.stocks))
	for _, s := range m.stocks {
		out = append(out, s)
	}
	return out, nil
}

func (m *Memory) UpsertStock(_ context.Context, s market.Stock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.Symbol = strings.ToUpper(s.Symbol)
	m.stocks[s.Symbol] = s
	return nil
}

func (m *Memory) SearchStocks(_ context.Context, query string) ([]market.Stock, error) {
	term := strings.ToLower(query)
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []market.Stock
	for _, s := range m.stocks {
		if strings.Contains(strings.ToLower(s.Symbol), term) || strings.Contains(strings.ToLower(s.Name), term) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Memory) Indices(_ context.Context) ([]market.MarketIndex, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]market.MarketIndex, 0, len(m.indices))
	for _, idx := range m.indices {
		out = append(out, idx)
	}
	return out, nil
}

func (m *Memory) UpsertIndex(_ context.Context, idx market.MarketIndex) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx.Symbol = strings.ToUpper(idx.Symbol)
	m.indices[idx.Symbol] = idx
	return nil
}
