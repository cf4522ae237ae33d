// Package watchlist is the registry of symbols the user tracks. It is the
// sole source of which symbols get refreshed; membership here says nothing
// about what is cached and vice versa.
package watchlist

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"stockwatch/internal/market"
)

// Entry is one tracked symbol.
type Entry struct {
	ID      string    `json:"id"`
	Symbol  string    `json:"symbol"`
	AddedAt time.Time `json:"addedAt"`
}

// Registry is an insertion-ordered set of entries keyed by normalized
// symbol. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string

	now func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Add registers a symbol. Adding a symbol that is already present is a
// no-op returning the existing entry unchanged.
func (r *Registry) Add(symbol string) (Entry, error) {
	sym, err := market.NormalizeSymbol(symbol)
	if err != nil {
		return Entry{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sym]; ok {
		return e, nil
	}
	e := Entry{ID: uuid.NewString(), Symbol: sym, AddedAt: r.now()}
	r.entries[sym] = e
	r.order = append(r.order, sym)
	return e, nil
}

// Remove deletes a symbol and reports whether it was present.
func (r *Registry) Remove(symbol string) bool {
	sym, err := market.NormalizeSymbol(symbol)
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[sym]; !ok {
		return false
	}
	delete(r.entries, sym)
	for i, s := range r.order {
		if s == sym {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry) Contains(symbol string) bool {
	sym, err := market.NormalizeSymbol(symbol)
	if err != nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[sym]
	return ok
}

// List returns entries in insertion order.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.order))
	for _, sym := range r.order {
		out = append(out, r.entries[sym])
	}
	return out
}

// Symbols returns tracked symbols in insertion order.
func (r *Registry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
