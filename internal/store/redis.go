package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"stockwatch/internal/market"
)

const (
	stocksKey  = "stockwatch:stocks"
	indicesKey = "stockwatch:indices"
)

// Redis is a Store that survives process restarts. Each collection lives
// under one fixed key as a JSON-serialized array and is replaced wholesale
// on every write, mirroring the layout used by the browser-storage variant
// of the dashboard. The mutex serializes read-modify-write cycles within
// this process.
type Redis struct {
	client *redis.Client
	mu     sync.Mutex
}

// Compile-time check to ensure Redis implements Store
var _ Store = (*Redis)(nil)

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) GetStock(ctx context.Context, symbol string) (market.Stock, bool, error) {
	stocks, err := loadArray[market.Stock](ctx, r.client, stocksKey)
	if err != nil {
		return market.Stock{}, false, err
	}
	sym := strings.ToUpper(symbol)
	for _, s := range stocks {
		if s.Symbol == sym {
			return s, true, nil
		}
	}
	return market.Stock{}, false, nil
}

func (r *Redis) AllStocks(ctx context.Context) ([]market.Stock, error) {
	return loadArray[market.Stock](ctx, r.client, stocksKey)
}

func (r *Redis) UpsertStock(ctx context.Context, s market.Stock) error {
	s.Symbol = strings.ToUpper(s.Symbol)
	r.mu.Lock()
	defer r.mu.Unlock()
	stocks, err := loadArray[market.Stock](ctx, r.client, stocksKey)
	if err != nil {
		return err
	}
	replaced := false
	for i := range stocks {
		if stocks[i].Symbol == s.Symbol {
			stocks[i] = s
			replaced = true
			break
		}
	}
	if !replaced {
		stocks = append(stocks, s)
	}
	return saveArray(ctx, r.client, stocksKey, stocks)
}

func (r *Redis) SearchStocks(ctx context.Context, query string) ([]market.Stock, error) {
	stocks, err := loadArray[market.Stock](ctx, r.client, stocksKey)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(query)
	var out []market.Stock
	for _, s := range stocks {
		if strings.Contains(strings.ToLower(s.Symbol), term) || strings.Contains(strings.ToLower(s.Name), term) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *Redis) Indices(ctx context.Context) ([]market.MarketIndex, error) {
	return loadArray[market.MarketIndex](ctx, r.client, indicesKey)
}

func (r *Redis) UpsertIndex(ctx context.Context, idx market.MarketIndex) error {
	idx.Symbol = strings.ToUpper(idx.Symbol)
	r.mu.Lock()
	defer r.mu.Unlock()
	indices, err := loadArray[market.MarketIndex](ctx, r.client, indicesKey)
	if err != nil {
		return err
	}
	replaced := false
	for i := range indices {
		if indices[i].Symbol == idx.Symbol {
			indices[i] = idx
			replaced = true
			break
		}
	}
	if !replaced {
		indices = append(indices, idx)
	}
	return saveArray(ctx, r.client, indicesKey, indices)
}

func (r *Redis) Close() error { return r.client.Close() }

func loadArray[T any](ctx context.Context, client *redis.Client, key string) ([]T, error) {
	payload, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func saveArray[T any](ctx context.Context, client *redis.Client, key string, records []T) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, payload, 0).Err()
}
