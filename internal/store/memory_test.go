package store_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"stockwatch/internal/market"
	"stockwatch/internal/store"
)

func stockFixture(symbol, name, price string) market.Stock {
	return market.Stock{
		ID:          symbol + "-id",
		Symbol:      symbol,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		LastUpdated: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemory_GetNormalizesKey(t *testing.T) {
	m := store.NewMemory()
	require.NoError(t, m.UpsertStock(t.Context(), stockFixture("AAPL", "Apple Inc.", "227.52")))

	got, ok, err := m.GetStock(t.Context(), "aapl")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "AAPL", got.Symbol)

	_, ok, err = m.GetStock(t.Context(), "MSFT")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemory_UpsertOverwritesWholesale(t *testing.T) {
	m := store.NewMemory()
	require.NoError(t, m.UpsertStock(t.Context(), stockFixture("AAPL", "Apple Inc.", "227.52")))

	replacement := stockFixture("aapl", "Apple Inc.", "230.10")
	require.NoError(t, m.UpsertStock(t.Context(), replacement))

	all, err := m.AllStocks(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.True(t, all[0].Price.Equal(decimal.RequireFromString("230.10")))
	require.Equal(t, "AAPL", all[0].Symbol, "upsert uppercases the record key")
}

func TestMemory_SearchSubstringCaseInsensitive(t *testing.T) {
	m := store.NewMemory()
	require.NoError(t, m.UpsertStock(t.Context(), stockFixture("AAPL", "Apple Inc.", "227.52")))
	require.NoError(t, m.UpsertStock(t.Context(), stockFixture("MSFT", "Microsoft Corporation", "425.47")))

	tests := []struct {
		query string
		want  []string
	}{
		{"app", []string{"AAPL"}}, // matches symbol and name
		{"AAP", []string{"AAPL"}},
		{"microsoft", []string{"MSFT"}},
		{"a", []string{"AAPL", "MSFT"}}, // substring of both
		{"zz", nil},
	}
	for _, tc := range tests {
		got, err := m.SearchStocks(t.Context(), tc.query)
		require.NoError(t, err)
		var symbols []string
		for _, s := range got {
			symbols = append(symbols, s.Symbol)
		}
		require.ElementsMatch(t, tc.want, symbols, "query %q", tc.query)
	}
}

func TestMemory_Indices(t *testing.T) {
	m := store.NewMemory()
	idx := market.MarketIndex{
		ID:     "gspc-id",
		Name:   "S&P 500",
		Symbol: "^GSPC",
		Price:  decimal.RequireFromString("5891.23"),
	}
	require.NoError(t, m.UpsertIndex(t.Context(), idx))

	idx.Price = decimal.RequireFromString("5900.00")
	require.NoError(t, m.UpsertIndex(t.Context(), idx))

	all, err := m.Indices(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.True(t, all[0].Price.Equal(decimal.RequireFromString("5900.00")))
}
