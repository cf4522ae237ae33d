package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"stockwatch/internal/market"
	"stockwatch/internal/resolver"
	"stockwatch/internal/store"
	"stockwatch/internal/watchlist"
)

type server struct {
	resolver *resolver.Resolver
	store    store.Store
	registry *watchlist.Registry
	log      *zap.Logger
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/stocks", s.handleStocks)
	mux.HandleFunc("GET /api/stocks/search", s.handleSearch)
	mux.HandleFunc("GET /api/stocks/{symbol}", s.handleStock)
	mux.HandleFunc("GET /api/market-indices", s.handleIndices)
	mux.HandleFunc("GET /api/watchlist", s.handleWatchlist)
	mux.HandleFunc("POST /api/watchlist", s.handleWatchlistAdd)
	mux.HandleFunc("DELETE /api/watchlist/{symbol}", s.handleWatchlistRemove)
	mux.HandleFunc("GET /api/init-sample-data", s.handleInitSampleData)
	return mux
}

// handleStocks resolves the full watchlist. Symbols that cannot be resolved
// are omitted rather than failing the listing.
func (s *server) handleStocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := s.resolver.ResolveAll(r.Context(), s.registry.Symbols())
	if err != nil {
		s.log.Error("resolve watchlist", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch stocks")
		return
	}
	if stocks == nil {
		stocks = []market.Stock{}
	}
	writeJSON(w, http.StatusOK, stocks)
}

func (s *server) handleStock(w http.ResponseWriter, r *http.Request) {
	rec, err := s.resolver.Resolve(r.Context(), r.PathValue("symbol"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rec)
	case errors.Is(err, resolver.ErrUnresolvable):
		writeMessage(w, http.StatusNotFound, "Stock not found")
	case errors.Is(err, market.ErrInvalidSymbol):
		writeMessage(w, http.StatusBadRequest, "Invalid symbol")
	default:
		s.log.Error("resolve stock", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch stock data")
	}
}

// handleSearch filters the cache; short queries that match nothing cached
// fall through to a single live resolve attempt.
func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeMessage(w, http.StatusBadRequest, "Search query is required")
		return
	}

	results, err := s.store.SearchStocks(r.Context(), q)
	if err != nil {
		s.log.Error("search stocks", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Search failed")
		return
	}

	if len(results) == 0 && len(q) <= 5 {
		rec, err := s.resolver.Resolve(r.Context(), q)
		if err != nil {
			writeJSON(w, http.StatusOK, []market.Stock{})
			return
		}
		writeJSON(w, http.StatusOK, []market.Stock{rec})
		return
	}

	if results == nil {
		results = []market.Stock{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *server) handleIndices(w http.ResponseWriter, r *http.Request) {
	indices, err := s.resolver.ResolveIndices(r.Context())
	if err != nil {
		s.log.Error("resolve indices", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch market indices")
		return
	}
	writeJSON(w, http.StatusOK, indices)
}

func (s *server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.List())
}

type watchlistAddBody struct {
	Symbol string `json:"symbol"`
}

func (s *server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	var body watchlistAddBody
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid data")
		return
	}

	sym, err := market.NormalizeSymbol(body.Symbol)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid symbol")
		return
	}
	if s.registry.Contains(sym) {
		writeMessage(w, http.StatusBadRequest, "Symbol already in watchlist")
		return
	}

	entry, err := s.registry.Add(sym)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid symbol")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	if !s.registry.Remove(r.PathValue("symbol")) {
		writeMessage(w, http.StatusNotFound, "Symbol not found in watchlist")
		return
	}
	writeMessage(w, http.StatusOK, "Removed from watchlist")
}

func (s *server) handleInitSampleData(w http.ResponseWriter, r *http.Request) {
	if err := s.resolver.SeedSampleData(r.Context(), s.registry); err != nil {
		s.log.Error("seed sample data", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to initialize sample data")
		return
	}
	writeMessage(w, http.StatusOK, "Sample data initialized")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}
