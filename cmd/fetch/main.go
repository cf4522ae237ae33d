// Command fetch resolves one or more symbols against the live API and prints
// the resulting records as JSON. Useful for checking an API key and for
// eyeballing upstream payload quirks.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"stockwatch/internal/config"
	"stockwatch/internal/httpx"
	"stockwatch/internal/resolver"
	"stockwatch/internal/source"
	"stockwatch/internal/source/alphavantage"
	"stockwatch/internal/source/ratelimit"
	"stockwatch/internal/store"
)

func main() {
	var symbolsCSV string
	var timeout int
	flag.StringVar(&symbolsCSV, "symbols", "AAPL", "comma-separated ticker symbols")
	flag.IntVar(&timeout, "timeout", 15, "request timeout seconds")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if timeout > 0 {
		cfg.Server.RequestTimeoutSec = timeout
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	av, err := alphavantage.New(cfg.AlphaVantage.APIKey,
		alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL),
		alphavantage.WithHTTPClient(httpClient),
		alphavantage.WithHeader(http.Header{"User-Agent": []string{"stockwatch/1.0"}}),
	)
	if err != nil {
		logger.Fatal("alphavantage client", zap.Error(err))
	}

	var src source.Source = av
	if cfg.AlphaVantage.MaxRequestsPerMinute > 0 {
		rate := float64(cfg.AlphaVantage.MaxRequestsPerMinute) / 60.0
		burst := cfg.AlphaVantage.Burst
		if burst <= 0 {
			burst = 1
		}
		src = &ratelimit.TokenBucketSource{S: src, TB: ratelimit.NewTokenBucket(rate, burst)}
	}

	res := resolver.New(src, store.NewMemory(), logger, resolver.WithMaxConcurrency(1))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var symbols []string
	for _, s := range strings.Split(symbolsCSV, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}

	stocks, err := res.ResolveAll(ctx, symbols)
	if err != nil {
		logger.Fatal("resolve", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stocks); err != nil {
		logger.Fatal("encode", zap.Error(err))
	}
}
