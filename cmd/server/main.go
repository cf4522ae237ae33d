package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stockwatch/internal/config"
	"stockwatch/internal/httpx"
	"stockwatch/internal/resolver"
	"stockwatch/internal/source"
	"stockwatch/internal/source/alphavantage"
	"stockwatch/internal/source/ratelimit"
	"stockwatch/internal/store"
	"stockwatch/internal/watchlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
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

	// Prefer token bucket with burst if RPM is set, otherwise use min-interval
	var src source.Source = av
	if cfg.AlphaVantage.MaxRequestsPerMinute > 0 {
		rate := float64(cfg.AlphaVantage.MaxRequestsPerMinute) / 60.0
		burst := cfg.AlphaVantage.Burst
		if burst <= 0 {
			burst = 1
		}
		src = &ratelimit.TokenBucketSource{S: src, TB: ratelimit.NewTokenBucket(rate, burst)}
	} else if cfg.AlphaVantage.MinIntervalSec > 0 {
		src = &ratelimit.MinInterval{S: src, Interval: time.Duration(cfg.AlphaVantage.MinIntervalSec) * time.Second}
	}

	var st store.Store = store.NewMemory()
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rs := store.NewRedis(rdb)
		defer rs.Close()
		st = rs
		logger.Info("using redis store", zap.String("addr", cfg.Redis.Addr))
	}

	s := &server{
		resolver: resolver.New(src, st, logger, resolver.WithMaxConcurrency(cfg.Resolver.MaxConcurrency)),
		store:    st,
		registry: watchlist.NewRegistry(),
		log:      logger,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           withJSONHeaders(withGzip(recoverPanic(limitBody(s.routes())))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info("shutdown complete")
}
