// Package config loads settings from a .env file, environment variables,
// and built-in defaults.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	AlphaVantage AlphaVantageConfig `mapstructure:"alphavantage"`
	Resolver     ResolverConfig     `mapstructure:"resolver"`
	Redis        RedisConfig        `mapstructure:"redis"`
}

type ServerConfig struct {
	Port              string `mapstructure:"port"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
}

type AlphaVantageConfig struct {
	APIKey               string `mapstructure:"api_key"`
	BaseURL              string `mapstructure:"base_url"`
	MaxRequestsPerMinute int    `mapstructure:"max_rpm"`
	Burst                int    `mapstructure:"burst"`
	MinIntervalSec       int    `mapstructure:"min_interval_sec"`
}

type ResolverConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Load reads configuration from .env file, environment variables, and defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Load .env into the process environment if one exists.
	if err := godotenv.Load(); err != nil {
		log.Println("note: no .env file found, relying on environment")
	}

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.request_timeout_sec", 10)

	// "demo" is the upstream's public sample key; it only answers for a
	// handful of symbols but keeps a fresh checkout runnable.
	v.SetDefault("alphavantage.api_key", "demo")
	v.SetDefault("alphavantage.base_url", "https://www.alphavantage.co/query")
	v.SetDefault("alphavantage.max_rpm", 5)
	v.SetDefault("alphavantage.burst", 5)
	v.SetDefault("alphavantage.min_interval_sec", 0)

	v.SetDefault("resolver.max_concurrency", 4)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Map dot-notation keys to underscore env vars (server.port -> SERVER_PORT).
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnv(v, "server.port", "server.request_timeout_sec")
	bindEnv(v, "alphavantage.api_key", "alphavantage.base_url", "alphavantage.max_rpm",
		"alphavantage.burst", "alphavantage.min_interval_sec")
	bindEnv(v, "resolver.max_concurrency")
	bindEnv(v, "redis.enabled", "redis.addr", "redis.password", "redis.db")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %v", err)
	}

	if cfg.AlphaVantage.APIKey == "" {
		return nil, fmt.Errorf("alphavantage api key cannot be empty")
	}

	return &cfg, nil
}

// bindEnv is a helper to bind multiple keys at once
func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("could not bind env var for key %s: %v", key, err)
		}
	}
}
