package market

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidSymbol is returned when a symbol is empty after trimming.
var ErrInvalidSymbol = errors.New("invalid symbol")

// NormalizeSymbol trims and uppercases a ticker symbol. Every map key in the
// system goes through this first.
func NormalizeSymbol(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", ErrInvalidSymbol
	}
	return s, nil
}

// Stock is the canonical record for a tracked equity. Price-like fields are
// decimals so upstream string payloads round-trip without float rounding;
// they marshal back to JSON as number strings. Volume and MarketCap are kept
// as the display strings the upstream hands out.
type Stock struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	Volume        string          `json:"volume"`
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	MarketCap     string          `json:"marketCap"`
	LastUpdated   time.Time       `json:"lastUpdated"`
}

// MarketIndex is a Stock minus name-level metadata, keyed by an index symbol
// such as ^GSPC.
type MarketIndex struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	LastUpdated   time.Time       `json:"lastUpdated"`
}
