package source

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Quote is a point-in-time price snapshot for a single symbol, already
// validated and coerced out of the upstream's loose JSON.
type Quote struct {
	Symbol        string
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Volume        string
	Open          decimal.Decimal
	High          decimal.Decimal
	Low           decimal.Decimal
}

// Overview is descriptive metadata for a symbol, separate from its quote.
type Overview struct {
	Name      string
	MarketCap string
	Industry  string
	Sector    string
}

// Failure taxonomy for Quote. Transport-level failures are returned as-is
// (wrapped); everything the upstream reports explicitly maps onto one of
// these so callers can branch with errors.Is.
var (
	// ErrNotFound means the upstream has no data for the symbol.
	ErrNotFound = errors.New("no data for symbol")
	// ErrRateLimited means the upstream signaled a quota or throttle condition.
	ErrRateLimited = errors.New("rate limited by upstream")
	// ErrMalformedResponse means the payload decoded but lacks required fields.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// Source is the boundary to a third-party quote API.
//
// Overview never fails: implementations degrade to a placeholder record
// (symbol as name, "N/A" market cap) on any upstream problem, so a missing
// overview cannot block an otherwise usable quote.
type Source interface {
	Name() string
	Quote(ctx context.Context, symbol string) (Quote, error)
	Overview(ctx context.Context, symbol string) Overview
}

// DegradedOverview is the placeholder implementations fall back to.
func DegradedOverview(symbol string) Overview {
	return Overview{Name: symbol, MarketCap: "N/A", Industry: "Unknown", Sector: "Unknown"}
}
