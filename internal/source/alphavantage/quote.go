package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"stockwatch/internal/source"
)

// globalQuoteResponse holds the GLOBAL_QUOTE payload. The quote itself uses
// numbered keys ("05. price"), so it is decoded as a plain string map. Error
// and throttle conditions arrive as top-level prose fields on an otherwise
// empty body.
type globalQuoteResponse struct {
	GlobalQuote  map[string]string `json:"Global Quote"`
	ErrorMessage string            `json:"Error Message"`
	Note         string            `json:"Note"`
	Information  string            `json:"Information"`
}

// Quote fetches a GLOBAL_QUOTE snapshot for symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (source.Quote, error) {
	res, err := c.get(ctx, "GLOBAL_QUOTE", symbol)
	if err != nil {
		return source.Quote{}, err
	}
	defer res.Body.Close()

	var body globalQuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return source.Quote{}, fmt.Errorf("decoding quote response: %w", source.ErrMalformedResponse)
	}

	switch {
	case body.Note != "" || body.Information != "":
		// The upstream reports quota exhaustion as a polite prose note.
		return source.Quote{}, fmt.Errorf("%s: %w", symbol, source.ErrRateLimited)
	case body.ErrorMessage != "":
		return source.Quote{}, fmt.Errorf("%s: %w", symbol, source.ErrNotFound)
	case len(body.GlobalQuote) == 0:
		return source.Quote{}, fmt.Errorf("%s: %w", symbol, source.ErrNotFound)
	}

	g := body.GlobalQuote

	price, err := requireDecimal(g, "05. price")
	if err != nil {
		return source.Quote{}, err
	}
	change, err := requireDecimal(g, "09. change")
	if err != nil {
		return source.Quote{}, err
	}
	changePercent, err := requireDecimal(g, "10. change percent")
	if err != nil {
		return source.Quote{}, err
	}

	sym := g["01. symbol"]
	if sym == "" {
		sym = symbol
	}

	return source.Quote{
		Symbol:        strings.ToUpper(sym),
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        g["06. volume"],
		Open:          optionalDecimal(g, "02. open"),
		High:          optionalDecimal(g, "03. high"),
		Low:           optionalDecimal(g, "04. low"),
	}, nil
}

// requireDecimal parses a mandatory numeric field. Percent values carry a
// trailing "%" which is stripped before parsing.
func requireDecimal(fields map[string]string, key string) (decimal.Decimal, error) {
	raw := strings.TrimSuffix(strings.TrimSpace(fields[key]), "%")
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("missing %q: %w", key, source.ErrMalformedResponse)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing %q=%q: %w", key, raw, source.ErrMalformedResponse)
	}
	return d, nil
}

func optionalDecimal(fields map[string]string, key string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(fields[key]))
	if err != nil {
		return decimal.Decimal{}
	}
	return d
}
