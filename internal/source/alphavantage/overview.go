package alphavantage

import (
	"context"
	"encoding/json"

	"stockwatch/internal/source"
)

type overviewResponse struct {
	Name                 string `json:"Name"`
	MarketCapitalization string `json:"MarketCapitalization"`
	Industry             string `json:"Industry"`
	Sector               string `json:"Sector"`
}

// Overview fetches company metadata for symbol. Any failure, including a
// throttled or empty response, degrades to a placeholder record so the
// caller's quote stays usable.
func (c *Client) Overview(ctx context.Context, symbol string) source.Overview {
	res, err := c.get(ctx, "OVERVIEW", symbol)
	if err != nil {
		return source.DegradedOverview(symbol)
	}
	defer res.Body.Close()

	var body overviewResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return source.DegradedOverview(symbol)
	}
	if body.Name == "" {
		return source.DegradedOverview(symbol)
	}

	out := source.Overview{
		Name:      body.Name,
		MarketCap: body.MarketCapitalization,
		Industry:  body.Industry,
		Sector:    body.Sector,
	}
	if out.MarketCap == "" {
		out.MarketCap = "N/A"
	}
	if out.Industry == "" {
		out.Industry = "Unknown"
	}
	if out.Sector == "" {
		out.Sector = "Unknown"
	}
	return out
}
