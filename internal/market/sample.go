package market

import "github.com/shopspring/decimal"

// Built-in demonstration data, used when the upstream API is unavailable or
// when a fresh deployment is seeded. IDs and timestamps are assigned at seed
// time, not here.

func SampleStocks() []Stock {
	return []Stock{
		{
			Symbol:        "AAPL",
			Name:          "Apple Inc.",
			Price:         decimal.RequireFromString("227.52"),
			Change:        decimal.RequireFromString("2.15"),
			ChangePercent: decimal.RequireFromString("0.95"),
			Volume:        "45,123,456",
			Open:          decimal.RequireFromString("225.37"),
			High:          decimal.RequireFromString("228.90"),
			Low:           decimal.RequireFromString("224.85"),
			MarketCap:     "3.45T",
		},
		{
			Symbol:        "GOOGL",
			Name:          "Alphabet Inc.",
			Price:         decimal.RequireFromString("178.35"),
			Change:        decimal.RequireFromString("-1.25"),
			ChangePercent: decimal.RequireFromString("-0.70"),
			Volume:        "28,567,890",
			Open:          decimal.RequireFromString("179.60"),
			High:          decimal.RequireFromString("180.20"),
			Low:           decimal.RequireFromString("177.50"),
			MarketCap:     "2.18T",
		},
		{
			Symbol:        "MSFT",
			Name:          "Microsoft Corporation",
			Price:         decimal.RequireFromString("425.47"),
			Change:        decimal.RequireFromString("3.82"),
			ChangePercent: decimal.RequireFromString("0.91"),
			Volume:        "32,789,123",
			Open:          decimal.RequireFromString("421.65"),
			High:          decimal.RequireFromString("426.30"),
			Low:           decimal.RequireFromString("420.80"),
			MarketCap:     "3.16T",
		},
		{
			Symbol:        "TSLA",
			Name:          "Tesla, Inc.",
			Price:         decimal.RequireFromString("356.78"),
			Change:        decimal.RequireFromString("-8.45"),
			ChangePercent: decimal.RequireFromString("-2.31"),
			Volume:        "89,456,234",
			Open:          decimal.RequireFromString("365.23"),
			High:          decimal.RequireFromString("367.89"),
			Low:           decimal.RequireFromString("354.12"),
			MarketCap:     "1.14T",
		},
	}
}

func SampleIndices() []MarketIndex {
	return []MarketIndex{
		{
			Name:          "S&P 500",
			Symbol:        "^GSPC",
			Price:         decimal.RequireFromString("5891.23"),
			Change:        decimal.RequireFromString("15.67"),
			ChangePercent: decimal.RequireFromString("0.27"),
		},
		{
			Name:          "NASDAQ",
			Symbol:        "^IXIC",
			Price:         decimal.RequireFromString("19456.78"),
			Change:        decimal.RequireFromString("42.35"),
			ChangePercent: decimal.RequireFromString("0.22"),
		},
		{
			Name:          "DOW JONES",
			Symbol:        "^DJI",
			Price:         decimal.RequireFromString("43987.65"),
			Change:        decimal.RequireFromString("-23.45"),
			ChangePercent: decimal.RequireFromString("-0.05"),
		},
	}
}
