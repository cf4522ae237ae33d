package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"stockwatch/internal/source"
)

const defaultBaseURL = "https://www.alphavantage.co/query"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Alpha Vantage query API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// apiKey is sent as the apikey query parameter on every request.
	apiKey string
	// httpClient is the HTTP client requests go through.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

var _ source.Source = (*Client)(nil)

// Option is a configuration option for the Alpha Vantage client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// New creates a new Alpha Vantage client.
func New(apiKey string, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}
	client := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

func (c *Client) Name() string { return "AlphaVantage" }

// get issues a query API call for one function+symbol pair.
func (c *Client) get(ctx context.Context, function, symbol string) (*http.Response, error) {
	query := url.Values{}
	query.Set("function", function)
	query.Set("symbol", symbol)
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, query.Encode()), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		res.Body.Close()
		return nil, fmt.Errorf("%s %s: %w", function, symbol, source.ErrRateLimited)
	case res.StatusCode < 200 || res.StatusCode >= 300:
		res.Body.Close()
		return nil, fmt.Errorf("%s %s: unexpected status code %d", function, symbol, res.StatusCode)
	}
	return res, nil
}
