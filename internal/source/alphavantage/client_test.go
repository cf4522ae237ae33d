package alphavantage_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stockwatch/internal/source"
	"stockwatch/internal/source/alphavantage"
)

func jsonResponse(t *testing.T, status int, body any) *http.Response {
	t.Helper()
	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(body))
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(buffer),
	}
}

func globalQuoteBody(fields map[string]string) map[string]any {
	return map[string]any{"Global Quote": fields}
}

func validQuoteFields() map[string]string {
	return map[string]string{
		"01. symbol":         "AAPL",
		"02. open":           "225.37",
		"03. high":           "228.90",
		"04. low":            "224.85",
		"05. price":          "227.52",
		"06. volume":         "45123456",
		"09. change":         "2.15",
		"10. change percent": "0.95%",
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := alphavantage.New("")
	require.Error(t, err)

	client, err := alphavantage.New("test")
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestQuote(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			require.Equal(t, "GLOBAL_QUOTE", q.Get("function"))
			require.Equal(t, "AAPL", q.Get("symbol"))
			require.Equal(t, "test", q.Get("apikey"))
			return jsonResponse(t, http.StatusOK, globalQuoteBody(validQuoteFields())), nil
		}).
		Times(1)

	client, err := alphavantage.New("test", alphavantage.WithHTTPClient(httpClient))
	require.NoError(t, err)

	quote, err := client.Quote(t.Context(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, "AAPL", quote.Symbol)
	require.True(t, quote.Price.Equal(decimal.RequireFromString("227.52")))
	require.True(t, quote.Change.Equal(decimal.RequireFromString("2.15")))
	require.True(t, quote.ChangePercent.Equal(decimal.RequireFromString("0.95")), "percent suffix is stripped")
	require.Equal(t, "45123456", quote.Volume)
	require.True(t, quote.Open.Equal(decimal.RequireFromString("225.37")))
}

func TestQuote_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    any
		wantErr error
	}{
		{
			name:    "throttle note",
			status:  http.StatusOK,
			body:    map[string]any{"Note": "Thank you for using Alpha Vantage!"},
			wantErr: source.ErrRateLimited,
		},
		{
			name:    "information notice",
			status:  http.StatusOK,
			body:    map[string]any{"Information": "premium endpoint"},
			wantErr: source.ErrRateLimited,
		},
		{
			name:    "http 429",
			status:  http.StatusTooManyRequests,
			body:    map[string]any{},
			wantErr: source.ErrRateLimited,
		},
		{
			name:    "error message",
			status:  http.StatusOK,
			body:    map[string]any{"Error Message": "Invalid API call."},
			wantErr: source.ErrNotFound,
		},
		{
			name:    "empty quote object",
			status:  http.StatusOK,
			body:    globalQuoteBody(map[string]string{}),
			wantErr: source.ErrNotFound,
		},
		{
			name:   "missing price",
			status: http.StatusOK,
			body: globalQuoteBody(map[string]string{
				"01. symbol": "AAPL",
				"09. change": "2.15",
			}),
			wantErr: source.ErrMalformedResponse,
		},
		{
			name:   "unparsable price",
			status: http.StatusOK,
			body: globalQuoteBody(map[string]string{
				"05. price":          "not-a-number",
				"09. change":         "2.15",
				"10. change percent": "0.95%",
			}),
			wantErr: source.ErrMalformedResponse,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)
			httpClient.EXPECT().
				Do(gomock.Any()).
				Return(jsonResponse(t, tc.status, tc.body), nil).
				Times(1)

			client, err := alphavantage.New("test", alphavantage.WithHTTPClient(httpClient))
			require.NoError(t, err)

			_, err = client.Quote(t.Context(), "AAPL")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestQuote_WithBaseURL(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	baseURL := "http://localhost:8080/query"

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL), "expected url to start with base url, received: %s", req.URL.String())
			return jsonResponse(t, http.StatusOK, globalQuoteBody(validQuoteFields())), nil
		}).
		Times(1)

	client, err := alphavantage.New("test", alphavantage.WithHTTPClient(httpClient), alphavantage.WithBaseURL(baseURL))
	require.NoError(t, err)

	_, err = client.Quote(t.Context(), "AAPL")
	require.NoError(t, err)
}

func TestQuote_WithHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "stockwatch/1.0", req.Header.Get("User-Agent"))
			return jsonResponse(t, http.StatusOK, globalQuoteBody(validQuoteFields())), nil
		}).
		Times(1)

	client, err := alphavantage.New("test",
		alphavantage.WithHTTPClient(httpClient),
		alphavantage.WithHeader(http.Header{"User-Agent": []string{"stockwatch/1.0"}}),
	)
	require.NoError(t, err)

	_, err = client.Quote(t.Context(), "AAPL")
	require.NoError(t, err)
}

func TestOverview(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "OVERVIEW", req.URL.Query().Get("function"))
			return jsonResponse(t, http.StatusOK, map[string]any{
				"Name":                 "Apple Inc.",
				"MarketCapitalization": "3450000000000",
				"Industry":             "Consumer Electronics",
				"Sector":               "Technology",
			}), nil
		}).
		Times(1)

	client, err := alphavantage.New("test", alphavantage.WithHTTPClient(httpClient))
	require.NoError(t, err)

	ov := client.Overview(t.Context(), "AAPL")
	require.Equal(t, "Apple Inc.", ov.Name)
	require.Equal(t, "3450000000000", ov.MarketCap)
	require.Equal(t, "Technology", ov.Sector)
}

func TestOverview_DegradesOnFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp func(t *testing.T) (*http.Response, error)
	}{
		{
			name: "transport error",
			resp: func(t *testing.T) (*http.Response, error) {
				return nil, io.ErrUnexpectedEOF
			},
		},
		{
			name: "empty body",
			resp: func(t *testing.T) (*http.Response, error) {
				return jsonResponse(t, http.StatusOK, map[string]any{}), nil
			},
		},
		{
			name: "throttled",
			resp: func(t *testing.T) (*http.Response, error) {
				return jsonResponse(t, http.StatusTooManyRequests, map[string]any{}), nil
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)
			httpClient.EXPECT().
				Do(gomock.Any()).
				DoAndReturn(func(*http.Request) (*http.Response, error) { return tc.resp(t) }).
				Times(1)

			client, err := alphavantage.New("test", alphavantage.WithHTTPClient(httpClient))
			require.NoError(t, err)

			ov := client.Overview(t.Context(), "AAPL")
			require.Equal(t, "AAPL", ov.Name)
			require.Equal(t, "N/A", ov.MarketCap)
		})
	}
}
