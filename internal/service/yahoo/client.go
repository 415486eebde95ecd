package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"FinRisk/internal/domain/models"
	drepo "FinRisk/internal/domain/repository"
	xhttp "FinRisk/pkg/http"
)

// DefaultBaseURL is the public Yahoo Finance chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client implements a PriceSource backed by the Yahoo Finance chart API.
// Stateless beyond the underlying HTTP client; safe for concurrent calls.
type Client struct {
	baseURL   string
	userAgent string
	http      *xhttp.Client
}

// New creates a Yahoo PriceSource. An empty baseURL selects the public API.
func New(baseURL string, timeout time.Duration) drepo.PriceSource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: "Mozilla/5.0",
		http:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// chartResponse is the expected JSON shape of the chart endpoint. Close
// values are pointers because the API emits null bars on holidays.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyCloses performs one round trip to the provider and returns the
// trailing daily-close window, ascending by date. The window is calendar
// days, so weekends and holidays yield fewer points than requested.
func (c *Client) FetchDailyCloses(ctx context.Context, symbol string, days int) (models.PriceSeries, error) {
	var chart chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol)),
		Headers: map[string]string{
			"User-Agent": c.userAgent,
		},
		QueryParams: map[string][]string{
			"interval": {"1d"},
			"range":    {fmt.Sprintf("%dd", days)},
		},
	}, &chart)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	// An API-level error ("Not Found" for unknown symbols) and an empty
	// result are the same condition at the domain boundary: no data.
	if chart.Chart.Error != nil || len(chart.Chart.Result) == 0 {
		return nil, &models.NoDataError{Symbol: symbol, Days: days}
	}
	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, &models.NoDataError{Symbol: symbol, Days: days}
	}

	closes := result.Indicators.Quote[0].Close
	series := make(models.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // null bar
		}
		series = append(series, models.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}
	if len(series) == 0 {
		return nil, &models.NoDataError{Symbol: symbol, Days: days}
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	if len(series) > days {
		series = series[len(series)-days:]
	}
	return series, nil
}
