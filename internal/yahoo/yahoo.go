// Package yahoo implements the marketdata.Provider capability against the
// Yahoo Finance public endpoints.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/marketdata"
)

const (
	chartURL   = "https://query1.finance.yahoo.com/v8/finance/chart/%s"
	summaryURL = "https://query2.finance.yahoo.com/v10/finance/quoteSummary/%s"
	crumbURL   = "https://query2.finance.yahoo.com/v1/test/getcrumb"
)

// FinanceClient provides methods for fetching financial data from the
// Yahoo Finance API. It implements marketdata.Provider.
//
// The quoteSummary endpoint needs a crumb token; the client caches one and
// refreshes it when Yahoo rejects it. Historical data uses the v8 chart
// endpoint, which needs no crumb.
type FinanceClient struct {
	httpClient *http.Client

	crumbMu sync.Mutex
	crumb   string
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ marketdata.Provider = (*FinanceClient)(nil)

// SpotQuote fetches price, change%, P/E ratio, and beta for one symbol.
// It prefers quoteSummary (full data) and falls back to the chart endpoint
// (price and change only) when the crumb is unavailable or rejected.
func (c *FinanceClient) SpotQuote(ctx context.Context, symbol string) (marketdata.Quote, error) {
	if quote, err := c.querySummary(ctx, symbol); err == nil {
		return quote, nil
	}

	return c.queryChartQuote(ctx, symbol)
}

// HistoricalPrices fetches the daily close series for a symbol. Gaps in
// Yahoo's close array (trading halts, data holes) are dropped rather than
// zero-filled; the reconstruction layer forward-fills across missing days.
func (c *FinanceClient) HistoricalPrices(ctx context.Context, symbol string, from, to time.Time) ([]marketdata.PricePoint, error) {
	url := fmt.Sprintf(chartURL+"?interval=1d&period1=%d&period2=%d",
		symbol, from.Unix(), to.AddDate(0, 0, 1).Unix())

	result, err := c.queryChart(ctx, url)
	if err != nil {
		return nil, err
	}
	return chartPoints(result), nil
}

// chartPoints converts a chart result into a daily close series. Timestamps
// collapse to UTC midnight so the engine can align series from different
// exchanges on a shared date grid.
func chartPoints(result chartResult) []marketdata.PricePoint {
	points := make([]marketdata.PricePoint, 0, len(result.Timestamp))
	if len(result.Indicators.Quote) == 0 {
		return points
	}
	closes := result.Indicators.Quote[0].Close
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		day := time.Unix(ts, 0).UTC()
		points = append(points, marketdata.PricePoint{
			Date:  time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Close: *closes[i],
		})
	}
	return points
}

// FxRate fetches the current rate for a concatenated ISO pair ("USDCAD")
// via the chart endpoint for the "USDCAD=X" ticker.
func (c *FinanceClient) FxRate(ctx context.Context, pair string) (float64, error) {
	url := fmt.Sprintf(chartURL+"?interval=1d&range=1d", fxTicker(pair))

	result, err := c.queryChart(ctx, url)
	if err != nil {
		return 0, err
	}
	if result.Meta.RegularMarketPrice == nil || *result.Meta.RegularMarketPrice == 0 {
		return 0, fmt.Errorf("%w: no rate for pair %s", apperrors.ErrRateUnavailable, pair)
	}
	return *result.Meta.RegularMarketPrice, nil
}

// HistoricalFxRates fetches the daily rate series for a pair.
func (c *FinanceClient) HistoricalFxRates(ctx context.Context, pair string, from, to time.Time) ([]marketdata.PricePoint, error) {
	return c.HistoricalPrices(ctx, fxTicker(pair), from, to)
}

// fxTicker maps a concatenated ISO pair to Yahoo's FX ticker format.
func fxTicker(pair string) string {
	return strings.ToUpper(pair) + "=X"
}

// querySummary fetches the rich spot snapshot via quoteSummary.
func (c *FinanceClient) querySummary(ctx context.Context, symbol string) (marketdata.Quote, error) {
	crumb, err := c.getCrumb(ctx)
	if err != nil {
		return marketdata.Quote{}, err
	}

	url := fmt.Sprintf(summaryURL+"?modules=price,summaryDetail,defaultKeyStatistics&crumb=%s",
		symbol, crumb)

	data, status, err := c.get(ctx, url)
	if err != nil {
		return marketdata.Quote{}, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		// Crumb expired; clear so the next call re-fetches.
		c.crumbMu.Lock()
		c.crumb = ""
		c.crumbMu.Unlock()
		return marketdata.Quote{}, fmt.Errorf("%w: crumb rejected for %s", apperrors.ErrDataProviderFailure, symbol)
	}
	if status != http.StatusOK {
		return marketdata.Quote{}, fmt.Errorf("%w: quoteSummary status %d for %s", apperrors.ErrDataProviderFailure, status, symbol)
	}

	var response quoteSummaryResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return marketdata.Quote{}, fmt.Errorf("%w: %v", apperrors.ErrDataProviderFailure, err)
	}
	if response.QuoteSummary.Error != nil {
		return marketdata.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrDataProviderFailure, response.QuoteSummary.Error.Description)
	}
	if len(response.QuoteSummary.Result) == 0 {
		return marketdata.Quote{}, fmt.Errorf("%w: no quoteSummary result for %s", apperrors.ErrDataProviderFailure, symbol)
	}

	result := response.QuoteSummary.Result[0]
	quote := marketdata.Quote{
		Symbol:        symbol,
		LastPrice:     result.Price.RegularMarketPrice.Raw,
		Beta:          result.DefaultKeyStatistics.Beta.Raw,
		LongName:      result.Price.LongName,
		ChangePercent: percentOf(result.Price.RegularMarketChangePercent.Raw),
	}
	if result.SummaryDetail.TrailingPE.Raw != nil {
		quote.PERatio = result.SummaryDetail.TrailingPE.Raw
	} else {
		quote.PERatio = result.SummaryDetail.ForwardPE.Raw
	}
	return quote, nil
}

// queryChartQuote is the crumb-free fallback: price and change% only.
func (c *FinanceClient) queryChartQuote(ctx context.Context, symbol string) (marketdata.Quote, error) {
	url := fmt.Sprintf(chartURL+"?interval=1d&range=2d", symbol)

	result, err := c.queryChart(ctx, url)
	if err != nil {
		return marketdata.Quote{}, err
	}

	quote := marketdata.Quote{
		Symbol:    symbol,
		LastPrice: result.Meta.RegularMarketPrice,
		LongName:  result.Meta.LongName,
	}
	if result.Meta.RegularMarketPrice != nil && result.Meta.ChartPreviousClose != nil &&
		*result.Meta.ChartPreviousClose != 0 {
		change := (*result.Meta.RegularMarketPrice - *result.Meta.ChartPreviousClose) /
			*result.Meta.ChartPreviousClose * 100
		quote.ChangePercent = &change
	}
	return quote, nil
}

// queryChart executes a chart request and returns the first result.
func (c *FinanceClient) queryChart(ctx context.Context, url string) (chartResult, error) {
	data, status, err := c.get(ctx, url)
	if err != nil {
		return chartResult{}, err
	}
	if status != http.StatusOK {
		return chartResult{}, fmt.Errorf("%w: chart status %d", apperrors.ErrDataProviderFailure, status)
	}

	var response chartResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return chartResult{}, fmt.Errorf("%w: %v", apperrors.ErrDataProviderFailure, err)
	}
	if response.Chart.Error != nil {
		return chartResult{}, fmt.Errorf("%w: %s", apperrors.ErrDataProviderFailure, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 {
		return chartResult{}, fmt.Errorf("%w: no chart results", apperrors.ErrDataProviderFailure)
	}
	return response.Chart.Result[0], nil
}

// getCrumb fetches and caches the crumb token required by quoteSummary.
func (c *FinanceClient) getCrumb(ctx context.Context) (string, error) {
	c.crumbMu.Lock()
	defer c.crumbMu.Unlock()

	if c.crumb != "" {
		return c.crumb, nil
	}

	data, status, err := c.get(ctx, crumbURL)
	if err != nil {
		return "", err
	}
	crumb := strings.TrimSpace(string(data))
	if status != http.StatusOK || crumb == "" {
		return "", fmt.Errorf("%w: could not obtain crumb", apperrors.ErrDataProviderFailure)
	}

	c.crumb = crumb
	return crumb, nil
}

// get executes an HTTP GET with the headers Yahoo expects and returns the
// body and status code. Network-level failures wrap ErrDataProviderFailure
// so callers can classify them without inspecting the transport error.
func (c *FinanceClient) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrDataProviderFailure, err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrDataProviderFailure, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrDataProviderFailure, err)
	}

	return data, resp.StatusCode, nil
}

func percentOf(raw *float64) *float64 {
	if raw == nil {
		return nil
	}
	v := *raw * 100
	return &v
}
