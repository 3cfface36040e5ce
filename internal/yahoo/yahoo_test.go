package yahoo

import (
	"encoding/json"
	"testing"
	"time"
)

// sampleChart is a trimmed v8 chart payload: three trading days with a
// data hole on the middle day.
const sampleChart = `{
	"chart": {
		"result": [{
			"meta": {
				"currency": "USD",
				"symbol": "AAPL",
				"regularMarketPrice": 202.5,
				"chartPreviousClose": 200.0
			},
			"timestamp": [1704121200, 1704207600, 1704294000],
			"indicators": {
				"quote": [{"close": [200.0, null, 202.5]}]
			}
		}],
		"error": null
	}
}`

// TestChartPoints tests conversion of the raw chart payload into a close series.
//
// WHY: Yahoo leaves null holes in the close array on halted or thin trading
// days; those must be dropped here so the reconstruction layer can
// forward-fill across them instead of seeing a zero close.
func TestChartPoints(t *testing.T) {
	var response chartResponse
	if err := json.Unmarshal([]byte(sampleChart), &response); err != nil {
		t.Fatalf("Failed to parse sample chart: %v", err)
	}

	points := chartPoints(response.Chart.Result[0])

	if len(points) != 2 {
		t.Fatalf("Expected 2 points (null dropped), got %d", len(points))
	}
	if points[0].Close != 200.0 || points[1].Close != 202.5 {
		t.Errorf("Unexpected closes: %v, %v", points[0].Close, points[1].Close)
	}
	for _, p := range points {
		if p.Date.Hour() != 0 || p.Date.Location() != time.UTC {
			t.Errorf("Expected UTC midnight dates, got %v", p.Date)
		}
	}
	if !points[0].Date.Before(points[1].Date) {
		t.Error("Expected points ordered by date ascending")
	}
}

// TestChartPoints_EmptyIndicators tests the degenerate payload with no quote block.
func TestChartPoints_EmptyIndicators(t *testing.T) {
	points := chartPoints(chartResult{Timestamp: []int64{1704121200}})

	if len(points) != 0 {
		t.Errorf("Expected no points without indicators, got %d", len(points))
	}
}

// TestFxTicker tests pair-to-ticker mapping.
func TestFxTicker(t *testing.T) {
	if got := fxTicker("usdcad"); got != "USDCAD=X" {
		t.Errorf("Expected USDCAD=X, got %s", got)
	}
}

// TestQuoteSummaryParsing tests the rawValue wrapper against a realistic payload.
func TestQuoteSummaryParsing(t *testing.T) {
	const payload = `{
		"quoteSummary": {
			"result": [{
				"price": {
					"regularMarketPrice": {"raw": 202.5, "fmt": "202.50"},
					"regularMarketChangePercent": {"raw": 0.0125, "fmt": "1.25%"},
					"longName": "Apple Inc."
				},
				"summaryDetail": {"trailingPE": {"raw": 31.2}},
				"defaultKeyStatistics": {"beta": {"raw": 1.29}}
			}],
			"error": null
		}
	}`

	var response quoteSummaryResponse
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		t.Fatalf("Failed to parse quoteSummary payload: %v", err)
	}

	result := response.QuoteSummary.Result[0]
	if result.Price.RegularMarketPrice.Raw == nil || *result.Price.RegularMarketPrice.Raw != 202.5 {
		t.Errorf("Unexpected price: %v", result.Price.RegularMarketPrice.Raw)
	}
	if result.SummaryDetail.ForwardPE.Raw != nil {
		t.Error("Expected absent forwardPE to stay nil")
	}
	if pct := percentOf(result.Price.RegularMarketChangePercent.Raw); pct == nil || *pct != 1.25 {
		t.Errorf("Expected change 1.25%%, got %v", pct)
	}
}
