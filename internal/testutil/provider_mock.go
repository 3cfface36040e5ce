package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"portfolio-engine/internal/marketdata"
)

// MockProvider is a canned marketdata.Provider for testing. It returns
// predefined data instead of making actual API calls.
type MockProvider struct {
	// Quotes maps symbol to the quote to return.
	Quotes map[string]marketdata.Quote
	// Prices maps symbol to its daily close series.
	Prices map[string][]marketdata.PricePoint
	// Rates maps pair to the current rate.
	Rates map[string]float64
	// FxHistory maps pair to its daily rate series.
	FxHistory map[string][]marketdata.PricePoint
	// Err, when set, is returned from every method.
	Err error

	calls int64
}

// NewMockProvider creates an empty mock; populate the maps as needed.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Quotes:    map[string]marketdata.Quote{},
		Prices:    map[string][]marketdata.PricePoint{},
		Rates:     map[string]float64{},
		FxHistory: map[string][]marketdata.PricePoint{},
	}
}

// WithError configures the mock to fail every call.
func (m *MockProvider) WithError(err error) *MockProvider {
	m.Err = err
	return m
}

// Calls reports how many provider methods were invoked.
func (m *MockProvider) Calls() int {
	return int(atomic.LoadInt64(&m.calls))
}

func (m *MockProvider) SpotQuote(_ context.Context, symbol string) (marketdata.Quote, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.Err != nil {
		return marketdata.Quote{}, m.Err
	}
	quote, ok := m.Quotes[symbol]
	if !ok {
		return marketdata.Quote{}, fmt.Errorf("no quote configured for %s", symbol)
	}
	return quote, nil
}

func (m *MockProvider) HistoricalPrices(_ context.Context, symbol string, _, _ time.Time) ([]marketdata.PricePoint, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Prices[symbol], nil
}

func (m *MockProvider) FxRate(_ context.Context, pair string) (float64, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Rates[pair], nil
}

func (m *MockProvider) HistoricalFxRates(_ context.Context, pair string, _, _ time.Time) ([]marketdata.PricePoint, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.FxHistory[pair], nil
}
