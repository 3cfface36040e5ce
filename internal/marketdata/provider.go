// Package marketdata defines the capability the engine consumes from an
// external market data source. The engine never fetches on its own
// schedule; it calls these methods and treats every response as an
// immutable snapshot.
package marketdata

import (
	"context"
	"time"
)

// Quote is one spot snapshot for a symbol. Pointer fields are nil when the
// provider had no value for them.
type Quote struct {
	Symbol        string
	LastPrice     *float64
	PERatio       *float64
	ChangePercent *float64
	Beta          *float64
	LongName      string
}

// PricePoint is one (date, close) observation of a daily series. The same
// shape carries both equity closes and FX rates.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// Provider is the external market/FX data capability.
//
// Implementations own fetch, retry, and rate-limiting concerns; the engine
// only requires that historical series come back ordered by date ascending
// and that failures surface as errors rather than fabricated values.
type Provider interface {
	// SpotQuote returns the latest quote for a symbol.
	SpotQuote(ctx context.Context, symbol string) (Quote, error)

	// HistoricalPrices returns the daily close series for a symbol within
	// [from, to], ordered by date ascending. Days the market did not trade
	// are simply absent.
	HistoricalPrices(ctx context.Context, symbol string, from, to time.Time) ([]PricePoint, error)

	// FxRate returns the current rate for a concatenated ISO pair such as
	// "USDCAD".
	FxRate(ctx context.Context, pair string) (float64, error)

	// HistoricalFxRates returns the daily rate series for a pair within
	// [from, to], ordered by date ascending.
	HistoricalFxRates(ctx context.Context, pair string, from, to time.Time) ([]PricePoint, error)
}
