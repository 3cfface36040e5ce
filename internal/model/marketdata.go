package model

import "time"

// MarketData represents one market snapshot row for a symbol.
// Rows are append-only; the latest row per symbol (by timestamp) is the
// current snapshot. Nil pointer fields mean the provider had no value,
// which is distinct from zero.
type MarketData struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	LastPrice     *float64  `json:"lastPrice"`
	PERatio       *float64  `json:"peRatio"`
	ChangePercent *float64  `json:"changePercent"`
	Beta          *float64  `json:"beta"`
	LongName      string    `json:"longName"`
	Timestamp     time.Time `json:"timestamp"`
}

// FxRate represents one stored FX observation for a currency pair.
// Pair is the concatenated ISO codes, e.g. "USDCAD" for USD -> CAD.
// The stored table is sparse: inverse and triangulated rates are derived
// at read time, never persisted.
type FxRate struct {
	ID        string    `json:"id"`
	Pair      string    `json:"pair"`
	Rate      float64   `json:"rate"`
	Timestamp time.Time `json:"timestamp"`
}
