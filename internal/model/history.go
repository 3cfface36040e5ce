package model

import "time"

// HistoryPoint is one day of a reconstructed PnL/MTM time series.
// Points are ordered by date ascending, one per trading day present in the
// underlying price series. ClosePrice is populated for single-symbol scopes
// (in the symbol's trading currency) and zero for aggregate scopes.
// CashGic carries the cash+GIC contribution for account/portfolio scopes.
type HistoryPoint struct {
	Date       time.Time `json:"date"`
	ClosePrice float64   `json:"closePrice"`
	PnL        float64   `json:"pnl"`
	MTM        float64   `json:"mtm"`
	CashGic    float64   `json:"cashGic"`
}

// HistoryOut wraps a reconstructed series with its scope label.
type HistoryOut struct {
	Label     string         `json:"label"`
	AccountID string         `json:"accountId,omitempty"`
	Points    []HistoryPoint `json:"points"`
}
