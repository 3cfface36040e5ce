package model

import "time"

// EnrichedPosition is a position joined with its account, spot price and
// resolved FX chain. It is recomputed on every request and never persisted.
//
// When Unavailable is true (missing price or unresolvable FX leg) the
// monetary fields are zero and the position is excluded from group sums and
// totals; it is still returned so callers can render an explicit
// "unavailable" marker instead of a silent zero.
type EnrichedPosition struct {
	ID                   string    `json:"id"`
	Symbol               string    `json:"symbol"`
	Category             Category  `json:"category"`
	AccountID            string    `json:"accountId"`
	AccountName          string    `json:"accountName"`
	AccountCurrency      string    `json:"accountCurrency"`
	Quantity             float64   `json:"quantity"`
	CostPerUnit          float64   `json:"costPerUnit"`
	DateAdded            time.Time `json:"dateAdded"`
	YieldRate            *float64  `json:"yieldRate,omitempty"`
	Currency             string    `json:"currency"`
	SpotPrice            float64   `json:"spotPrice"`
	FxStockToAccount     float64   `json:"fxStockToAccount"`
	FxAccountToReporting float64   `json:"fxAccountToReporting"`
	MTMAccount           float64   `json:"mtmAccount"`
	PnLAccount           float64   `json:"pnlAccount"`
	MTMReporting         float64   `json:"mtmReporting"`
	PnLReporting         float64   `json:"pnlReporting"`
	Proportion           float64   `json:"proportion"`
	Unavailable          bool      `json:"unavailable"`
}

// SummaryGroup aggregates enriched positions sharing one group key.
type SummaryGroup struct {
	GroupKey     string  `json:"groupKey"`
	MTMReporting float64 `json:"mtmReporting"`
	PnLReporting float64 `json:"pnlReporting"`
	Proportion   float64 `json:"proportion"`
}

// SummaryOut is the full response of a summary request: every enriched
// position, the groups for the requested dimension, and the grand totals
// used by the UI banner. Totals exclude unavailable positions, so they are
// understood to be partial whenever any position carries the unavailable
// marker.
type SummaryOut struct {
	Positions         []EnrichedPosition `json:"positions"`
	Groups            []SummaryGroup     `json:"groups"`
	TotalMTMReporting float64            `json:"totalMtmReporting"`
	TotalPnLReporting float64            `json:"totalPnlReporting"`
	ReportingCurrency string             `json:"reportingCurrency"`
}

// FxMatrix is a square currency conversion table. Rates[i][j] is the rate
// from Currencies[i] to Currencies[j], nil when the pair cannot be resolved
// directly, inversely, or by triangulation. The diagonal is always exactly 1.
type FxMatrix struct {
	Currencies []string     `json:"currencies"`
	Rates      [][]*float64 `json:"rates"`
}
