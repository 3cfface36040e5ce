package model

import "time"

// Category classifies a position. It is a closed set: valuation rules
// dispatch exhaustively on the category.
type Category string

// Position categories.
const (
	CategoryEquity   Category = "Equity"
	CategoryGIC      Category = "GIC"
	CategoryCash     Category = "Cash"
	CategoryDividend Category = "Dividend"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryEquity, CategoryGIC, CategoryCash, CategoryDividend:
		return true
	}
	return false
}

// Position represents a single lot held in an account.
//
// Invariants (enforced at the data-entry boundary, assumed by the engine):
//   - Cash and GIC positions have CostPerUnit fixed at 1.0 and Quantity
//     equal to the principal amount.
//   - GIC positions carry a non-nil annual YieldRate.
//   - (AccountID, Symbol, DateAdded) is NOT unique; multiple lots of the
//     same symbol in the same account on the same day are permitted.
type Position struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"accountId"`
	Symbol      string    `json:"symbol"`
	Category    Category  `json:"category"`
	Quantity    float64   `json:"quantity"`
	CostPerUnit float64   `json:"costPerUnit"`
	Currency    string    `json:"currency"`
	DateAdded   time.Time `json:"dateAdded"`
	YieldRate   *float64  `json:"yieldRate,omitempty"` // GIC only, annual rate (e.g. 0.045)
	CreatedAt   time.Time `json:"createdAt"`
}
