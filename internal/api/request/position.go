package request

// CreatePositionRequest represents the request body for creating a position.
// DateAdded uses the "2006-01-02" layout. YieldRate is required for GIC
// positions and must be absent otherwise.
type CreatePositionRequest struct {
	AccountID   string   `json:"accountId"`
	Symbol      string   `json:"symbol"`
	Category    string   `json:"category"`
	Quantity    float64  `json:"quantity"`
	CostPerUnit float64  `json:"costPerUnit"`
	Currency    string   `json:"currency"`
	DateAdded   string   `json:"dateAdded"`
	YieldRate   *float64 `json:"yieldRate,omitempty"`
}

type UpdatePositionRequest struct {
	Symbol      *string  `json:"symbol,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	CostPerUnit *float64 `json:"costPerUnit,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	DateAdded   *string  `json:"dateAdded,omitempty"`
	YieldRate   *float64 `json:"yieldRate,omitempty"`
}
