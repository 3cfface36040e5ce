package request

// CreateAccountRequest represents the request body for creating an account
type CreateAccountRequest struct {
	Name         string `json:"name"`
	BaseCurrency string `json:"baseCurrency"`
}

type UpdateAccountRequest struct {
	Name         *string `json:"name,omitempty"`
	BaseCurrency *string `json:"baseCurrency,omitempty"`
}
