package validation

import (
	"fmt"
	"strings"
	"time"

	"portfolio-engine/internal/api/request"
	"portfolio-engine/internal/model"
)

// ValidateCreatePosition checks the create-position request body, including
// the category-specific invariants the valuation engine assumes:
//   - Cash and GIC positions carry the principal in Quantity with
//     CostPerUnit fixed at 1.0, priced in the account currency.
//   - GIC positions require a yield rate; other categories reject one.
func ValidateCreatePosition(req request.CreatePositionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.AccountID); err != nil {
		errors["accountId"] = err.Error()
	}
	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	category := model.Category(req.Category)
	if !category.Valid() {
		errors["category"] = fmt.Sprintf("unknown category %q", req.Category)
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.CostPerUnit <= 0 {
		errors["costPerUnit"] = "cost per unit must be positive"
	}
	if err := validateCurrency(req.Currency); err != nil {
		errors["currency"] = err.Error()
	}

	if strings.TrimSpace(req.DateAdded) == "" {
		errors["dateAdded"] = "date added is required"
	} else if _, err := time.Parse("2006-01-02", req.DateAdded); err != nil {
		errors["dateAdded"] = err.Error()
	}

	switch category {
	case model.CategoryGIC:
		if req.YieldRate == nil {
			errors["yieldRate"] = "yield rate is required for GIC positions"
		} else if *req.YieldRate <= 0 || *req.YieldRate >= 1 {
			errors["yieldRate"] = "yield rate must be a fraction between 0 and 1"
		}
		if req.CostPerUnit != 1.0 {
			errors["costPerUnit"] = "GIC positions must have cost per unit 1.0"
		}
	case model.CategoryCash:
		if req.CostPerUnit != 1.0 {
			errors["costPerUnit"] = "cash positions must have cost per unit 1.0"
		}
		if req.YieldRate != nil {
			errors["yieldRate"] = "yield rate only applies to GIC positions"
		}
	default:
		if req.YieldRate != nil {
			errors["yieldRate"] = "yield rate only applies to GIC positions"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdatePosition checks the update-position request body. Only
// provided fields are validated; cross-field invariants are re-checked by
// the service against the merged position.
func ValidateUpdatePosition(req request.UpdatePositionRequest) error {
	errors := make(map[string]string)

	if req.Symbol != nil && strings.TrimSpace(*req.Symbol) == "" {
		errors["symbol"] = "symbol cannot be empty"
	}
	if req.Category != nil && !model.Category(*req.Category).Valid() {
		errors["category"] = fmt.Sprintf("unknown category %q", *req.Category)
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.CostPerUnit != nil && *req.CostPerUnit <= 0 {
		errors["costPerUnit"] = "cost per unit must be positive"
	}
	if req.Currency != nil {
		if err := validateCurrency(*req.Currency); err != nil {
			errors["currency"] = err.Error()
		}
	}
	if req.DateAdded != nil {
		if _, err := time.Parse("2006-01-02", *req.DateAdded); err != nil {
			errors["dateAdded"] = err.Error()
		}
	}
	if req.YieldRate != nil && (*req.YieldRate <= 0 || *req.YieldRate >= 1) {
		errors["yieldRate"] = "yield rate must be a fraction between 0 and 1"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// validateCurrency checks for a three-letter ISO 4217 code.
func validateCurrency(code string) error {
	code = strings.TrimSpace(code)
	if len(code) != 3 {
		return fmt.Errorf("currency must be a three-letter ISO code")
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("currency must be uppercase letters")
		}
	}
	return nil
}
