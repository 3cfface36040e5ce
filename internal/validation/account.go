package validation

import (
	"strings"

	"portfolio-engine/internal/api/request"
)

// ValidateCreateAccount checks the create-account request body.
func ValidateCreateAccount(req request.CreateAccountRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if err := validateCurrency(req.BaseCurrency); err != nil {
		errors["baseCurrency"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateAccount checks the update-account request body.
func ValidateUpdateAccount(req request.UpdateAccountRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.BaseCurrency != nil {
		if err := validateCurrency(*req.BaseCurrency); err != nil {
			errors["baseCurrency"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
