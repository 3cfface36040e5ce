package handlers

import (
	"errors"
	"net/http"

	"portfolio-engine/internal/api/response"
	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/validation"
)

// respondServiceError maps service-layer errors onto HTTP status codes and
// writes the standard error body. Unrecognized errors become a 500.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	status := http.StatusInternalServerError

	var validationErr *validation.Error

	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrPositionNotFound),
		errors.Is(err, apperrors.ErrSettingNotFound),
		errors.Is(err, apperrors.ErrPriceUnavailable):
		status = http.StatusNotFound

	case errors.As(err, &validationErr),
		errors.Is(err, validation.ErrInvalidUUID),
		errors.Is(err, validation.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrInvalidCategory),
		errors.Is(err, apperrors.ErrInvalidPositionState),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrInvalidGroupBy),
		errors.Is(err, apperrors.ErrInvalidScope),
		errors.Is(err, apperrors.ErrMissingRequiredField):
		status = http.StatusBadRequest

	case errors.Is(err, apperrors.ErrDataProviderFailure),
		errors.Is(err, apperrors.ErrRateUnavailable):
		status = http.StatusBadGateway
	}

	response.RespondError(w, status, message, err.Error())
}
