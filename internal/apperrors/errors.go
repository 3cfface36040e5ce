package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrPositionNotFound indicates that a position with the given ID does not exist.
	ErrPositionNotFound = errors.New("position not found")

	// ErrSettingNotFound indicates that a settings key has no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Valuation data errors represent gaps in market or FX data. They are
// recovered locally (null matrix cells, per-position unavailable markers,
// prior-price fallback) and never abort a whole batch.
var (
	// ErrRateUnavailable indicates that an FX pair cannot be resolved
	// directly, inversely, or via triangulation.
	ErrRateUnavailable = errors.New("fx rate unavailable")

	// ErrPriceUnavailable indicates that a spot or historical price is
	// missing for a symbol/date and no prior price exists to fall back to.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrDataProviderFailure indicates that the external market data
	// provider failed or timed out. Live summary reads fall back to the
	// last stored snapshot; a failed forced-live history read leaves the
	// cache untouched and serves the stored series, surfacing this error
	// only when nothing is cached.
	ErrDataProviderFailure = errors.New("market data provider failure")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidCategory indicates an unknown position category.
	ErrInvalidCategory = errors.New("invalid position category")

	// ErrInvalidPositionState indicates a position that violates its
	// category invariant (e.g. a GIC without a yield rate). Such positions
	// are rejected at the data-entry boundary; the engine defensively
	// skips them instead of crashing.
	ErrInvalidPositionState = errors.New("position violates category invariant")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidGroupBy indicates an unknown summary grouping dimension.
	ErrInvalidGroupBy = errors.New("invalid group_by dimension")

	// ErrInvalidScope indicates an unknown history scope type.
	ErrInvalidScope = errors.New("invalid history scope")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
