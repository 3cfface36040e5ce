// Package history reconstructs daily PnL/MTM time series for a scope and
// caches the finished series. Reconstruction is a pure replay over stored
// lots and daily price/FX series; the cache stores output series only,
// never raw provider data.
package history

import (
	"fmt"

	"portfolio-engine/internal/apperrors"
)

// ScopeType identifies the kind of subject a series describes.
type ScopeType string

// Scope types.
const (
	ScopeSymbol    ScopeType = "symbol"
	ScopeAccount   ScopeType = "account"
	ScopePortfolio ScopeType = "portfolio"
)

// Scope identifies the subject of one reconstructed series. A symbol scope
// may be narrowed to one account; account and portfolio scopes aggregate
// every position they cover.
type Scope struct {
	Type      ScopeType
	Symbol    string // symbol scopes only
	AccountID string // account scopes, and optional narrowing for symbol scopes
}

// NewSymbolScope builds a scope for one symbol, optionally narrowed to an account.
func NewSymbolScope(symbol, accountID string) Scope {
	return Scope{Type: ScopeSymbol, Symbol: symbol, AccountID: accountID}
}

// NewAccountScope builds a scope covering every position of one account.
func NewAccountScope(accountID string) Scope {
	return Scope{Type: ScopeAccount, AccountID: accountID}
}

// NewPortfolioScope builds the scope covering every position.
func NewPortfolioScope() Scope {
	return Scope{Type: ScopePortfolio}
}

// Validate checks the scope is internally consistent.
func (s Scope) Validate() error {
	switch s.Type {
	case ScopeSymbol:
		if s.Symbol == "" {
			return fmt.Errorf("%w: symbol scope requires a symbol", apperrors.ErrInvalidScope)
		}
	case ScopeAccount:
		if s.AccountID == "" {
			return fmt.Errorf("%w: account scope requires an account id", apperrors.ErrInvalidScope)
		}
	case ScopePortfolio:
	default:
		return fmt.Errorf("%w: unknown scope type %q", apperrors.ErrInvalidScope, s.Type)
	}
	return nil
}

// ID returns the cache identifier within the scope type. Together with
// Type it forms the cache key and the singleflight key.
func (s Scope) ID() string {
	switch s.Type {
	case ScopeSymbol:
		if s.AccountID != "" {
			return s.Symbol + "|" + s.AccountID
		}
		return s.Symbol
	case ScopeAccount:
		return s.AccountID
	default:
		return "all"
	}
}

// Key returns the full scope key, unique across scope types.
func (s Scope) Key() string {
	return string(s.Type) + ":" + s.ID()
}

// IsAggregate reports whether the scope sums positions of mixed symbols.
// Aggregate scopes carry no per-day close price and populate the cash/GIC
// contribution curve instead.
func (s Scope) IsAggregate() bool {
	return s.Type != ScopeSymbol
}
