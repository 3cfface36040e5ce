// Package fx resolves currency conversion rates from a sparse table of
// stored pairs, deriving inverse and triangulated rates on demand.
package fx

import (
	"fmt"
	"sort"
	"strings"

	"portfolio-engine/internal/apperrors"
)

// Resolver answers rate lookups against one immutable snapshot of stored
// FX pairs. Build a new Resolver per request; it performs no I/O and is
// safe for concurrent use.
type Resolver struct {
	rates     map[string]float64
	reporting string
	pivots    []string
}

// NewResolver creates a Resolver over a snapshot of stored rates.
// Keys of rates are concatenated ISO pairs, e.g. "USDCAD".
//
// Triangulation pivots are tried in a deterministic order: the reporting
// currency first, then every other currency seen in the rate table in
// ascending alphabetical order. The preference is a reproducibility policy,
// not business intent; changing it only affects pairs resolvable through
// more than one pivot.
func NewResolver(rates map[string]float64, reportingCurrency string) *Resolver {
	reporting := strings.ToUpper(reportingCurrency)

	normalized := make(map[string]float64, len(rates))
	seen := map[string]bool{reporting: true}
	var others []string
	for pair, rate := range rates {
		p := strings.ToUpper(pair)
		normalized[p] = rate
		for _, ccy := range splitPair(p) {
			if !seen[ccy] {
				seen[ccy] = true
				others = append(others, ccy)
			}
		}
	}
	sort.Strings(others)

	return &Resolver{
		rates:     normalized,
		reporting: reporting,
		pivots:    append([]string{reporting}, others...),
	}
}

// Resolve returns the conversion rate from one currency to another.
//
// Resolution order:
//  1. same currency: always 1.0, no lookup
//  2. direct stored rate
//  3. inverse of the stored reversed pair
//  4. triangulation through a pivot for which both legs resolve
//
// Returns apperrors.ErrRateUnavailable when no path exists.
func (r *Resolver) Resolve(from, to string) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return 1.0, nil
	}

	if rate, ok := r.directOrInverse(from, to); ok {
		return rate, nil
	}

	for _, pivot := range r.pivots {
		if pivot == from || pivot == to {
			continue
		}
		legA, okA := r.directOrInverse(from, pivot)
		if !okA {
			continue
		}
		legB, okB := r.directOrInverse(pivot, to)
		if !okB {
			continue
		}
		return legA * legB, nil
	}

	return 0, fmt.Errorf("%w: %s%s", apperrors.ErrRateUnavailable, from, to)
}

// Matrix builds the square conversion table over the given currencies.
// Unresolvable cells are nil rather than an error, and the diagonal is
// always exactly 1. Currencies are deduplicated and sorted so the output is
// reproducible regardless of input order.
func (r *Resolver) Matrix(currencies []string) ([]string, [][]*float64) {
	seen := make(map[string]bool, len(currencies))
	unique := make([]string, 0, len(currencies))
	for _, ccy := range currencies {
		c := strings.ToUpper(ccy)
		if c != "" && !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}
	sort.Strings(unique)

	cells := make([][]*float64, len(unique))
	for i, from := range unique {
		cells[i] = make([]*float64, len(unique))
		for j, to := range unique {
			if i == j {
				one := 1.0
				cells[i][j] = &one
				continue
			}
			if rate, err := r.Resolve(from, to); err == nil {
				v := rate
				cells[i][j] = &v
			}
		}
	}

	return unique, cells
}

// directOrInverse resolves a pair from the stored table only: the pair
// itself, or the reciprocal of the reversed pair. Zero stored rates are
// treated as absent so inversion can never divide by zero.
func (r *Resolver) directOrInverse(from, to string) (float64, bool) {
	if rate, ok := r.rates[from+to]; ok && rate != 0 {
		return rate, true
	}
	if rate, ok := r.rates[to+from]; ok && rate != 0 {
		return 1 / rate, true
	}
	return 0, false
}

// splitPair splits a concatenated ISO pair ("USDCAD") into its two
// currencies. Pairs of unexpected length are ignored for pivot discovery
// but still usable for direct lookup.
func splitPair(pair string) []string {
	if len(pair) != 6 {
		return nil
	}
	return []string{pair[:3], pair[3:]}
}
