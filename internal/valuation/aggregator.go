package valuation

import (
	"fmt"
	"sort"

	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/model"
)

// GroupBy selects the grouping dimension of a summary. It is a closed
// enum so the aggregator can be switched exhaustively; strings from the
// API boundary are converted once via ParseGroupBy.
type GroupBy int

// Grouping dimensions.
const (
	GroupByCategory GroupBy = iota
	GroupByAccount
	GroupBySymbol
	GroupBySector
	GroupByCashGIC
)

// Group keys for the fixed cash_gic split.
const (
	cashGICGroupKey = "Cash/GIC"
	otherGroupKey   = "Other"
)

// ParseGroupBy converts an API query value into a GroupBy.
func ParseGroupBy(s string) (GroupBy, error) {
	switch s {
	case "category", "":
		return GroupByCategory, nil
	case "account":
		return GroupByAccount, nil
	case "symbol":
		return GroupBySymbol, nil
	case "sector":
		return GroupBySector, nil
	case "cash_gic":
		return GroupByCashGIC, nil
	}
	return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidGroupBy, s)
}

// String returns the API query value for g.
func (g GroupBy) String() string {
	switch g {
	case GroupByCategory:
		return "category"
	case GroupByAccount:
		return "account"
	case GroupBySymbol:
		return "symbol"
	case GroupBySector:
		return "sector"
	case GroupByCashGIC:
		return "cash_gic"
	}
	return "unknown"
}

// Summarize groups enriched positions by the requested dimension and
// computes group totals and proportions.
//
// The proportion base is the sum of POSITIVE reporting-currency MTM across
// available positions: zero and negative contributors are shown with their
// own (possibly negative) proportion but never inflate the base past 100%.
// Unavailable positions are returned in Positions but excluded from
// groups, totals, and the proportion base, so callers can render an
// explicit gap marker.
//
// Groups are ordered by MTM descending, ties broken by group key ascending.
// The cash_gic dimension always yields exactly the two groups "Cash/GIC"
// and "Other", even when one of them is empty.
func Summarize(
	positions []model.EnrichedPosition,
	groupBy GroupBy,
	sectors map[string]string,
	reportingCurrency string,
) model.SummaryOut {
	var base, totalMTM, totalPnL float64
	for _, e := range positions {
		if e.Unavailable {
			continue
		}
		totalMTM += e.MTMReporting
		totalPnL += e.PnLReporting
		if e.MTMReporting > 0 {
			base += e.MTMReporting
		}
	}

	type groupSums struct {
		mtm float64
		pnl float64
	}
	groupMap := make(map[string]*groupSums)
	if groupBy == GroupByCashGIC {
		groupMap[cashGICGroupKey] = &groupSums{}
		groupMap[otherGroupKey] = &groupSums{}
	}

	out := make([]model.EnrichedPosition, len(positions))
	for i, e := range positions {
		if !e.Unavailable && base > 0 {
			e.Proportion = e.MTMReporting / base * 100
		}
		out[i] = e

		if e.Unavailable {
			continue
		}
		key := groupKey(e, groupBy, sectors)
		sums, ok := groupMap[key]
		if !ok {
			sums = &groupSums{}
			groupMap[key] = sums
		}
		sums.mtm += e.MTMReporting
		sums.pnl += e.PnLReporting
	}

	groups := make([]model.SummaryGroup, 0, len(groupMap))
	for key, sums := range groupMap {
		g := model.SummaryGroup{
			GroupKey:     key,
			MTMReporting: sums.mtm,
			PnLReporting: sums.pnl,
		}
		if base > 0 {
			g.Proportion = sums.mtm / base * 100
		}
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].MTMReporting != groups[j].MTMReporting {
			return groups[i].MTMReporting > groups[j].MTMReporting
		}
		return groups[i].GroupKey < groups[j].GroupKey
	})

	return model.SummaryOut{
		Positions:         out,
		Groups:            groups,
		TotalMTMReporting: totalMTM,
		TotalPnLReporting: totalPnL,
		ReportingCurrency: reportingCurrency,
	}
}

// groupKey resolves the group key of one position for a dimension.
// Sector grouping applies to every category: non-equities fall under
// "Unspecified" unless a mapping exists for their symbol.
func groupKey(e model.EnrichedPosition, groupBy GroupBy, sectors map[string]string) string {
	switch groupBy {
	case GroupByCategory:
		return string(e.Category)
	case GroupByAccount:
		return e.AccountName
	case GroupBySymbol:
		return e.Symbol
	case GroupBySector:
		if sector, ok := sectors[e.Symbol]; ok && sector != "" {
			return sector
		}
		return model.UnspecifiedSector
	case GroupByCashGIC:
		if e.Category == model.CategoryCash || e.Category == model.CategoryGIC {
			return cashGICGroupKey
		}
		return otherGroupKey
	}
	return model.UnspecifiedSector
}
