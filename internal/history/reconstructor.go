package history

import (
	"context"
	"fmt"
	"time"

	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/fx"
	"portfolio-engine/internal/marketdata"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/valuation"
)

// Input carries everything a reconstruction needs. Positions must already
// be filtered to the scope; Prices and FxSeries are keyed by symbol and
// concatenated ISO pair respectively, each ordered by date ascending.
type Input struct {
	Scope             Scope
	Positions         []model.Position
	Accounts          map[string]model.Account
	Prices            map[string][]marketdata.PricePoint
	FxSeries          map[string][]marketdata.PricePoint
	ReportingCurrency string
	AsOf              time.Time
}

// Reconstruct replays the scope's positions over the daily price and FX
// series and returns one point per grid day, ordered by date ascending.
//
// The grid is the union of price-series dates for the scope's equity
// symbols; a scope holding only cash and GICs uses every calendar day from
// the earliest purchase to AsOf instead. On each day, prices and FX
// forward-fill from the last observation, positions enter on their purchase
// date, and both the market and cost legs of an equity convert at that
// day's FX. Dividend positions never contribute.
//
// A position whose price or FX leg cannot be resolved on a day simply
// contributes nothing that day; the day itself is kept if any other
// position contributes. Days before the first contribution are dropped.
func Reconstruct(ctx context.Context, in Input) ([]model.HistoryPoint, error) {
	if err := in.Scope.Validate(); err != nil {
		return nil, err
	}

	positions := activePositions(in.Positions)
	if len(positions) == 0 {
		return []model.HistoryPoint{}, nil
	}

	priceIx := make(map[string]*seriesIndex, len(in.Prices))
	equitySeries := make([][]marketdata.PricePoint, 0, len(in.Prices))
	for symbol, series := range in.Prices {
		priceIx[symbol] = newSeriesIndex(series)
		equitySeries = append(equitySeries, series)
	}
	fxIx := make(map[string]*seriesIndex, len(in.FxSeries))
	for pair, series := range in.FxSeries {
		fxIx[pair] = newSeriesIndex(series)
	}

	grid := unionDates(equitySeries...)
	if len(grid) == 0 {
		// Cash/GIC-only scope: accrual happens every day, not just on
		// trading days.
		grid = calendarDates(earliestDateAdded(positions), in.AsOf)
	}

	points := make([]model.HistoryPoint, 0, len(grid))

	for _, day := range grid {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resolver := resolverOn(fxIx, day, in.ReportingCurrency)

		var point model.HistoryPoint
		var contributed bool
		point.Date = day

		for _, p := range positions {
			if dateOnly(p.DateAdded).After(day) {
				continue
			}
			account, ok := in.Accounts[p.AccountID]
			if !ok {
				return nil, fmt.Errorf("%w: position %s references unknown account %s",
					apperrors.ErrInvalidPositionState, p.ID, p.AccountID)
			}

			mtm, pnl, cashGic, ok := contributionOn(p, account, day, priceIx, resolver, in.ReportingCurrency)
			if !ok {
				continue
			}

			point.MTM += mtm
			point.PnL += pnl
			if in.Scope.IsAggregate() {
				// The cash/GIC curve is an aggregate-scope column only.
				point.CashGic += cashGic
			}
			contributed = true
		}

		if !contributed {
			continue
		}

		if !in.Scope.IsAggregate() {
			if ix, exists := priceIx[in.Scope.Symbol]; exists {
				if close, ok := ix.valueOn(day); ok {
					point.ClosePrice = close
				}
			}
		}

		points = append(points, point)
	}

	return points, nil
}

// contributionOn values one position on one day in the reporting currency.
// The fourth return is false when the position cannot be valued that day.
func contributionOn(
	p model.Position,
	account model.Account,
	day time.Time,
	priceIx map[string]*seriesIndex,
	resolver *fx.Resolver,
	reportingCurrency string,
) (mtm, pnl, cashGic float64, ok bool) {
	fxAccountToReporting, err := resolver.Resolve(account.BaseCurrency, reportingCurrency)
	if err != nil {
		return 0, 0, 0, false
	}

	switch p.Category {
	case model.CategoryEquity:
		ix, exists := priceIx[p.Symbol]
		if !exists {
			return 0, 0, 0, false
		}
		price, exists := ix.valueOn(day)
		if !exists {
			return 0, 0, 0, false
		}
		fxStockToAccount, err := resolver.Resolve(p.Currency, account.BaseCurrency)
		if err != nil {
			return 0, 0, 0, false
		}
		mtmAccount, pnlAccount := valuation.EquityValue(p.Quantity, price, p.CostPerUnit, fxStockToAccount)
		return mtmAccount * fxAccountToReporting, pnlAccount * fxAccountToReporting, 0, true

	case model.CategoryCash:
		mtm = p.Quantity * fxAccountToReporting
		return mtm, 0, mtm, true

	case model.CategoryGIC:
		if p.YieldRate == nil {
			return 0, 0, 0, false
		}
		mtmAccount, pnlAccount := valuation.AccruedGIC(p.Quantity, *p.YieldRate, p.DateAdded, day)
		mtm = mtmAccount * fxAccountToReporting
		return mtm, pnlAccount * fxAccountToReporting, mtm, true

	default:
		// Dividends are realized events, not holdings; they carry no curve.
		return 0, 0, 0, false
	}
}

// resolverOn builds an FX resolver from the rates in effect on a day.
// Pairs with no observation yet are left out, so resolution fails the same
// way it would have failed live on that day.
func resolverOn(fxIx map[string]*seriesIndex, day time.Time, reportingCurrency string) *fx.Resolver {
	rates := make(map[string]float64, len(fxIx))
	for pair, ix := range fxIx {
		if rate, ok := ix.valueOn(day); ok && rate != 0 {
			rates[pair] = rate
		}
	}
	return fx.NewResolver(rates, reportingCurrency)
}

// activePositions filters out categories that never contribute to a curve.
func activePositions(positions []model.Position) []model.Position {
	active := make([]model.Position, 0, len(positions))
	for _, p := range positions {
		if p.Category == model.CategoryDividend {
			continue
		}
		active = append(active, p)
	}
	return active
}

func earliestDateAdded(positions []model.Position) time.Time {
	earliest := positions[0].DateAdded
	for _, p := range positions[1:] {
		if p.DateAdded.Before(earliest) {
			earliest = p.DateAdded
		}
	}
	return earliest
}
