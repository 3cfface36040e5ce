// Package valuation computes mark-to-market and profit/loss for positions
// and aggregates them into dimensional summaries. All functions are pure
// over their inputs and safe to call concurrently.
package valuation

import (
	"log"
	"time"

	"portfolio-engine/internal/fx"
	"portfolio-engine/internal/model"
)

// DaysPerYear is the day-count basis for GIC yield accrual. Accrual is
// simple daily-prorated annual yield; compounding frequency is deliberately
// not modeled.
const DaysPerYear = 365.0

// Valuate computes the enriched valuation of one position as of asOf.
//
// Rules by category:
//   - Equity: MTM(account) = quantity x spot x fx(stock->account);
//     PnL(account) = MTM(account) - quantity x costPerUnit x fx(stock->account).
//     A nil spot marks the position unavailable, never zero.
//   - Cash: MTM = quantity (already in account currency); PnL = 0.
//   - GIC: MTM = principal x (1 + yield x daysHeld/365); PnL = MTM - principal.
//   - Dividend: MTM = quantity; PnL = quantity (fully realized).
//
// Reporting values are account values times fx(account->reporting). A
// missing FX leg marks this position unavailable without affecting the rest
// of the batch. Proportion is left at zero; Summarize fills it against the
// comparison set.
func Valuate(
	p model.Position,
	account model.Account,
	spot *float64,
	resolver *fx.Resolver,
	reportingCurrency string,
	asOf time.Time,
) model.EnrichedPosition {
	e := model.EnrichedPosition{
		ID:              p.ID,
		Symbol:          p.Symbol,
		Category:        p.Category,
		AccountID:       account.ID,
		AccountName:     account.Name,
		AccountCurrency: account.BaseCurrency,
		Quantity:        p.Quantity,
		CostPerUnit:     p.CostPerUnit,
		DateAdded:       p.DateAdded,
		YieldRate:       p.YieldRate,
		Currency:        p.Currency,
	}

	var mtmAccount, pnlAccount float64

	switch p.Category {
	case model.CategoryEquity:
		if spot == nil {
			e.Unavailable = true
			return e
		}
		fxStockToAccount, err := resolver.Resolve(p.Currency, account.BaseCurrency)
		if err != nil {
			e.Unavailable = true
			return e
		}
		e.SpotPrice = *spot
		e.FxStockToAccount = fxStockToAccount
		mtmAccount, pnlAccount = EquityValue(p.Quantity, *spot, p.CostPerUnit, fxStockToAccount)

	case model.CategoryCash:
		// Quantity is the principal, held in the account currency by
		// construction.
		e.SpotPrice = p.CostPerUnit
		e.FxStockToAccount = 1.0
		mtmAccount = p.Quantity
		pnlAccount = 0

	case model.CategoryGIC:
		if p.YieldRate == nil {
			log.Printf("skipping GIC position %s (%s): missing yield rate", p.ID, p.Symbol)
			e.Unavailable = true
			return e
		}
		e.SpotPrice = p.CostPerUnit
		e.FxStockToAccount = 1.0
		mtmAccount, pnlAccount = AccruedGIC(p.Quantity, *p.YieldRate, p.DateAdded, asOf)

	case model.CategoryDividend:
		e.SpotPrice = p.CostPerUnit
		e.FxStockToAccount = 1.0
		mtmAccount = p.Quantity
		pnlAccount = p.Quantity

	default:
		log.Printf("skipping position %s (%s): unknown category %q", p.ID, p.Symbol, p.Category)
		e.Unavailable = true
		return e
	}

	fxAccountToReporting, err := resolver.Resolve(account.BaseCurrency, reportingCurrency)
	if err != nil {
		e.Unavailable = true
		return e
	}

	e.FxAccountToReporting = fxAccountToReporting
	e.MTMAccount = mtmAccount
	e.PnLAccount = pnlAccount
	e.MTMReporting = mtmAccount * fxAccountToReporting
	e.PnLReporting = pnlAccount * fxAccountToReporting

	return e
}

// EquityValue computes account-currency MTM and PnL for an equity lot at a
// given price. The cost leg converts at the same FX rate as the market leg,
// so PnL reflects price movement plus currency movement on the full value.
func EquityValue(quantity, price, costPerUnit, fxStockToAccount float64) (mtm, pnl float64) {
	mtm = quantity * price * fxStockToAccount
	pnl = mtm - quantity*costPerUnit*fxStockToAccount
	return mtm, pnl
}

// AccruedGIC computes the accrued value of a GIC principal as of a date.
// Days held are floored at zero, so valuation before the purchase date
// returns exactly the principal. Used by both live valuation and
// historical reconstruction so the two always agree.
func AccruedGIC(principal, yieldRate float64, dateAdded, asOf time.Time) (mtm, pnl float64) {
	days := daysBetween(dateAdded, asOf)
	if days < 0 {
		days = 0
	}
	mtm = principal * (1 + yieldRate*float64(days)/DaysPerYear)
	return mtm, mtm - principal
}

// daysBetween counts whole calendar days from a to b, comparing at UTC
// midnight so intraday timestamps do not shift the count.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}
