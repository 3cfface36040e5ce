package valuation_test

import (
	"math"
	"testing"
	"time"

	"portfolio-engine/internal/fx"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/valuation"
)

const tolerance = 1e-6

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floatPtr(v float64) *float64 { return &v }

// TestValuate_Equity covers the canonical TFSA scenario: a CAD account
// holding a USD equity, reported in CAD.
func TestValuate_Equity(t *testing.T) {
	account := model.Account{ID: "a1", Name: "TFSA", BaseCurrency: "CAD"}
	position := model.Position{
		ID:          "p1",
		AccountID:   "a1",
		Symbol:      "AAPL",
		Category:    model.CategoryEquity,
		Quantity:    100,
		CostPerUnit: 150,
		Currency:    "USD",
		DateAdded:   date(2024, 1, 1),
	}
	resolver := fx.NewResolver(map[string]float64{"USDCAD": 1.35}, "CAD")

	t.Run("MTM and PnL through the two-hop chain", func(t *testing.T) {
		e := valuation.Valuate(position, account, floatPtr(200), resolver, "CAD", date(2024, 7, 1))

		if e.Unavailable {
			t.Fatal("Expected valuation to be available")
		}
		if math.Abs(e.MTMAccount-27000) > tolerance {
			t.Errorf("Expected MTM(account) 27000, got %v", e.MTMAccount)
		}
		if math.Abs(e.PnLAccount-6750) > tolerance {
			t.Errorf("Expected PnL(account) 6750, got %v", e.PnLAccount)
		}
		// Account currency equals reporting currency: fx leg is 1.0.
		if e.FxAccountToReporting != 1.0 {
			t.Errorf("Expected fx(account->reporting) 1.0, got %v", e.FxAccountToReporting)
		}
		if math.Abs(e.MTMReporting-27000) > tolerance {
			t.Errorf("Expected MTM(reporting) 27000, got %v", e.MTMReporting)
		}
	})

	t.Run("nil spot price marks position unavailable", func(t *testing.T) {
		e := valuation.Valuate(position, account, nil, resolver, "CAD", date(2024, 7, 1))

		if !e.Unavailable {
			t.Error("Expected unavailable marker for missing spot price")
		}
		if e.MTMReporting != 0 || e.PnLReporting != 0 {
			t.Error("Unavailable position must not carry monetary values")
		}
	})

	t.Run("missing FX leg marks position unavailable", func(t *testing.T) {
		emptyResolver := fx.NewResolver(map[string]float64{}, "CAD")

		e := valuation.Valuate(position, account, floatPtr(200), emptyResolver, "CAD", date(2024, 7, 1))

		if !e.Unavailable {
			t.Error("Expected unavailable marker for unresolvable FX leg")
		}
	})
}

// TestValuate_GIC covers simple day-count yield accrual.
func TestValuate_GIC(t *testing.T) {
	account := model.Account{ID: "a1", Name: "Savings", BaseCurrency: "CAD"}
	gic := model.Position{
		ID:          "g1",
		AccountID:   "a1",
		Symbol:      "GIC-2024",
		Category:    model.CategoryGIC,
		Quantity:    10000,
		CostPerUnit: 1.0,
		Currency:    "CAD",
		DateAdded:   date(2024, 1, 1),
		YieldRate:   floatPtr(0.045),
	}
	resolver := fx.NewResolver(map[string]float64{}, "CAD")

	t.Run("182 days of accrual", func(t *testing.T) {
		e := valuation.Valuate(gic, account, nil, resolver, "CAD", date(2024, 7, 1))

		want := 10000 * (1 + 0.045*182.0/365.0)
		if math.Abs(e.MTMAccount-want) > 0.01 {
			t.Errorf("Expected MTM ~%.2f, got %v", want, e.MTMAccount)
		}
		if math.Abs(e.PnLAccount-(want-10000)) > 0.01 {
			t.Errorf("Expected PnL ~%.2f, got %v", want-10000, e.PnLAccount)
		}
	})

	t.Run("MTM is monotonically non-decreasing in asOfDate", func(t *testing.T) {
		prev := -1.0
		for day := 0; day < 400; day += 7 {
			e := valuation.Valuate(gic, account, nil, resolver, "CAD",
				date(2024, 1, 1).AddDate(0, 0, day))
			if e.MTMAccount < prev {
				t.Fatalf("MTM decreased at day %d: %v < %v", day, e.MTMAccount, prev)
			}
			prev = e.MTMAccount
		}
	})

	t.Run("valuation before purchase date floors at principal", func(t *testing.T) {
		e := valuation.Valuate(gic, account, nil, resolver, "CAD", date(2023, 6, 1))

		if e.MTMAccount != 10000 {
			t.Errorf("Expected principal 10000 before purchase date, got %v", e.MTMAccount)
		}
	})

	t.Run("GIC without yield rate is skipped, not valued", func(t *testing.T) {
		broken := gic
		broken.YieldRate = nil

		e := valuation.Valuate(broken, account, nil, resolver, "CAD", date(2024, 7, 1))

		if !e.Unavailable {
			t.Error("Expected invariant-violating GIC to be marked unavailable")
		}
	})
}

// TestValuate_CashAndDividend covers the fixed-value categories.
func TestValuate_CashAndDividend(t *testing.T) {
	account := model.Account{ID: "a1", Name: "USD Account", BaseCurrency: "USD"}
	resolver := fx.NewResolver(map[string]float64{"USDCAD": 1.35}, "CAD")

	t.Run("cash has zero PnL and converts to reporting", func(t *testing.T) {
		cash := model.Position{
			ID: "c1", Category: model.CategoryCash,
			Quantity: 5000, CostPerUnit: 1.0, Currency: "USD",
			DateAdded: date(2024, 1, 1),
		}

		e := valuation.Valuate(cash, account, nil, resolver, "CAD", date(2024, 7, 1))

		if e.MTMAccount != 5000 || e.PnLAccount != 0 {
			t.Errorf("Expected MTM 5000 / PnL 0, got %v / %v", e.MTMAccount, e.PnLAccount)
		}
		if math.Abs(e.MTMReporting-6750) > tolerance {
			t.Errorf("Expected MTM(reporting) 6750, got %v", e.MTMReporting)
		}
	})

	t.Run("dividend is fully realized gain", func(t *testing.T) {
		div := model.Position{
			ID: "d1", Category: model.CategoryDividend,
			Quantity: 120, CostPerUnit: 1.0, Currency: "USD",
			DateAdded: date(2024, 3, 1),
		}

		e := valuation.Valuate(div, account, nil, resolver, "CAD", date(2024, 7, 1))

		if e.MTMAccount != 120 || e.PnLAccount != 120 {
			t.Errorf("Expected MTM 120 / PnL 120, got %v / %v", e.MTMAccount, e.PnLAccount)
		}
	})
}
