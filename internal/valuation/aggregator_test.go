package valuation_test

import (
	"errors"
	"math"
	"testing"

	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/valuation"
)

func enriched(symbol, accountName string, category model.Category, mtm, pnl float64) model.EnrichedPosition {
	return model.EnrichedPosition{
		ID:           symbol + "-" + accountName,
		Symbol:       symbol,
		Category:     category,
		AccountName:  accountName,
		MTMReporting: mtm,
		PnLReporting: pnl,
	}
}

// TestParseGroupBy tests string-to-enum conversion at the API boundary.
func TestParseGroupBy(t *testing.T) {
	valid := map[string]valuation.GroupBy{
		"category": valuation.GroupByCategory,
		"account":  valuation.GroupByAccount,
		"symbol":   valuation.GroupBySymbol,
		"sector":   valuation.GroupBySector,
		"cash_gic": valuation.GroupByCashGIC,
		"":         valuation.GroupByCategory, // default
	}
	for input, want := range valid {
		got, err := valuation.ParseGroupBy(input)
		if err != nil {
			t.Errorf("ParseGroupBy(%q) failed: %v", input, err)
		}
		if got != want {
			t.Errorf("ParseGroupBy(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := valuation.ParseGroupBy("industry"); !errors.Is(err, apperrors.ErrInvalidGroupBy) {
		t.Errorf("Expected ErrInvalidGroupBy, got %v", err)
	}
}

// TestSummarize_Proportions tests the percentage base rules.
//
// WHY: The UI renders these proportions as a pie chart; a base that
// includes negative MTM silently pushes the positive slices past 100%.
func TestSummarize_Proportions(t *testing.T) {
	t.Run("group proportions sum to 100 when all valuations available", func(t *testing.T) {
		positions := []model.EnrichedPosition{
			enriched("AAPL", "TFSA", model.CategoryEquity, 27000, 6750),
			enriched("MSFT", "TFSA", model.CategoryEquity, 13000, 1000),
			enriched("CASH", "RRSP", model.CategoryCash, 10000, 0),
		}

		out := valuation.Summarize(positions, valuation.GroupBySymbol, nil, "CAD")

		var sum float64
		for _, g := range out.Groups {
			sum += g.Proportion
		}
		if math.Abs(sum-100) > tolerance {
			t.Errorf("Expected proportions to sum to 100, got %v", sum)
		}
	})

	t.Run("negative MTM yields negative proportion without inflating others", func(t *testing.T) {
		positions := []model.EnrichedPosition{
			enriched("WIN", "TFSA", model.CategoryEquity, 800, 100),
			enriched("LOSS", "TFSA", model.CategoryEquity, -200, -300),
			enriched("FLAT", "TFSA", model.CategoryEquity, 200, 0),
		}

		out := valuation.Summarize(positions, valuation.GroupBySymbol, nil, "CAD")

		// Base is the positive MTM sum (1000), not the net (800).
		byKey := map[string]model.SummaryGroup{}
		for _, g := range out.Groups {
			byKey[g.GroupKey] = g
		}
		if math.Abs(byKey["WIN"].Proportion-80) > tolerance {
			t.Errorf("Expected WIN at 80%%, got %v", byKey["WIN"].Proportion)
		}
		if math.Abs(byKey["LOSS"].Proportion-(-20)) > tolerance {
			t.Errorf("Expected LOSS at -20%%, got %v", byKey["LOSS"].Proportion)
		}
	})

	t.Run("unavailable positions excluded from groups and totals but returned", func(t *testing.T) {
		unavailable := enriched("GONE", "TFSA", model.CategoryEquity, 0, 0)
		unavailable.Unavailable = true
		positions := []model.EnrichedPosition{
			enriched("AAPL", "TFSA", model.CategoryEquity, 1000, 50),
			unavailable,
		}

		out := valuation.Summarize(positions, valuation.GroupBySymbol, nil, "CAD")

		if len(out.Positions) != 2 {
			t.Errorf("Expected both positions returned, got %d", len(out.Positions))
		}
		if len(out.Groups) != 1 {
			t.Errorf("Expected single group, got %d", len(out.Groups))
		}
		if out.TotalMTMReporting != 1000 {
			t.Errorf("Expected total MTM 1000, got %v", out.TotalMTMReporting)
		}
	})
}

// TestSummarize_Grouping tests each grouping dimension and the ordering rule.
func TestSummarize_Grouping(t *testing.T) {
	t.Run("cash_gic always produces exactly two groups", func(t *testing.T) {
		positions := []model.EnrichedPosition{
			enriched("AAPL", "TFSA", model.CategoryEquity, 1000, 100),
		}

		out := valuation.Summarize(positions, valuation.GroupByCashGIC, nil, "CAD")

		if len(out.Groups) != 2 {
			t.Fatalf("Expected exactly 2 groups, got %d", len(out.Groups))
		}
		keys := map[string]bool{}
		for _, g := range out.Groups {
			keys[g.GroupKey] = true
		}
		if !keys["Cash/GIC"] || !keys["Other"] {
			t.Errorf("Expected Cash/GIC and Other groups, got %v", keys)
		}
	})

	t.Run("GIC and Cash group together under cash_gic", func(t *testing.T) {
		positions := []model.EnrichedPosition{
			enriched("CASH", "TFSA", model.CategoryCash, 500, 0),
			enriched("GIC-1", "TFSA", model.CategoryGIC, 1500, 30),
			enriched("AAPL", "TFSA", model.CategoryEquity, 1000, 100),
			enriched("DIV", "TFSA", model.CategoryDividend, 50, 50),
		}

		out := valuation.Summarize(positions, valuation.GroupByCashGIC, nil, "CAD")

		for _, g := range out.Groups {
			switch g.GroupKey {
			case "Cash/GIC":
				if g.MTMReporting != 2000 {
					t.Errorf("Expected Cash/GIC MTM 2000, got %v", g.MTMReporting)
				}
			case "Other":
				if g.MTMReporting != 1050 {
					t.Errorf("Expected Other MTM 1050, got %v", g.MTMReporting)
				}
			}
		}
	})

	t.Run("sector grouping defaults to Unspecified", func(t *testing.T) {
		positions := []model.EnrichedPosition{
			enriched("AAPL", "TFSA", model.CategoryEquity, 1000, 100),
			enriched("XOM", "TFSA", model.CategoryEquity, 500, 20),
			enriched("CASH", "TFSA", model.CategoryCash, 300, 0),
		}
		sectors := map[string]string{"AAPL": "Technology"}

		out := valuation.Summarize(positions, valuation.GroupBySector, sectors, "CAD")

		byKey := map[string]float64{}
		for _, g := range out.Groups {
			byKey[g.GroupKey] = g.MTMReporting
		}
		if byKey["Technology"] != 1000 {
			t.Errorf("Expected Technology MTM 1000, got %v", byKey["Technology"])
		}
		// Unmapped equity and cash both fall under Unspecified.
		if byKey[model.UnspecifiedSector] != 800 {
			t.Errorf("Expected Unspecified MTM 800, got %v", byKey[model.UnspecifiedSector])
		}
	})

	t.Run("groups ordered by MTM descending then key ascending", func(t *testing.T) {
		positions := []model.EnrichedPosition{
			enriched("BBB", "TFSA", model.CategoryEquity, 500, 0),
			enriched("AAA", "TFSA", model.CategoryEquity, 500, 0),
			enriched("TOP", "TFSA", model.CategoryEquity, 900, 0),
		}

		out := valuation.Summarize(positions, valuation.GroupBySymbol, nil, "CAD")

		wantOrder := []string{"TOP", "AAA", "BBB"}
		for i, want := range wantOrder {
			if out.Groups[i].GroupKey != want {
				t.Errorf("Expected group %d = %s, got %s", i, want, out.Groups[i].GroupKey)
			}
		}
	})

	t.Run("account grouping sums per account name", func(t *testing.T) {
		positions := []model.EnrichedPosition{
			enriched("AAPL", "TFSA", model.CategoryEquity, 1000, 100),
			enriched("MSFT", "TFSA", model.CategoryEquity, 2000, 200),
			enriched("AAPL", "RRSP", model.CategoryEquity, 3000, 300),
		}

		out := valuation.Summarize(positions, valuation.GroupByAccount, nil, "CAD")

		if len(out.Groups) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(out.Groups))
		}
		if out.Groups[0].GroupKey != "RRSP" || out.Groups[0].MTMReporting != 3000 {
			t.Errorf("Expected RRSP first with 3000, got %+v", out.Groups[0])
		}
		if out.Groups[1].GroupKey != "TFSA" || out.Groups[1].MTMReporting != 3000 {
			t.Errorf("Expected TFSA with 3000, got %+v", out.Groups[1])
		}
	})
}
