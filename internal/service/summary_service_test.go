package service_test

import (
	"errors"
	"math"
	"testing"

	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/testutil"
)

const tolerance = 1e-6

// TestSummaryService_GetSummary tests the full summary pipeline: stored
// positions, snapshots, and FX observations in, enriched valuations out.
func TestSummaryService_GetSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSummaryService(t, db)

	tfsa := testutil.NewAccount().WithName("TFSA").WithCurrency("CAD").Build(t, db)
	testutil.NewPosition().WithAccount(tfsa.ID).WithSymbol("AAPL").
		WithQuantity(100).WithCost(150).WithCurrency("USD").Build(t, db)
	testutil.NewPosition().WithAccount(tfsa.ID).AsCash(5000, "CAD").Build(t, db)

	testutil.InsertSnapshot(t, db, "AAPL", 200)
	testutil.InsertFxRate(t, db, "USDCAD", 1.35)

	t.Run("values the two-hop chain end to end", func(t *testing.T) {
		out, err := svc.GetSummary("symbol")
		if err != nil {
			t.Fatalf("GetSummary failed: %v", err)
		}

		if len(out.Positions) != 2 {
			t.Fatalf("Expected 2 enriched positions, got %d", len(out.Positions))
		}
		// 100 x 200 x 1.35 + 5000
		if math.Abs(out.TotalMTMReporting-32000) > tolerance {
			t.Errorf("Expected total MTM 32000, got %v", out.TotalMTMReporting)
		}
		if out.ReportingCurrency != testutil.TestReportingCurrency {
			t.Errorf("Expected reporting currency %s, got %s", testutil.TestReportingCurrency, out.ReportingCurrency)
		}
	})

	t.Run("position without a snapshot is marked unavailable", func(t *testing.T) {
		testutil.NewPosition().WithAccount(tfsa.ID).WithSymbol("NOQUOTE").
			WithQuantity(10).WithCost(50).WithCurrency("CAD").Build(t, db)

		out, err := svc.GetSummary("symbol")
		if err != nil {
			t.Fatalf("GetSummary failed: %v", err)
		}

		var foundUnavailable bool
		for _, p := range out.Positions {
			if p.Symbol == "NOQUOTE" {
				foundUnavailable = p.Unavailable
			}
		}
		if !foundUnavailable {
			t.Error("Expected NOQUOTE to carry the unavailable marker")
		}
		// Totals unchanged by the unavailable position.
		if math.Abs(out.TotalMTMReporting-32000) > tolerance {
			t.Errorf("Expected total MTM 32000, got %v", out.TotalMTMReporting)
		}
	})

	t.Run("sector grouping picks up stored mappings", func(t *testing.T) {
		mappingSvc := testutil.NewTestMappingService(t, db)
		if err := mappingSvc.SetMapping(sectorReq("AAPL", "Technology")); err != nil {
			t.Fatalf("SetMapping failed: %v", err)
		}

		out, err := svc.GetSummary("sector")
		if err != nil {
			t.Fatalf("GetSummary failed: %v", err)
		}

		var foundTech bool
		for _, g := range out.Groups {
			if g.GroupKey == "Technology" {
				foundTech = true
				if math.Abs(g.MTMReporting-27000) > tolerance {
					t.Errorf("Expected Technology MTM 27000, got %v", g.MTMReporting)
				}
			}
		}
		if !foundTech {
			t.Error("Expected a Technology group")
		}
	})

	t.Run("unknown group_by is rejected", func(t *testing.T) {
		_, err := svc.GetSummary("industry")
		if !errors.Is(err, apperrors.ErrInvalidGroupBy) {
			t.Errorf("Expected ErrInvalidGroupBy, got %v", err)
		}
	})
}
