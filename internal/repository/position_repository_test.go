package repository_test

import (
	"errors"
	"testing"
	"time"

	"portfolio-engine/internal/apperrors"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/repository"
	"portfolio-engine/internal/testutil"
)

func TestPositionRepository_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPositionRepository(db)

	tfsa := testutil.NewAccount().WithName("TFSA").Build(t, db)
	rrsp := testutil.NewAccount().WithName("RRSP").Build(t, db)

	testutil.NewPosition().WithAccount(tfsa.ID).WithSymbol("AAPL").Build(t, db)
	testutil.NewPosition().WithAccount(tfsa.ID).WithSymbol("MSFT").Build(t, db)
	testutil.NewPosition().WithAccount(rrsp.ID).WithSymbol("AAPL").Build(t, db)

	t.Run("no filter returns all lots", func(t *testing.T) {
		positions, err := repo.GetPositions("", "")
		if err != nil {
			t.Fatalf("GetPositions failed: %v", err)
		}
		if len(positions) != 3 {
			t.Errorf("Expected 3 positions, got %d", len(positions))
		}
	})

	t.Run("account filter narrows to one account", func(t *testing.T) {
		positions, err := repo.GetPositions(tfsa.ID, "")
		if err != nil {
			t.Fatalf("GetPositions failed: %v", err)
		}
		if len(positions) != 2 {
			t.Errorf("Expected 2 positions, got %d", len(positions))
		}
	})

	t.Run("combined filter narrows to one lot", func(t *testing.T) {
		positions, err := repo.GetPositions(rrsp.ID, "AAPL")
		if err != nil {
			t.Fatalf("GetPositions failed: %v", err)
		}
		if len(positions) != 1 {
			t.Errorf("Expected 1 position, got %d", len(positions))
		}
	})

	t.Run("distinct equity symbols deduplicates across accounts", func(t *testing.T) {
		testutil.NewPosition().WithAccount(tfsa.ID).AsCash(1000, "CAD").Build(t, db)

		symbols, err := repo.DistinctEquitySymbols()
		if err != nil {
			t.Fatalf("DistinctEquitySymbols failed: %v", err)
		}
		want := []string{"AAPL", "MSFT"}
		if len(symbols) != len(want) {
			t.Fatalf("Expected %v, got %v", want, symbols)
		}
		for i := range want {
			if symbols[i] != want[i] {
				t.Errorf("Expected %v, got %v", want, symbols)
			}
		}
	})
}

func TestPositionRepository_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPositionRepository(db)
	account := testutil.NewAccount().Build(t, db)

	t.Run("GIC yield rate survives the round trip", func(t *testing.T) {
		created := testutil.NewPosition().
			WithAccount(account.ID).
			AsGIC(10000, 0.045, "CAD").
			WithDateAdded(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)).
			Build(t, db)

		got, err := repo.GetPositionOnID(created.ID)
		if err != nil {
			t.Fatalf("GetPositionOnID failed: %v", err)
		}
		if got.Category != model.CategoryGIC {
			t.Errorf("Expected GIC category, got %s", got.Category)
		}
		if got.YieldRate == nil || *got.YieldRate != 0.045 {
			t.Errorf("Expected yield rate 0.045, got %v", got.YieldRate)
		}
		if !got.DateAdded.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected date 2024-03-15, got %v", got.DateAdded)
		}
	})

	t.Run("nil yield rate stays nil", func(t *testing.T) {
		created := testutil.NewPosition().WithAccount(account.ID).Build(t, db)

		got, err := repo.GetPositionOnID(created.ID)
		if err != nil {
			t.Fatalf("GetPositionOnID failed: %v", err)
		}
		if got.YieldRate != nil {
			t.Errorf("Expected nil yield rate, got %v", got.YieldRate)
		}
	})

	t.Run("same symbol same day lots coexist", func(t *testing.T) {
		day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		testutil.NewPosition().WithAccount(account.ID).WithSymbol("VTI").WithDateAdded(day).Build(t, db)
		testutil.NewPosition().WithAccount(account.ID).WithSymbol("VTI").WithDateAdded(day).Build(t, db)

		positions, err := repo.GetPositions(account.ID, "VTI")
		if err != nil {
			t.Fatalf("GetPositions failed: %v", err)
		}
		if len(positions) != 2 {
			t.Errorf("Expected 2 lots, got %d", len(positions))
		}
	})

	t.Run("missing position yields ErrPositionNotFound", func(t *testing.T) {
		_, err := repo.GetPositionOnID(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrPositionNotFound) {
			t.Errorf("Expected ErrPositionNotFound, got %v", err)
		}
	})
}
