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

func floatPtr(v float64) *float64 { return &v }

// TestMarketDataRepository_LatestPerSymbol tests that reads always see the
// newest append-only row per symbol.
func TestMarketDataRepository_LatestPerSymbol(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewMarketDataRepository(db)

	insert := func(symbol string, price float64, ts time.Time) {
		t.Helper()
		err := repo.InsertSnapshot(model.MarketData{
			ID:        testutil.MakeID(),
			Symbol:    symbol,
			LastPrice: floatPtr(price),
			Timestamp: ts,
		})
		if err != nil {
			t.Fatalf("InsertSnapshot failed: %v", err)
		}
	}

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	insert("AAPL", 190, base)
	insert("AAPL", 200, base.Add(time.Hour))
	insert("MSFT", 410, base)

	t.Run("map read returns newest row per symbol", func(t *testing.T) {
		snapshots, err := repo.GetLatestSnapshots()
		if err != nil {
			t.Fatalf("GetLatestSnapshots failed: %v", err)
		}
		if len(snapshots) != 2 {
			t.Fatalf("Expected 2 symbols, got %d", len(snapshots))
		}
		if *snapshots["AAPL"].LastPrice != 200 {
			t.Errorf("Expected newest AAPL price 200, got %v", *snapshots["AAPL"].LastPrice)
		}
	})

	t.Run("single read returns newest row", func(t *testing.T) {
		snapshot, err := repo.GetLatestOnSymbol("AAPL")
		if err != nil {
			t.Fatalf("GetLatestOnSymbol failed: %v", err)
		}
		if *snapshot.LastPrice != 200 {
			t.Errorf("Expected price 200, got %v", *snapshot.LastPrice)
		}
	})

	t.Run("unknown symbol yields ErrPriceUnavailable", func(t *testing.T) {
		_, err := repo.GetLatestOnSymbol("NOPE")
		if !errors.Is(err, apperrors.ErrPriceUnavailable) {
			t.Errorf("Expected ErrPriceUnavailable, got %v", err)
		}
	})

	t.Run("nil price fields survive the round trip", func(t *testing.T) {
		err := repo.InsertSnapshot(model.MarketData{
			ID:        testutil.MakeID(),
			Symbol:    "HALTED",
			Timestamp: base,
		})
		if err != nil {
			t.Fatalf("InsertSnapshot failed: %v", err)
		}

		snapshot, err := repo.GetLatestOnSymbol("HALTED")
		if err != nil {
			t.Fatalf("GetLatestOnSymbol failed: %v", err)
		}
		if snapshot.LastPrice != nil || snapshot.PERatio != nil {
			t.Error("Expected nil pointer fields for absent values")
		}
	})
}

// TestFxRateRepository_LatestPerPair tests the pair -> rate map shape the
// resolver consumes.
func TestFxRateRepository_LatestPerPair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewFxRateRepository(db)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	insert := func(pair string, rate float64, ts time.Time) {
		t.Helper()
		err := repo.InsertRate(model.FxRate{
			ID: testutil.MakeID(), Pair: pair, Rate: rate, Timestamp: ts,
		})
		if err != nil {
			t.Fatalf("InsertRate failed: %v", err)
		}
	}

	insert("USDCAD", 1.30, base)
	insert("USDCAD", 1.35, base.Add(time.Hour))
	insert("EURUSD", 1.08, base)

	rates, err := repo.GetLatestRates()
	if err != nil {
		t.Fatalf("GetLatestRates failed: %v", err)
	}

	if len(rates) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(rates))
	}
	if rates["USDCAD"] != 1.35 {
		t.Errorf("Expected newest USDCAD 1.35, got %v", rates["USDCAD"])
	}
	if rates["EURUSD"] != 1.08 {
		t.Errorf("Expected EURUSD 1.08, got %v", rates["EURUSD"])
	}
}
