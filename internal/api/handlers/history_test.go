package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-engine/internal/api/handlers"
	"portfolio-engine/internal/marketdata"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/testutil"
)

// TestHistoryHandler_History tests the GET /api/history endpoint.
func TestHistoryHandler_History(t *testing.T) {
	setup := func(t *testing.T) *handlers.HistoryHandler {
		t.Helper()

		db := testutil.SetupTestDB(t)
		historyDB := testutil.SetupTestHistoryDB(t)

		account := testutil.NewAccount().WithCurrency("CAD").Build(t, db)
		testutil.NewPosition().WithAccount(account.ID).WithSymbol("AAPL").
			WithQuantity(10).WithCost(90).WithCurrency("USD").
			WithDateAdded(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Build(t, db)

		provider := testutil.NewMockProvider()
		provider.Prices["AAPL"] = []marketdata.PricePoint{
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 100},
		}
		provider.FxHistory["USDCAD"] = []marketdata.PricePoint{
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 1.30},
		}

		return handlers.NewHistoryHandler(testutil.NewTestHistoryService(t, db, historyDB, provider))
	}

	t.Run("returns the reconstructed series", func(t *testing.T) {
		handler := setup(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/history",
			map[string]string{"symbol": "AAPL", "use_cache": "false"})
		w := httptest.NewRecorder()

		handler.History(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.HistoryOut
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Label != "AAPL" {
			t.Errorf("Expected label AAPL, got %s", response.Label)
		}
		if len(response.Points) != 1 {
			t.Fatalf("Expected 1 point, got %d", len(response.Points))
		}
		if response.Points[0].MTM != 1300 {
			t.Errorf("Expected MTM 1300, got %v", response.Points[0].MTM)
		}
	})

	t.Run("returns 400 when symbol is missing", func(t *testing.T) {
		handler := setup(t)

		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		w := httptest.NewRecorder()

		handler.History(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a malformed account_id", func(t *testing.T) {
		handler := setup(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/history",
			map[string]string{"symbol": "AAPL", "account_id": "nope"})
		w := httptest.NewRecorder()

		handler.History(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestHistoryHandler_AggregateHistory tests the GET /api/history/aggregate endpoint.
func TestHistoryHandler_AggregateHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	historyDB := testutil.SetupTestHistoryDB(t)

	account := testutil.NewAccount().WithName("Savings").WithCurrency("CAD").Build(t, db)
	testutil.NewPosition().WithAccount(account.ID).AsCash(5000, "CAD").
		WithDateAdded(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Build(t, db)

	provider := testutil.NewMockProvider()
	handler := handlers.NewHistoryHandler(testutil.NewTestHistoryService(t, db, historyDB, provider))

	t.Run("portfolio series without an account filter", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/history/aggregate",
			map[string]string{"use_cache": "false"})
		w := httptest.NewRecorder()

		handler.AggregateHistory(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.HistoryOut
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Label != "Portfolio" {
			t.Errorf("Expected label Portfolio, got %s", response.Label)
		}
		if len(response.Points) == 0 {
			t.Error("Expected at least one point for a funded portfolio")
		}
	})

	t.Run("unknown account yields 404", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/history/aggregate",
			map[string]string{"account_id": testutil.MakeID()})
		w := httptest.NewRecorder()

		handler.AggregateHistory(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
