package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-engine/internal/api/response"
	"portfolio-engine/internal/service"
)

// MarketDataHandler handles market data HTTP requests
type MarketDataHandler struct {
	marketDataService *service.MarketDataService
	syncService       *service.SyncService
}

// NewMarketDataHandler creates a new MarketDataHandler
func NewMarketDataHandler(
	marketDataService *service.MarketDataService,
	syncService *service.SyncService,
) *MarketDataHandler {
	return &MarketDataHandler{
		marketDataService: marketDataService,
		syncService:       syncService,
	}
}

// Snapshots handles GET /api/market-data, returning the newest stored
// snapshot per symbol.
func (h *MarketDataHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.marketDataService.GetLatestSnapshots()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve market data")
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// Snapshot handles GET /api/market-data/{symbol}
func (h *MarketDataHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.marketDataService.GetLatestOnSymbol(chi.URLParam(r, "symbol"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve market data")
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// Refresh handles POST /api/market-data/refresh, triggering a full sync of
// quotes and FX rates. A sync already in flight makes this a no-op.
func (h *MarketDataHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.syncService.SyncNow(r.Context()); err != nil {
		respondServiceError(w, err, "failed to refresh market data")
		return
	}

	response.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "refreshed"})
}

// RefreshSymbol handles POST /api/market-data/{symbol}/refresh
func (h *MarketDataHandler) RefreshSymbol(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.marketDataService.RefreshSymbol(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		respondServiceError(w, err, "failed to refresh symbol")
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
