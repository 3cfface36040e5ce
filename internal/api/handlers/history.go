package handlers

import (
	"net/http"
	"strconv"

	"portfolio-engine/internal/api/response"
	"portfolio-engine/internal/service"
)

// HistoryHandler handles time-series reconstruction HTTP requests
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// History handles GET /api/history?symbol=X&account_id=Y&use_cache=true.
// symbol is required; account_id narrows the series to one account's lots.
func (h *HistoryHandler) History(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	accountID := r.URL.Query().Get("account_id")

	out, err := h.historyService.GetSymbolHistory(r.Context(), symbol, accountID, useCacheParam(r))
	if err != nil {
		respondServiceError(w, err, "failed to reconstruct history")
		return
	}

	response.RespondJSON(w, http.StatusOK, out)
}

// AggregateHistory handles GET /api/history/aggregate?account_id=Y&use_cache=true.
// An absent account_id returns the whole-portfolio series.
func (h *HistoryHandler) AggregateHistory(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")

	out, err := h.historyService.GetAggregateHistory(r.Context(), accountID, useCacheParam(r))
	if err != nil {
		respondServiceError(w, err, "failed to reconstruct aggregate history")
		return
	}

	response.RespondJSON(w, http.StatusOK, out)
}

// useCacheParam reads the use_cache query parameter. The cached phase is
// the default; clients opt in to a forced live rebuild with use_cache=false.
func useCacheParam(r *http.Request) bool {
	raw := r.URL.Query().Get("use_cache")
	if raw == "" {
		return true
	}
	useCache, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return useCache
}
