package handlers

import (
	"net/http"

	"portfolio-engine/internal/api/response"
	"portfolio-engine/internal/service"
)

// SummaryHandler handles portfolio summary HTTP requests
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

// Summary handles GET /api/summary?group_by={category|account|symbol|sector|cash_gic}.
// An absent group_by defaults to category.
func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	out, err := h.summaryService.GetSummary(r.URL.Query().Get("group_by"))
	if err != nil {
		respondServiceError(w, err, "failed to compute summary")
		return
	}

	response.RespondJSON(w, http.StatusOK, out)
}
