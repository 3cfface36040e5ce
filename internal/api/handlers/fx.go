package handlers

import (
	"net/http"

	"portfolio-engine/internal/api/response"
	"portfolio-engine/internal/service"
)

// FxHandler handles FX-related HTTP requests
type FxHandler struct {
	fxService *service.FxService
}

// NewFxHandler creates a new FxHandler
func NewFxHandler(fxService *service.FxService) *FxHandler {
	return &FxHandler{
		fxService: fxService,
	}
}

// Rates handles GET /api/fx, returning the latest stored observation per pair.
func (h *FxHandler) Rates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.fxService.GetRates()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve FX rates")
		return
	}

	response.RespondJSON(w, http.StatusOK, rates)
}

// Matrix handles GET /api/fx/matrix, returning the square conversion table
// over every currency the portfolio touches.
func (h *FxHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.fxService.GetMatrix()
	if err != nil {
		respondServiceError(w, err, "failed to build FX matrix")
		return
	}

	response.RespondJSON(w, http.StatusOK, matrix)
}
