package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-engine/internal/api/request"
	"portfolio-engine/internal/api/response"
	"portfolio-engine/internal/service"
)

// PositionHandler handles position-related HTTP requests
type PositionHandler struct {
	positionService *service.PositionService
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

// Positions handles GET /api/positions with optional account_id and symbol
// query filters.
func (h *PositionHandler) Positions(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	symbol := r.URL.Query().Get("symbol")

	positions, err := h.positionService.GetPositions(accountID, symbol)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve positions")
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Position handles GET /api/positions/{id}
func (h *PositionHandler) Position(w http.ResponseWriter, r *http.Request) {
	position, err := h.positionService.GetPosition(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve position")
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// CreatePosition handles POST /api/positions
func (h *PositionHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	position, err := h.positionService.CreatePosition(req)
	if err != nil {
		respondServiceError(w, err, "failed to create position")
		return
	}

	response.RespondJSON(w, http.StatusCreated, position)
}

// UpdatePosition handles PUT /api/positions/{id}
func (h *PositionHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	position, err := h.positionService.UpdatePosition(chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update position")
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// DeletePosition handles DELETE /api/positions/{id}
func (h *PositionHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	if err := h.positionService.DeletePosition(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err, "failed to delete position")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
