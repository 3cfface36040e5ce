package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-engine/internal/api/request"
	"portfolio-engine/internal/api/response"
	"portfolio-engine/internal/service"
)

// SectorHandler handles sector and industry mapping HTTP requests
type SectorHandler struct {
	mappingService *service.MappingService
}

// NewSectorHandler creates a new SectorHandler
func NewSectorHandler(mappingService *service.MappingService) *SectorHandler {
	return &SectorHandler{
		mappingService: mappingService,
	}
}

// SectorMappingsResponse carries both classification maps.
type SectorMappingsResponse struct {
	Sectors    map[string]string `json:"sectors"`
	Industries map[string]string `json:"industries"`
}

// Sectors handles GET /api/sectors
func (h *SectorHandler) Sectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.mappingService.GetSectorMappings()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve sector mappings")
		return
	}
	industries, err := h.mappingService.GetIndustryMappings()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve industry mappings")
		return
	}

	response.RespondJSON(w, http.StatusOK, SectorMappingsResponse{
		Sectors:    sectors,
		Industries: industries,
	})
}

// SetSector handles PUT /api/sectors
func (h *SectorHandler) SetSector(w http.ResponseWriter, r *http.Request) {
	var req request.SetSectorMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.mappingService.SetMapping(req); err != nil {
		respondServiceError(w, err, "failed to store sector mapping")
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "stored"})
}

// DeleteSector handles DELETE /api/sectors/{symbol}
func (h *SectorHandler) DeleteSector(w http.ResponseWriter, r *http.Request) {
	if err := h.mappingService.DeleteSectorMapping(chi.URLParam(r, "symbol")); err != nil {
		respondServiceError(w, err, "failed to delete sector mapping")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
