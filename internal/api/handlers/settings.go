package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-engine/internal/api/request"
	"portfolio-engine/internal/api/response"
	"portfolio-engine/internal/service"
)

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// SettingResponse represents one setting key/value pair.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Setting handles GET /api/settings/{key}
func (h *SettingsHandler) Setting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := h.settingsService.GetSetting(key)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve setting")
		return
	}

	response.RespondJSON(w, http.StatusOK, SettingResponse{Key: key, Value: value})
}

// SetSetting handles PUT /api/settings/{key}
func (h *SettingsHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req request.SetSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.settingsService.SetSetting(key, req.Value); err != nil {
		respondServiceError(w, err, "failed to store setting")
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "stored"})
}

// DeleteSetting handles DELETE /api/settings/{key}
func (h *SettingsHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsService.DeleteSetting(chi.URLParam(r, "key")); err != nil {
		respondServiceError(w, err, "failed to delete setting")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
