package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/scrapbook/internal/model"
	"github.com/sakif/scrapbook/internal/service"
)

type SettingsHandler struct {
	settings *service.SettingsService
	logger   *slog.Logger
}

func NewSettingsHandler(settings *service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

// HandleGet returns the site settings, creating the defaults on first use.
//
// HTTP: GET /api/settings
func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// HandleUpdate merges the body into the settings. Any subset of fields may
// be sent; theme and socialLinks merge per field.
//
// HTTP: PUT /api/settings
func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to update settings"

	var patch model.SettingsPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, h.logger, err, failed)
		return
	}

	settings, err := h.settings.Update(r.Context(), patch)
	if err != nil {
		writeError(w, h.logger, err, failed)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
