package workspace

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/giovanipessoa/next-clisphere/internal/http/response"
	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

// Handler exposes the settings endpoints.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a new settings HTTP handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Get returns the current workspace settings.
// GET /api/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		response.InternalError(w, "failed to load settings")
		return
	}
	response.WriteJSON(w, http.StatusOK, settings)
}

// Update replaces the workspace settings.
// PUT /api/settings
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var settings Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(settings.ClinicName) == "" {
		response.BadRequest(w, "clinicName is required")
		return
	}

	if err := h.store.Set(r.Context(), &settings); err != nil {
		h.logger.Error("failed to save settings", "error", err)
		response.InternalError(w, "failed to save settings")
		return
	}

	h.logger.Info("workspace settings updated", "clinic", settings.ClinicName)
	response.WriteJSON(w, http.StatusOK, &settings)
}
