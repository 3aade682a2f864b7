package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/giovanipessoa/next-clisphere/internal/http/response"
	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

// Handler handles HTTP requests for events. Create goes through the use
// case; list/find/update/delete call the repository directly.
type Handler struct {
	service *Service
	repo    Repository
	logger  *logging.Logger
}

// NewHandler creates a new events handler.
func NewHandler(service *Service, repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, repo: repo, logger: logger}
}

// Create handles POST /api/event.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode event payload", "error", err)
		response.BadRequest(w, "invalid request body")
		return
	}

	event, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "failed to create event", err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, event)
}

// List handles GET /api/event. When both startDate and endDate query
// parameters parse as RFC3339 the date-range query is used; otherwise the
// full collection is returned.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("startDate")
	endParam := r.URL.Query().Get("endDate")

	if startParam != "" && endParam != "" {
		start, err := time.Parse(time.RFC3339, startParam)
		if err != nil {
			response.BadRequest(w, "startDate must be RFC3339")
			return
		}
		end, err := time.Parse(time.RFC3339, endParam)
		if err != nil {
			response.BadRequest(w, "endDate must be RFC3339")
			return
		}

		list, err := h.repo.FindByDateRange(r.Context(), start, end)
		if err != nil {
			h.logger.Error("failed to list events by range", "error", err)
			response.InternalError(w, "failed to list events")
			return
		}
		response.WriteJSON(w, http.StatusOK, list)
		return
	}

	list, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		response.InternalError(w, "failed to list events")
		return
	}
	response.WriteJSON(w, http.StatusOK, list)
}

// Get handles GET /api/event/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "failed to load event", err)
		return
	}
	response.WriteJSON(w, http.StatusOK, event)
}

// Update handles PUT /api/event/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode event update", "error", err)
		response.BadRequest(w, "invalid request body")
		return
	}

	event, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.writeError(w, "failed to update event", err)
		return
	}
	response.WriteJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/event/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, "failed to delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps domain errors to the shared status policy: validation 400,
// missing 404, dangling reference 422, anything else 500.
func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrEventNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrRefNotFound):
		response.Unprocessable(w, err.Error())
	default:
		h.logger.Error(msg, "error", err)
		response.InternalError(w, msg)
	}
}
