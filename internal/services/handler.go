package services

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giovanipessoa/next-clisphere/internal/http/response"
	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

// Handler handles HTTP requests for the service catalog. Services carry no
// business rule beyond field validation, so handlers talk to the repository
// directly.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new services handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /api/service.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode service payload", "error", err)
		response.BadRequest(w, "invalid request body")
		return
	}

	svc, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "failed to create service", err)
		return
	}

	h.logger.Info("service created", "id", svc.ID, "name", svc.Name)
	response.WriteJSON(w, http.StatusCreated, svc)
}

// List handles GET /api/service.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list services", "error", err)
		response.InternalError(w, "failed to list services")
		return
	}
	response.WriteJSON(w, http.StatusOK, list)
}

// Get handles GET /api/service/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	svc, err := h.repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "failed to load service", err)
		return
	}
	response.WriteJSON(w, http.StatusOK, svc)
}

// Update handles PUT /api/service/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode service update", "error", err)
		response.BadRequest(w, "invalid request body")
		return
	}

	svc, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.writeError(w, "failed to update service", err)
		return
	}
	response.WriteJSON(w, http.StatusOK, svc)
}

// Delete handles DELETE /api/service/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, "failed to delete service", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrServiceNotFound):
		response.NotFound(w, err.Error())
	default:
		h.logger.Error(msg, "error", err)
		response.InternalError(w, msg)
	}
}
