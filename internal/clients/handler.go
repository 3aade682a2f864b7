package clients

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/giovanipessoa/next-clisphere/internal/http/response"
	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

// Handler handles HTTP requests for clients. Create goes through the use
// case; list/find/update/delete call the repository directly.
type Handler struct {
	service *Service
	repo    Repository
	logger  *logging.Logger
}

// NewHandler creates a new clients handler.
func NewHandler(service *Service, repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, repo: repo, logger: logger}
}

// Create handles POST /api/client.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode client payload", "error", err)
		response.BadRequest(w, "invalid request body")
		return
	}

	client, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "failed to create client", err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, client)
}

// List handles GET /api/client.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list clients", "error", err)
		response.InternalError(w, "failed to list clients")
		return
	}
	response.WriteJSON(w, http.StatusOK, list)
}

// Get handles GET /api/client/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	client, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "failed to load client", err)
		return
	}
	response.WriteJSON(w, http.StatusOK, client)
}

// Update handles PUT /api/client/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode client update", "error", err)
		response.BadRequest(w, "invalid request body")
		return
	}

	client, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, "failed to update client", err)
		return
	}
	response.WriteJSON(w, http.StatusOK, client)
}

// Delete handles DELETE /api/client/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeError(w, "failed to delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps domain errors to one consistent status policy: validation
// 400, missing 404, duplicate email 409, anything else 500.
func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrClientNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrDuplicateEmail):
		response.Conflict(w, err.Error(), response.CodeDuplicateEmail)
	default:
		h.logger.Error(msg, "error", err)
		response.InternalError(w, msg)
	}
}
