package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

func newTestHandler() (*Handler, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	return NewHandler(repo, logging.Default()), repo
}

func postService(t *testing.T, h *Handler, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/service", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	return w
}

func TestCreateService_Success(t *testing.T) {
	h, _ := newTestHandler()

	w := postService(t, h, CreateServiceRequest{
		Name:             "Limpeza de pele",
		Category:         CategoryAestheticTreatments,
		BasePrice:        180,
		BillingModel:     BillingPerSession,
		StandardDuration: 60,
		FollowUpDays:     30,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	var svc Service
	if err := json.NewDecoder(w.Body).Decode(&svc); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if svc.ID == "" {
		t.Error("expected generated id")
	}
	if svc.BillingModel != BillingPerSession {
		t.Errorf("expected billing model %q, got %q", BillingPerSession, svc.BillingModel)
	}
}

func TestCreateService_Validation(t *testing.T) {
	h, repo := newTestHandler()

	cases := []CreateServiceRequest{
		{Category: CategoryOther, BillingModel: BillingFixed},
		{Name: "X", BillingModel: BillingFixed},
		{Name: "X", Category: CategoryOther},
		{Name: "X", Category: CategoryOther, BillingModel: BillingFixed, BasePrice: -1},
	}
	for i, payload := range cases {
		if w := postService(t, h, payload); w.Code != http.StatusBadRequest {
			t.Errorf("case %d: expected status %d, got %d", i, http.StatusBadRequest, w.Code)
		}
	}

	stored, _ := repo.FindAll(context.Background())
	if len(stored) != 0 {
		t.Fatalf("expected no store writes, got %d rows", len(stored))
	}
}

func TestServiceCRUDRoundTrip(t *testing.T) {
	h, _ := newTestHandler()

	cw := postService(t, h, CreateServiceRequest{
		Name:         "Consulta dermatológica",
		Category:     CategoryMedicalAppointments,
		BasePrice:    350,
		BillingModel: BillingFixed,
	})
	var created Service
	_ = json.NewDecoder(cw.Body).Decode(&created)

	req := httptest.NewRequest(http.MethodGet, "/api/service/"+created.ID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", created.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var found Service
	_ = json.NewDecoder(w.Body).Decode(&found)
	if found.ID != created.ID || found.Name != created.Name || found.BasePrice != created.BasePrice {
		t.Errorf("round-trip mismatch: created %+v, found %+v", created, found)
	}
}

func TestGetService_NotFound(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/service/missing", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "missing")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()
	h.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestRepository_UpdatePartial(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &CreateServiceRequest{
		Name:         "Pacote massagem",
		Category:     CategoryAestheticTreatments,
		BasePrice:    500,
		BillingModel: BillingPerPackage,
		AutoRenewal:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	price := 550.0
	updated, err := repo.Update(ctx, created.ID, &UpdateServiceRequest{BasePrice: &price})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.BasePrice != 550 {
		t.Errorf("expected updated price, got %v", updated.BasePrice)
	}
	if !updated.AutoRenewal || updated.Name != "Pacote massagem" {
		t.Errorf("expected untouched fields preserved, got %+v", updated)
	}

	if _, err := repo.Update(ctx, "missing", &UpdateServiceRequest{BasePrice: &price}); !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("expected ErrServiceNotFound, got %v", err)
	}
}
