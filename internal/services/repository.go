package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for billable services.
type Repository interface {
	Create(ctx context.Context, req *CreateServiceRequest) (*Service, error)
	FindAll(ctx context.Context) ([]*Service, error)
	FindByID(ctx context.Context, id string) (*Service, error)
	Update(ctx context.Context, id string, req *UpdateServiceRequest) (*Service, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository implements Repository with in-memory storage for tests
// and local development.
type InMemoryRepository struct {
	mu       sync.RWMutex
	services map[string]*Service
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{services: make(map[string]*Service)}
}

func (r *InMemoryRepository) Create(ctx context.Context, req *CreateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	svc := &Service{
		ID:                   uuid.NewString(),
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		BasePrice:            req.BasePrice,
		TargetAudience:       req.TargetAudience,
		BillingModel:         req.BillingModel,
		StandardDuration:     req.StandardDuration,
		AverageExecutionTime: req.AverageExecutionTime,
		LinkedToClient:       req.LinkedToClient,
		AutoRenewal:          req.AutoRenewal,
		CalendarAvailability: req.CalendarAvailability,
		FollowUpDays:         req.FollowUpDays,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	r.mu.Lock()
	r.services[svc.ID] = svc
	r.mu.Unlock()

	dup := *svc
	return &dup, nil
}

func (r *InMemoryRepository) FindAll(ctx context.Context) ([]*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Service, 0, len(r.services))
	for _, s := range r.services {
		dup := *s
		out = append(out, &dup)
	}
	return out, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	dup := *svc
	return &dup, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpdateServiceRequest) (*Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.TargetAudience != nil {
		svc.TargetAudience = *req.TargetAudience
	}
	if req.BillingModel != nil {
		svc.BillingModel = *req.BillingModel
	}
	if req.StandardDuration != nil {
		svc.StandardDuration = *req.StandardDuration
	}
	if req.AverageExecutionTime != nil {
		svc.AverageExecutionTime = *req.AverageExecutionTime
	}
	if req.LinkedToClient != nil {
		svc.LinkedToClient = *req.LinkedToClient
	}
	if req.AutoRenewal != nil {
		svc.AutoRenewal = *req.AutoRenewal
	}
	if req.CalendarAvailability != nil {
		svc.CalendarAvailability = *req.CalendarAvailability
	}
	if req.FollowUpDays != nil {
		svc.FollowUpDays = *req.FollowUpDays
	}
	svc.UpdatedAt = time.Now().UTC()

	dup := *svc
	return &dup, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}
