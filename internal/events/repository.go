package events

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/giovanipessoa/next-clisphere/internal/clients"
	"github.com/giovanipessoa/next-clisphere/internal/services"
)

// Repository defines the persistence contract for events. Read operations
// eagerly expand the referenced client and service.
type Repository interface {
	Create(ctx context.Context, req *CreateEventRequest) (*Event, error)
	FindAll(ctx context.Context) ([]*Event, error)
	FindByID(ctx context.Context, id string) (*Event, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*Event, error)
	Update(ctx context.Context, id string, req *UpdateEventRequest) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository implements Repository with in-memory storage. The
// optional client/service repositories feed reference expansion; nil skips it.
type InMemoryRepository struct {
	mu       sync.RWMutex
	events   map[string]*Event
	clients  clients.Repository
	services services.Repository
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository(clientsRepo clients.Repository, servicesRepo services.Repository) *InMemoryRepository {
	return &InMemoryRepository{
		events:   make(map[string]*Event),
		clients:  clientsRepo,
		services: servicesRepo,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, req *CreateEventRequest) (*Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusScheduled
	}

	now := time.Now().UTC()
	event := &Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ClientID:    req.ClientID,
		ServiceID:   req.ServiceID,
		Location:    req.Location,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	r.events[event.ID] = event
	r.mu.Unlock()

	dup := *event
	return &dup, nil
}

func (r *InMemoryRepository) FindAll(ctx context.Context) ([]*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, r.expand(ctx, e))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return r.expand(ctx, event), nil
}

// FindByDateRange returns events fully contained in [start, end], both
// bounds inclusive.
func (r *InMemoryRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Event, 0)
	for _, e := range r.events {
		if !e.StartDate.Before(start) && !e.EndDate.After(end) {
			out = append(out, r.expand(ctx, e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpdateEventRequest) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Type != nil {
		event.Type = *req.Type
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.ClientID != nil {
		event.ClientID = *req.ClientID
	}
	if req.ServiceID != nil {
		event.ServiceID = *req.ServiceID
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Notes != nil {
		event.Notes = *req.Notes
	}
	event.UpdatedAt = time.Now().UTC()

	dup := *event
	return &dup, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

// expand attaches the referenced client/service when the backing repositories
// are wired and the rows exist. Dangling references stay as bare ids.
func (r *InMemoryRepository) expand(ctx context.Context, e *Event) *Event {
	dup := *e
	if dup.ClientID != "" && r.clients != nil {
		if client, err := r.clients.FindByID(ctx, dup.ClientID); err == nil {
			dup.Client = client
		}
	}
	if dup.ServiceID != "" && r.services != nil {
		if svc, err := r.services.FindByID(ctx, dup.ServiceID); err == nil {
			dup.Service = svc
		}
	}
	return &dup
}
