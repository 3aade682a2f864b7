package clients

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for clients.
type Repository interface {
	Create(ctx context.Context, req *CreateClientRequest) (*Client, error)
	FindAll(ctx context.Context) ([]*Client, error)
	FindByID(ctx context.Context, id string) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
	Update(ctx context.Context, id string, req *UpdateClientRequest) (*Client, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository implements Repository with in-memory storage. It backs
// handler tests and local development without Postgres, and enforces the same
// email uniqueness the database index does.
type InMemoryRepository struct {
	mu      sync.RWMutex
	clients map[string]*Client
	byEmail map[string]string
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		clients: make(map[string]*Client),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	emailKey := normalizeEmail(req.Email)
	if _, exists := r.byEmail[emailKey]; exists {
		return nil, ErrDuplicateEmail
	}

	now := time.Now().UTC()
	phone := req.Phone
	client := &Client{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Email:            req.Email,
		Phone:            &phone,
		Status:           req.Status,
		Details:          req.Details,
		ProfessionalInfo: req.ProfessionalInfo,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	r.clients[client.ID] = client
	r.byEmail[emailKey] = client.ID

	return copyClient(client), nil
}

func (r *InMemoryRepository) FindAll(ctx context.Context) ([]*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, copyClient(c))
	}
	return out, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, ErrClientNotFound
	}
	return copyClient(client), nil
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrClientNotFound
	}
	return copyClient(r.clients[id]), nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpdateClientRequest) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, ErrClientNotFound
	}

	if req.Email != nil {
		newKey := normalizeEmail(*req.Email)
		if other, exists := r.byEmail[newKey]; exists && other != id {
			return nil, ErrDuplicateEmail
		}
		delete(r.byEmail, normalizeEmail(client.Email))
		r.byEmail[newKey] = id
		client.Email = *req.Email
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	if req.Details != nil {
		client.Details = req.Details
	}
	if req.ProfessionalInfo != nil {
		client.ProfessionalInfo = req.ProfessionalInfo
	}
	if req.LastContact != nil {
		client.LastContact = req.LastContact
	}
	client.UpdatedAt = time.Now().UTC()

	return copyClient(client), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[id]
	if !ok {
		return ErrClientNotFound
	}
	delete(r.byEmail, normalizeEmail(client.Email))
	delete(r.clients, id)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func copyClient(c *Client) *Client {
	dup := *c
	return &dup
}
