package events

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/giovanipessoa/next-clisphere/internal/clients"
	"github.com/giovanipessoa/next-clisphere/internal/services"
	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

var eventsTracer = otel.Tracer("clisphere.internal.events")

// Service is the create-event use case: required-field and date-order
// validation, reference checks on the optional clientId/serviceId, then a
// single repository call.
type Service struct {
	repo     Repository
	clients  clients.Repository
	services services.Repository
	logger   *logging.Logger
}

// NewService constructs the event use case. The client/service repositories
// back reference validation; passing nil skips the corresponding check.
func NewService(repo Repository, clientsRepo clients.Repository, servicesRepo services.Repository, logger *logging.Logger) *Service {
	if repo == nil {
		panic("events: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, clients: clientsRepo, services: servicesRepo, logger: logger}
}

// Create validates the candidate event and persists it. Dangling references
// are rejected with the ErrRefNotFound tag before anything is written.
func (s *Service) Create(ctx context.Context, req *CreateEventRequest) (*Event, error) {
	ctx, span := eventsTracer.Start(ctx, "events.create")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if req.ClientID != "" && s.clients != nil {
		if _, err := s.clients.FindByID(ctx, req.ClientID); err != nil {
			if errors.Is(err, clients.ErrClientNotFound) {
				return nil, ErrClientRefNotFound
			}
			span.RecordError(err)
			return nil, err
		}
	}
	if req.ServiceID != "" && s.services != nil {
		if _, err := s.services.FindByID(ctx, req.ServiceID); err != nil {
			if errors.Is(err, services.ErrServiceNotFound) {
				return nil, ErrServiceRefNotFound
			}
			span.RecordError(err)
			return nil, err
		}
	}

	event, err := s.repo.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("clisphere.event_id", event.ID))

	s.logger.Info("event created", "id", event.ID, "title", event.Title, "start", event.StartDate)
	return event, nil
}
