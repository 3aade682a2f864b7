package clients

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

var clientsTracer = otel.Tracer("clisphere.internal.clients")

// Service is the create-client use case: required-field validation followed
// by a single repository call. Duplicate detection is the storage unique
// index, so there is no separate lookup round-trip to race against.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

// NewService constructs the client use case.
func NewService(repo Repository, logger *logging.Logger) *Service {
	if repo == nil {
		panic("clients: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Create validates the candidate client and persists it. Validation failures
// carry the ErrValidation tag; duplicate emails surface as ErrDuplicateEmail.
func (s *Service) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	ctx, span := clientsTracer.Start(ctx, "clients.create")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	client, err := s.repo.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("clisphere.client_id", client.ID))

	s.logger.Info("client created", "id", client.ID, "name", client.Name)
	return client, nil
}
