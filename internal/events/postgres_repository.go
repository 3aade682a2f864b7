package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giovanipessoa/next-clisphere/internal/clients"
	"github.com/giovanipessoa/next-clisphere/internal/services"
)

// db is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores events in the relational database. Reads LEFT
// JOIN the referenced client and service so list/detail responses arrive
// fully expanded in one round-trip.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("events: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(database db) *PostgresRepository {
	return &PostgresRepository{db: database}
}

const expandedEventQuery = `
	SELECT
		e.id, e.title, e.description, e.type, e.status, e.start_date, e.end_date,
		e.client_id, e.service_id, e.location, e.notes, e.created_at, e.updated_at,
		c.id, c.name, c.email, c.phone, c.status, c.details, c.professional_info,
		c.created_at, c.updated_at, c.last_contact,
		s.id, s.name, s.description, s.category, s.base_price, s.target_audience,
		s.billing_model, s.standard_duration, s.average_execution_time,
		s.linked_to_client, s.auto_renewal, s.calendar_availability, s.follow_up_days,
		s.created_at, s.updated_at
	FROM events e
	LEFT JOIN clients c ON c.id = e.client_id
	LEFT JOIN services s ON s.id = e.service_id
`

// Create inserts a new row with a freshly generated identifier. The created
// event comes back without expansion; reads expand.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateEventRequest) (*Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusScheduled
	}

	id := uuid.NewString()
	query := `
		INSERT INTO events (id, title, description, type, status, start_date, end_date,
			client_id, service_id, location, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Title,
		nullIfEmpty(req.Description),
		string(req.Type),
		string(status),
		req.StartDate,
		req.EndDate,
		nullIfEmpty(req.ClientID),
		nullIfEmpty(req.ServiceID),
		nullIfEmpty(req.Location),
		nullIfEmpty(req.Notes),
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("events: insert failed: %w", err)
	}

	return &Event{
		ID:          id,
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
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// FindAll returns every event ordered by start date, expanded.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]*Event, error) {
	rows, err := r.db.Query(ctx, expandedEventQuery+` ORDER BY e.start_date`)
	if err != nil {
		return nil, fmt.Errorf("events: select all failed: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

// FindByID fetches one event by identifier, expanded.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	event, err := scanExpandedEvent(r.db.QueryRow(ctx, expandedEventQuery+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("events: select by id failed: %w", err)
	}
	return event, nil
}

// FindByDateRange returns events fully contained in [start, end], both
// bounds inclusive, expanded and ordered by start date.
func (r *PostgresRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*Event, error) {
	rows, err := r.db.Query(ctx,
		expandedEventQuery+` WHERE e.start_date >= $1 AND e.end_date <= $2 ORDER BY e.start_date`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("events: select by date range failed: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

// Update applies the non-nil fields of req and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpdateEventRequest) (*Event, error) {
	set := make([]string, 0, 11)
	args := make([]any, 0, 11)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.Title != nil {
		set = append(set, "title = "+arg(*req.Title))
	}
	if req.Description != nil {
		set = append(set, "description = "+arg(nullIfEmpty(*req.Description)))
	}
	if req.Type != nil {
		set = append(set, "type = "+arg(string(*req.Type)))
	}
	if req.Status != nil {
		set = append(set, "status = "+arg(string(*req.Status)))
	}
	if req.StartDate != nil {
		set = append(set, "start_date = "+arg(*req.StartDate))
	}
	if req.EndDate != nil {
		set = append(set, "end_date = "+arg(*req.EndDate))
	}
	if req.ClientID != nil {
		set = append(set, "client_id = "+arg(nullIfEmpty(*req.ClientID)))
	}
	if req.ServiceID != nil {
		set = append(set, "service_id = "+arg(nullIfEmpty(*req.ServiceID)))
	}
	if req.Location != nil {
		set = append(set, "location = "+arg(nullIfEmpty(*req.Location)))
	}
	if req.Notes != nil {
		set = append(set, "notes = "+arg(nullIfEmpty(*req.Notes)))
	}
	set = append(set, "updated_at = now()")

	query := `UPDATE events SET ` + strings.Join(set, ", ") + ` WHERE id = ` + arg(id) + `
		RETURNING id, title, description, type, status, start_date, end_date,
			client_id, service_id, location, notes, created_at, updated_at`

	event, err := scanEventBase(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("events: update failed: %w", err)
	}
	return event, nil
}

// Delete removes the row outright.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("events: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func collectEvents(rows pgx.Rows) ([]*Event, error) {
	out := make([]*Event, 0)
	for rows.Next() {
		event, err := scanExpandedEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("events: scan row: %w", err)
		}
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("events: iterate rows: %w", err)
	}
	return out, nil
}

// scanEventBase reads the 13 event columns without joined relations.
func scanEventBase(row pgx.Row) (*Event, error) {
	var (
		event       Event
		description *string
		eventType   string
		status      string
		clientID    *string
		serviceID   *string
		location    *string
		notes       *string
	)
	if err := row.Scan(
		&event.ID, &event.Title, &description, &eventType, &status,
		&event.StartDate, &event.EndDate, &clientID, &serviceID,
		&location, &notes, &event.CreatedAt, &event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	event.Description = deref(description)
	event.Type = EventType(eventType)
	event.Status = EventStatus(status)
	event.ClientID = deref(clientID)
	event.ServiceID = deref(serviceID)
	event.Location = deref(location)
	event.Notes = deref(notes)
	return &event, nil
}

// scanExpandedEvent reads the event columns plus the LEFT JOINed client and
// service columns, all nullable on the joined side.
func scanExpandedEvent(row pgx.Row) (*Event, error) {
	var (
		event       Event
		description *string
		eventType   string
		status      string
		clientID    *string
		serviceID   *string
		location    *string
		notes       *string

		cID, cName, cEmail, cPhone, cStatus *string
		cDetails, cProfessionalInfo         []byte
		cCreatedAt, cUpdatedAt, cLastContact *time.Time

		sID, sName, sDescription, sCategory, sAudience, sBilling *string
		sBasePrice                                               *float64
		sStandardDuration, sAvgExecution, sFollowUpDays          *int
		sLinked, sAutoRenewal, sCalendar                         *bool
		sCreatedAt, sUpdatedAt                                   *time.Time
	)
	if err := row.Scan(
		&event.ID, &event.Title, &description, &eventType, &status,
		&event.StartDate, &event.EndDate, &clientID, &serviceID,
		&location, &notes, &event.CreatedAt, &event.UpdatedAt,
		&cID, &cName, &cEmail, &cPhone, &cStatus, &cDetails, &cProfessionalInfo,
		&cCreatedAt, &cUpdatedAt, &cLastContact,
		&sID, &sName, &sDescription, &sCategory, &sBasePrice, &sAudience,
		&sBilling, &sStandardDuration, &sAvgExecution,
		&sLinked, &sAutoRenewal, &sCalendar, &sFollowUpDays,
		&sCreatedAt, &sUpdatedAt,
	); err != nil {
		return nil, err
	}
	event.Description = deref(description)
	event.Type = EventType(eventType)
	event.Status = EventStatus(status)
	event.ClientID = deref(clientID)
	event.ServiceID = deref(serviceID)
	event.Location = deref(location)
	event.Notes = deref(notes)

	if cID != nil {
		client := &clients.Client{
			ID:          *cID,
			Name:        deref(cName),
			Email:       deref(cEmail),
			Phone:       cPhone,
			Status:      clients.ClientStatus(deref(cStatus)),
			LastContact: cLastContact,
		}
		if cCreatedAt != nil {
			client.CreatedAt = *cCreatedAt
		}
		if cUpdatedAt != nil {
			client.UpdatedAt = *cUpdatedAt
		}
		if len(cDetails) > 0 {
			client.Details = &clients.Details{}
			if err := json.Unmarshal(cDetails, client.Details); err != nil {
				return nil, fmt.Errorf("decode client details: %w", err)
			}
		}
		if len(cProfessionalInfo) > 0 {
			client.ProfessionalInfo = &clients.ProfessionalInfo{}
			if err := json.Unmarshal(cProfessionalInfo, client.ProfessionalInfo); err != nil {
				return nil, fmt.Errorf("decode client professional info: %w", err)
			}
		}
		event.Client = client
	}

	if sID != nil {
		svc := &services.Service{
			ID:             *sID,
			Name:           deref(sName),
			Description:    deref(sDescription),
			Category:       services.Category(deref(sCategory)),
			TargetAudience: deref(sAudience),
			BillingModel:   services.BillingModel(deref(sBilling)),
		}
		if sBasePrice != nil {
			svc.BasePrice = *sBasePrice
		}
		if sStandardDuration != nil {
			svc.StandardDuration = *sStandardDuration
		}
		if sAvgExecution != nil {
			svc.AverageExecutionTime = *sAvgExecution
		}
		if sLinked != nil {
			svc.LinkedToClient = *sLinked
		}
		if sAutoRenewal != nil {
			svc.AutoRenewal = *sAutoRenewal
		}
		if sCalendar != nil {
			svc.CalendarAvailability = *sCalendar
		}
		if sFollowUpDays != nil {
			svc.FollowUpDays = *sFollowUpDays
		}
		if sCreatedAt != nil {
			svc.CreatedAt = *sCreatedAt
		}
		if sUpdatedAt != nil {
			svc.UpdatedAt = *sUpdatedAt
		}
		event.Service = svc
	}

	return &event, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
