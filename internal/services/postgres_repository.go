package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// db is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores billable services in the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("services: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(database db) *PostgresRepository {
	return &PostgresRepository{db: database}
}

const serviceColumns = `id, name, description, category, base_price, target_audience,
	billing_model, standard_duration, average_execution_time, linked_to_client,
	auto_renewal, calendar_availability, follow_up_days, created_at, updated_at`

// Create inserts a new row with a freshly generated identifier.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	query := `
		INSERT INTO services (
			id, name, description, category, base_price, target_audience,
			billing_model, standard_duration, average_execution_time,
			linked_to_client, auto_renewal, calendar_availability, follow_up_days
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Name,
		req.Description,
		string(req.Category),
		req.BasePrice,
		req.TargetAudience,
		string(req.BillingModel),
		req.StandardDuration,
		req.AverageExecutionTime,
		req.LinkedToClient,
		req.AutoRenewal,
		req.CalendarAvailability,
		req.FollowUpDays,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("services: insert failed: %w", err)
	}

	return &Service{
		ID:                   id,
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
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}, nil
}

// FindAll returns every service ordered by name.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]*Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("services: select all failed: %w", err)
	}
	defer rows.Close()

	out := make([]*Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("services: scan row: %w", err)
		}
		out = append(out, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("services: iterate rows: %w", err)
	}
	return out, nil
}

// FindByID fetches one service by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	svc, err := scanService(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("services: select by id failed: %w", err)
	}
	return svc, nil
}

// Update applies the non-nil fields of req and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpdateServiceRequest) (*Service, error) {
	set := make([]string, 0, 13)
	args := make([]any, 0, 13)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.Name != nil {
		set = append(set, "name = "+arg(*req.Name))
	}
	if req.Description != nil {
		set = append(set, "description = "+arg(*req.Description))
	}
	if req.Category != nil {
		set = append(set, "category = "+arg(string(*req.Category)))
	}
	if req.BasePrice != nil {
		set = append(set, "base_price = "+arg(*req.BasePrice))
	}
	if req.TargetAudience != nil {
		set = append(set, "target_audience = "+arg(*req.TargetAudience))
	}
	if req.BillingModel != nil {
		set = append(set, "billing_model = "+arg(string(*req.BillingModel)))
	}
	if req.StandardDuration != nil {
		set = append(set, "standard_duration = "+arg(*req.StandardDuration))
	}
	if req.AverageExecutionTime != nil {
		set = append(set, "average_execution_time = "+arg(*req.AverageExecutionTime))
	}
	if req.LinkedToClient != nil {
		set = append(set, "linked_to_client = "+arg(*req.LinkedToClient))
	}
	if req.AutoRenewal != nil {
		set = append(set, "auto_renewal = "+arg(*req.AutoRenewal))
	}
	if req.CalendarAvailability != nil {
		set = append(set, "calendar_availability = "+arg(*req.CalendarAvailability))
	}
	if req.FollowUpDays != nil {
		set = append(set, "follow_up_days = "+arg(*req.FollowUpDays))
	}
	set = append(set, "updated_at = now()")

	query := `UPDATE services SET ` + strings.Join(set, ", ") +
		` WHERE id = ` + arg(id) + ` RETURNING ` + serviceColumns

	svc, err := scanService(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("services: update failed: %w", err)
	}
	return svc, nil
}

// Delete removes the row outright.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("services: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func scanService(row pgx.Row) (*Service, error) {
	var (
		svc          Service
		category     string
		billingModel string
	)
	if err := row.Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&category,
		&svc.BasePrice,
		&svc.TargetAudience,
		&billingModel,
		&svc.StandardDuration,
		&svc.AverageExecutionTime,
		&svc.LinkedToClient,
		&svc.AutoRenewal,
		&svc.CalendarAvailability,
		&svc.FollowUpDays,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	svc.Category = Category(category)
	svc.BillingModel = BillingModel(billingModel)
	return &svc, nil
}
