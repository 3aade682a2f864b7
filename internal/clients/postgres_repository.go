package clients

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
)

const uniqueViolation = "23505"

// db is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores clients in the relational database. Nested
// details/professionalInfo blocks live in jsonb columns, null when absent.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("clients: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(database db) *PostgresRepository {
	return &PostgresRepository{db: database}
}

const clientColumns = `id, name, email, phone, status, details, professional_info, created_at, updated_at, last_contact`

// Create inserts a new row with a freshly generated identifier. A unique
// index on email turns concurrent duplicate submissions into a single
// constraint violation, reported as ErrDuplicateEmail.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	details, err := marshalDoc(req.Details)
	if err != nil {
		return nil, fmt.Errorf("clients: encode details: %w", err)
	}
	professionalInfo, err := marshalDoc(req.ProfessionalInfo)
	if err != nil {
		return nil, fmt.Errorf("clients: encode professional info: %w", err)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO clients (id, name, email, phone, status, details, professional_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Phone,
		string(req.Status),
		details,
		professionalInfo,
	).Scan(&createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("clients: insert failed: %w", err)
	}

	phone := req.Phone
	return &Client{
		ID:               id,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            &phone,
		Status:           req.Status,
		Details:          req.Details,
		ProfessionalInfo: req.ProfessionalInfo,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}

// FindAll returns every client, newest first.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("clients: select all failed: %w", err)
	}
	defer rows.Close()

	out := make([]*Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("clients: scan row: %w", err)
		}
		out = append(out, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("clients: iterate rows: %w", err)
	}
	return out, nil
}

// FindByID fetches one client by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := scanClient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("clients: select by id failed: %w", err)
	}
	return client, nil
}

// FindByEmail fetches one client by its unique email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE lower(email) = lower($1)`
	client, err := scanClient(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("clients: select by email failed: %w", err)
	}
	return client, nil
}

// Update applies the non-nil fields of req and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpdateClientRequest) (*Client, error) {
	set := make([]string, 0, 8)
	args := make([]any, 0, 8)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.Name != nil {
		set = append(set, "name = "+arg(*req.Name))
	}
	if req.Email != nil {
		set = append(set, "email = "+arg(*req.Email))
	}
	if req.Phone != nil {
		set = append(set, "phone = "+arg(*req.Phone))
	}
	if req.Status != nil {
		set = append(set, "status = "+arg(string(*req.Status)))
	}
	if req.Details != nil {
		doc, err := marshalDoc(req.Details)
		if err != nil {
			return nil, fmt.Errorf("clients: encode details: %w", err)
		}
		set = append(set, "details = "+arg(doc))
	}
	if req.ProfessionalInfo != nil {
		doc, err := marshalDoc(req.ProfessionalInfo)
		if err != nil {
			return nil, fmt.Errorf("clients: encode professional info: %w", err)
		}
		set = append(set, "professional_info = "+arg(doc))
	}
	if req.LastContact != nil {
		set = append(set, "last_contact = "+arg(*req.LastContact))
	}
	set = append(set, "updated_at = now()")

	query := `UPDATE clients SET ` + strings.Join(set, ", ") +
		` WHERE id = ` + arg(id) + ` RETURNING ` + clientColumns

	client, err := scanClient(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("clients: update failed: %w", err)
	}
	return client, nil
}

// Delete removes the row outright; clients are never soft-deleted.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("clients: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*Client, error) {
	var (
		client           Client
		status           string
		details          []byte
		professionalInfo []byte
	)
	if err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&status,
		&details,
		&professionalInfo,
		&client.CreatedAt,
		&client.UpdatedAt,
		&client.LastContact,
	); err != nil {
		return nil, err
	}
	client.Status = ClientStatus(status)

	if len(details) > 0 {
		client.Details = &Details{}
		if err := json.Unmarshal(details, client.Details); err != nil {
			return nil, fmt.Errorf("decode details: %w", err)
		}
	}
	if len(professionalInfo) > 0 {
		client.ProfessionalInfo = &ProfessionalInfo{}
		if err := json.Unmarshal(professionalInfo, client.ProfessionalInfo); err != nil {
			return nil, fmt.Errorf("decode professional info: %w", err)
		}
	}
	return &client, nil
}

// marshalDoc encodes an optional nested block as jsonb, preserving NULL for
// absent blocks.
func marshalDoc(v any) ([]byte, error) {
	switch doc := v.(type) {
	case *Details:
		if doc == nil {
			return nil, nil
		}
	case *ProfessionalInfo:
		if doc == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
