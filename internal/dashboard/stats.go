package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giovanipessoa/next-clisphere/internal/http/response"
	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

// Stats aggregates the headline numbers shown on the dashboard.
type Stats struct {
	TotalClients   int64  `json:"totalClients"`
	ActiveClients  int64  `json:"activeClients"`
	TotalEvents    int64  `json:"totalEvents"`
	UpcomingEvents int64  `json:"upcomingEvents"`
	TotalServices  int64  `json:"totalServices"`
	PeriodStart    string `json:"periodStart"`
	PeriodEnd      string `json:"periodEnd"`
}

// statsDB defines the database interface needed by StatsRepository.
type statsDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StatsRepository queries dashboard metrics from the database.
type StatsRepository struct {
	db statsDB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	if pool == nil {
		panic("dashboard: pgx pool required for stats")
	}
	return &StatsRepository{db: pool}
}

// NewStatsRepositoryWithDB allows injecting a mock database for testing.
func NewStatsRepositoryWithDB(db statsDB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetStats retrieves aggregated dashboard metrics. Optional start/end times
// filter by creation date; when nil the counts are all-time.
func (r *StatsRepository) GetStats(ctx context.Context, start, end *time.Time) (*Stats, error) {
	stats := &Stats{}

	var timeFilter string
	var args []any
	if start != nil && end != nil {
		timeFilter = " AND created_at >= $1 AND created_at < $2"
		args = append(args, *start, *end)
		stats.PeriodStart = start.Format(time.RFC3339)
		stats.PeriodEnd = end.Format(time.RFC3339)
	} else {
		stats.PeriodStart = "all-time"
		stats.PeriodEnd = "now"
	}

	clientsQuery := `SELECT COUNT(*) FROM clients WHERE true` + timeFilter
	if err := r.db.QueryRow(ctx, clientsQuery, args...).Scan(&stats.TotalClients); err != nil {
		return nil, fmt.Errorf("dashboard stats: count clients: %w", err)
	}

	activeQuery := `SELECT COUNT(*) FROM clients WHERE status NOT IN ('Inativo')` + timeFilter
	if err := r.db.QueryRow(ctx, activeQuery, args...).Scan(&stats.ActiveClients); err != nil {
		return nil, fmt.Errorf("dashboard stats: count active clients: %w", err)
	}

	eventsQuery := `SELECT COUNT(*) FROM events WHERE true` + timeFilter
	if err := r.db.QueryRow(ctx, eventsQuery, args...).Scan(&stats.TotalEvents); err != nil {
		return nil, fmt.Errorf("dashboard stats: count events: %w", err)
	}

	// Upcoming is relative to now regardless of the requested period.
	upcomingQuery := `SELECT COUNT(*) FROM events WHERE start_date >= now() AND status NOT IN ('Cancelado')`
	if err := r.db.QueryRow(ctx, upcomingQuery).Scan(&stats.UpcomingEvents); err != nil {
		return nil, fmt.Errorf("dashboard stats: count upcoming events: %w", err)
	}

	servicesQuery := `SELECT COUNT(*) FROM services WHERE true` + timeFilter
	if err := r.db.QueryRow(ctx, servicesQuery, args...).Scan(&stats.TotalServices); err != nil {
		return nil, fmt.Errorf("dashboard stats: count services: %w", err)
	}

	return stats, nil
}

// Handler provides the HTTP endpoint for dashboard statistics.
type Handler struct {
	repo   *StatsRepository
	logger *logging.Logger
}

// NewHandler creates a new dashboard HTTP handler.
func NewHandler(repo *StatsRepository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// GetStats returns aggregated dashboard metrics.
// GET /api/dashboard/stats
// Query params:
//   - startDate: RFC3339 timestamp for period start (optional)
//   - endDate: RFC3339 timestamp for period end (optional)
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	var start, end *time.Time
	if s := r.URL.Query().Get("startDate"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			response.BadRequest(w, "invalid startDate, use RFC3339 format")
			return
		}
		start = &t
	}
	if e := r.URL.Query().Get("endDate"); e != "" {
		t, err := time.Parse(time.RFC3339, e)
		if err != nil {
			response.BadRequest(w, "invalid endDate, use RFC3339 format")
			return
		}
		end = &t
	}

	stats, err := h.repo.GetStats(r.Context(), start, end)
	if err != nil {
		h.logger.Error("failed to load dashboard stats", "error", err)
		response.InternalError(w, "failed to load dashboard stats")
		return
	}

	response.WriteJSON(w, http.StatusOK, stats)
}
