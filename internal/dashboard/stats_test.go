package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

func expectAllTimeQueries(mock pgxmock.PgxPoolIface) {
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clients WHERE true`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clients WHERE status NOT IN \('Inativo'\)`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(30)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE true`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(120)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE start_date >= now\(\)`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM services WHERE true`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(9)))
}

func TestStatsRepository_GetStats_AllTime(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	expectAllTimeQueries(mock)

	repo := NewStatsRepositoryWithDB(mock)
	stats, err := repo.GetStats(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.TotalClients != 42 {
		t.Errorf("TotalClients = %d, want 42", stats.TotalClients)
	}
	if stats.ActiveClients != 30 {
		t.Errorf("ActiveClients = %d, want 30", stats.ActiveClients)
	}
	if stats.TotalEvents != 120 {
		t.Errorf("TotalEvents = %d, want 120", stats.TotalEvents)
	}
	if stats.UpcomingEvents != 7 {
		t.Errorf("UpcomingEvents = %d, want 7", stats.UpcomingEvents)
	}
	if stats.TotalServices != 9 {
		t.Errorf("TotalServices = %d, want 9", stats.TotalServices)
	}
	if stats.PeriodStart != "all-time" {
		t.Errorf("PeriodStart = %q, want 'all-time'", stats.PeriodStart)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStatsRepository_GetStats_WithTimeRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clients WHERE true AND created_at >= \$1 AND created_at < \$2`).
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clients WHERE status NOT IN \('Inativo'\) AND created_at >= \$1 AND created_at < \$2`).
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(4)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE true AND created_at >= \$1 AND created_at < \$2`).
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events WHERE start_date >= now\(\)`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM services WHERE true AND created_at >= \$1 AND created_at < \$2`).
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	repo := NewStatsRepositoryWithDB(mock)
	stats, err := repo.GetStats(context.Background(), &start, &end)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.TotalClients != 5 {
		t.Errorf("TotalClients = %d, want 5", stats.TotalClients)
	}
	if stats.PeriodStart != start.Format(time.RFC3339) {
		t.Errorf("PeriodStart = %q, want %q", stats.PeriodStart, start.Format(time.RFC3339))
	}
	if stats.PeriodEnd != end.Format(time.RFC3339) {
		t.Errorf("PeriodEnd = %q, want %q", stats.PeriodEnd, end.Format(time.RFC3339))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStatsHandler_GetStats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	expectAllTimeQueries(mock)

	h := NewHandler(NewStatsRepositoryWithDB(mock), logging.Default())
	w := httptest.NewRecorder()
	h.GetStats(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var stats Stats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.TotalClients != 42 || stats.UpcomingEvents != 7 {
		t.Errorf("unexpected stats payload: %+v", stats)
	}
}

func TestStatsHandler_InvalidPeriod(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	h := NewHandler(NewStatsRepositoryWithDB(mock), logging.Default())
	w := httptest.NewRecorder()
	h.GetStats(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats?startDate=nope", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
