package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
)

func TestPostgresCreateEvent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO events`).
		WithArgs(pgxmock.AnyArg(), "Consulta inicial", pgxmock.AnyArg(), "Consulta", "Agendado",
			start, end, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	repo := NewPostgresRepositoryWithDB(mock)
	event, err := repo.Create(context.Background(), &CreateEventRequest{
		Title:     "Consulta inicial",
		Type:      TypeAppointment,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if event.ID == "" {
		t.Error("expected generated id")
	}
	if event.Status != StatusScheduled {
		t.Errorf("expected default status %q, got %q", StatusScheduled, event.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreateEvent_EndBeforeStartSkipsStore(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepositoryWithDB(mock)
	_, err = repo.Create(context.Background(), &CreateEventRequest{
		Title:     "Consulta",
		Type:      TypeAppointment,
		StartDate: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
	// No expectations were set; any query would have failed the test.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected no store round-trip: %v", err)
	}
}

// expandedEventRows mirrors the column order of the LEFT JOIN read query.
func expandedEventRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"e.id", "e.title", "e.description", "e.type", "e.status", "e.start_date", "e.end_date",
		"e.client_id", "e.service_id", "e.location", "e.notes", "e.created_at", "e.updated_at",
		"c.id", "c.name", "c.email", "c.phone", "c.status", "c.details", "c.professional_info",
		"c.created_at", "c.updated_at", "c.last_contact",
		"s.id", "s.name", "s.description", "s.category", "s.base_price", "s.target_audience",
		"s.billing_model", "s.standard_duration", "s.average_execution_time",
		"s.linked_to_client", "s.auto_renewal", "s.calendar_availability", "s.follow_up_days",
		"s.created_at", "s.updated_at",
	})
}

func TestPostgresFindByID_ExpandsJoinedRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	start := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	clientID := "client-1"
	serviceID := "service-1"
	name := "Alice"
	email := "alice@x.com"
	phone := "+1-555-0100"
	cStatus := "Ativo"
	svcName := "Limpeza de pele"
	svcDesc := ""
	category := "Tratamentos estéticos"
	price := 180.0
	audience := ""
	billing := "Por sessão"
	duration := 60
	avg := 50
	followUp := 0
	flag := true

	mock.ExpectQuery(`SELECT\s+e\.id, .+ FROM events e\s+LEFT JOIN clients c ON c\.id = e\.client_id\s+LEFT JOIN services s ON s\.id = e\.service_id\s+WHERE e\.id = \$1`).
		WithArgs("event-1").
		WillReturnRows(expandedEventRows().AddRow(
			"event-1", "Sessão", nil, "Procedimento", "Confirmado", start, start.Add(time.Hour),
			&clientID, &serviceID, nil, nil, now, now,
			&clientID, &name, &email, &phone, &cStatus, []byte(`{"city":"Recife"}`), []byte(nil),
			&now, &now, nil,
			&serviceID, &svcName, &svcDesc, &category, &price, &audience,
			&billing, &duration, &avg,
			&flag, &flag, &flag, &followUp,
			&now, &now,
		))

	repo := NewPostgresRepositoryWithDB(mock)
	event, err := repo.FindByID(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if event.Client == nil || event.Client.Name != "Alice" {
		t.Errorf("expected expanded client, got %+v", event.Client)
	}
	if event.Client != nil && (event.Client.Details == nil || event.Client.Details.City != "Recife") {
		t.Errorf("expected decoded client details, got %+v", event.Client.Details)
	}
	if event.Service == nil || event.Service.BasePrice != 180.0 {
		t.Errorf("expected expanded service, got %+v", event.Service)
	}
}

func TestPostgresFindByID_WithoutReferences(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	start := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	mock.ExpectQuery(`FROM events e`).
		WithArgs("event-1").
		WillReturnRows(expandedEventRows().AddRow(
			"event-1", "Reunião interna", nil, "Reunião", "Agendado", start, start.Add(time.Hour),
			nil, nil, nil, nil, now, now,
			nil, nil, nil, nil, nil, []byte(nil), []byte(nil), nil, nil, nil,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		))

	repo := NewPostgresRepositoryWithDB(mock)
	event, err := repo.FindByID(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if event.Client != nil || event.Service != nil {
		t.Errorf("expected no expansion, got client=%+v service=%+v", event.Client, event.Service)
	}
}

func TestPostgresFindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM events e`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := NewPostgresRepositoryWithDB(mock)
	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestPostgresFindByDateRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	rangeStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	now := time.Now().UTC()
	mock.ExpectQuery(`WHERE e\.start_date >= \$1 AND e\.end_date <= \$2 ORDER BY e\.start_date`).
		WithArgs(rangeStart, rangeEnd).
		WillReturnRows(expandedEventRows().AddRow(
			"event-1", "Consulta", nil, "Consulta", "Agendado", rangeStart, rangeStart.Add(time.Hour),
			nil, nil, nil, nil, now, now,
			nil, nil, nil, nil, nil, []byte(nil), []byte(nil), nil, nil, nil,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		))

	repo := NewPostgresRepositoryWithDB(mock)
	list, err := repo.FindByDateRange(context.Background(), rangeStart, rangeEnd)
	if err != nil {
		t.Fatalf("FindByDateRange failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != "event-1" {
		t.Fatalf("expected one event, got %+v", list)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateEvent_BuildsPartialSet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	start := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	mock.ExpectQuery(`UPDATE events SET status = \$1, updated_at = now\(\) WHERE id = \$2`).
		WithArgs("Cancelado", "event-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "title", "description", "type", "status", "start_date", "end_date",
			"client_id", "service_id", "location", "notes", "created_at", "updated_at",
		}).AddRow(
			"event-1", "Consulta", nil, "Consulta", "Cancelado", start, start.Add(time.Hour),
			nil, nil, nil, nil, now, now,
		))

	repo := NewPostgresRepositoryWithDB(mock)
	status := StatusCancelled
	event, err := repo.Update(context.Background(), "event-1", &UpdateEventRequest{Status: &status})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if event.Status != StatusCancelled {
		t.Errorf("expected updated status, got %q", event.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDeleteEvent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
		WithArgs("event-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewPostgresRepositoryWithDB(mock)
	if err := repo.Delete(context.Background(), "event-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
