package events

import (
	"strings"
	"time"

	"github.com/giovanipessoa/next-clisphere/internal/clients"
	"github.com/giovanipessoa/next-clisphere/internal/services"
)

// EventType classifies a calendar entry.
type EventType string

const (
	TypeAppointment EventType = "Consulta"
	TypeProcedure   EventType = "Procedimento"
	TypeFollowUp    EventType = "Acompanhamento"
	TypeMeeting     EventType = "Reunião"
	TypeOther       EventType = "Outro"
)

// EventStatus tracks the lifecycle of a scheduled event.
type EventStatus string

const (
	StatusScheduled   EventStatus = "Agendado"
	StatusConfirmed   EventStatus = "Confirmado"
	StatusCompleted   EventStatus = "Concluído"
	StatusCancelled   EventStatus = "Cancelado"
	StatusRescheduled EventStatus = "Reagendado"
)

// Event is a calendar entry. ClientID and ServiceID are weak references kept
// as plain identifiers; list/find operations expand them into Client/Service
// when the referenced rows exist.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Type        EventType   `json:"type"`
	Status      EventStatus `json:"status"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	ClientID    string      `json:"clientId,omitempty"`
	ServiceID   string      `json:"serviceId,omitempty"`
	Location    string      `json:"location,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`

	Client  *clients.Client   `json:"client,omitempty"`
	Service *services.Service `json:"service,omitempty"`
}

// CreateEventRequest represents the request body for creating an event.
// Status defaults to Agendado when omitted.
type CreateEventRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Type        EventType   `json:"type"`
	Status      EventStatus `json:"status,omitempty"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	ClientID    string      `json:"clientId,omitempty"`
	ServiceID   string      `json:"serviceId,omitempty"`
	Location    string      `json:"location,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// Validate checks required fields and the date-order invariant before any
// store write happens.
func (r *CreateEventRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(string(r.Type)) == "" {
		return ErrTypeRequired
	}
	if r.StartDate.IsZero() {
		return ErrStartDateRequired
	}
	if r.EndDate.IsZero() {
		return ErrEndDateRequired
	}
	if r.StartDate.After(r.EndDate) {
		return ErrEndBeforeStart
	}
	return nil
}

// UpdateEventRequest carries a partial update; nil fields are left untouched.
type UpdateEventRequest struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Type        *EventType   `json:"type,omitempty"`
	Status      *EventStatus `json:"status,omitempty"`
	StartDate   *time.Time   `json:"startDate,omitempty"`
	EndDate     *time.Time   `json:"endDate,omitempty"`
	ClientID    *string      `json:"clientId,omitempty"`
	ServiceID   *string      `json:"serviceId,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
}
