package services

import (
	"strings"
	"time"
)

// Category groups billable services the way the dashboard filters them.
type Category string

const (
	CategoryMedicalAppointments Category = "Consultas médicas"
	CategoryClinicalExams       Category = "Exames clínicos"
	CategoryAestheticProcedures Category = "Procedimentos estéticos"
	CategoryAestheticTreatments Category = "Tratamentos estéticos"
	CategoryBusinessConsulting  Category = "Consultoria empresarial"
	CategoryFinancialConsulting Category = "Consultoria financeira"
	CategoryCosmeticsSales      Category = "Venda de cosméticos"
	CategoryPerfumery           Category = "Perfumaria"
	CategoryPetServices         Category = "Serviços para pets"
	CategoryTravelPackages      Category = "Pacotes de viagem"
	CategoryCustomItineraries   Category = "Roteiros personalizados"
	CategoryOther               Category = "Outros"
)

// BillingModel defines how a service is charged.
type BillingModel string

const (
	BillingFixed               BillingModel = "Fixo"
	BillingHourly              BillingModel = "Por hora"
	BillingMonthlySubscription BillingModel = "Assinatura mensal"
	BillingPerSession          BillingModel = "Por sessão"
	BillingPerProcedure        BillingModel = "Por procedimento"
	BillingPerPackage          BillingModel = "Por pacote"
)

// Service is a billable service offered by the clinic. Durations are minutes.
type Service struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Description          string       `json:"description,omitempty"`
	Category             Category     `json:"category"`
	BasePrice            float64      `json:"basePrice"`
	TargetAudience       string       `json:"targetAudience,omitempty"`
	BillingModel         BillingModel `json:"billingModel"`
	StandardDuration     int          `json:"standardDuration"`
	AverageExecutionTime int          `json:"averageExecutionTime"`
	LinkedToClient       bool         `json:"linkedToClient"`
	AutoRenewal          bool         `json:"autoRenewal"`
	CalendarAvailability bool         `json:"calendarAvailability"`
	FollowUpDays         int          `json:"followUpDays"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

// CreateServiceRequest represents the request body for creating a service.
type CreateServiceRequest struct {
	Name                 string       `json:"name"`
	Description          string       `json:"description,omitempty"`
	Category             Category     `json:"category"`
	BasePrice            float64      `json:"basePrice"`
	TargetAudience       string       `json:"targetAudience,omitempty"`
	BillingModel         BillingModel `json:"billingModel"`
	StandardDuration     int          `json:"standardDuration"`
	AverageExecutionTime int          `json:"averageExecutionTime"`
	LinkedToClient       bool         `json:"linkedToClient"`
	AutoRenewal          bool         `json:"autoRenewal"`
	CalendarAvailability bool         `json:"calendarAvailability"`
	FollowUpDays         int          `json:"followUpDays"`
}

// Validate checks required fields before any store write happens.
func (r *CreateServiceRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(string(r.Category)) == "" {
		return ErrCategoryRequired
	}
	if strings.TrimSpace(string(r.BillingModel)) == "" {
		return ErrBillingModelRequired
	}
	if r.BasePrice < 0 {
		return ErrNegativePrice
	}
	return nil
}

// UpdateServiceRequest carries a partial update; nil fields are left untouched.
type UpdateServiceRequest struct {
	Name                 *string       `json:"name,omitempty"`
	Description          *string       `json:"description,omitempty"`
	Category             *Category     `json:"category,omitempty"`
	BasePrice            *float64      `json:"basePrice,omitempty"`
	TargetAudience       *string       `json:"targetAudience,omitempty"`
	BillingModel         *BillingModel `json:"billingModel,omitempty"`
	StandardDuration     *int          `json:"standardDuration,omitempty"`
	AverageExecutionTime *int          `json:"averageExecutionTime,omitempty"`
	LinkedToClient       *bool         `json:"linkedToClient,omitempty"`
	AutoRenewal          *bool         `json:"autoRenewal,omitempty"`
	CalendarAvailability *bool         `json:"calendarAvailability,omitempty"`
	FollowUpDays         *int          `json:"followUpDays,omitempty"`
}
