package clients

import (
	"strings"
	"time"
)

// ClientStatus tracks where a client sits in the relationship lifecycle.
// Values are the Portuguese labels the dashboard renders and stores.
type ClientStatus string

const (
	StatusNewLead     ClientStatus = "Novo lead"
	StatusInTreatment ClientStatus = "Em tratamento"
	StatusLoyal       ClientStatus = "Fiel"
	StatusActive      ClientStatus = "Ativo"
	StatusInactive    ClientStatus = "Inativo"
)

// LeadSource records how a client first reached the clinic.
type LeadSource string

const (
	LeadSourceInstagram LeadSource = "Instagram"
	LeadSourceReferral  LeadSource = "Indicação"
	LeadSourceEvent     LeadSource = "Evento"
	LeadSourceWebsite   LeadSource = "Site"
	LeadSourceOther     LeadSource = "Outro"
)

// Details holds the optional address block, stored as an embedded document.
type Details struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// ProfessionalInfo holds the optional company block, stored as an embedded document.
type ProfessionalInfo struct {
	Company    string     `json:"company,omitempty"`
	JobTitle   string     `json:"jobTitle,omitempty"`
	LeadSource LeadSource `json:"leadSource,omitempty"`
}

// Client is a clinic client record. Email is the unique business key,
// enforced by a unique index on the clients table.
type Client struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Phone            *string           `json:"phone"`
	Status           ClientStatus      `json:"status"`
	Details          *Details          `json:"details,omitempty"`
	ProfessionalInfo *ProfessionalInfo `json:"professionalInfo,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	LastContact      *time.Time        `json:"lastContact,omitempty"`
}

// CreateClientRequest represents the request body for creating a client.
type CreateClientRequest struct {
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	Status           ClientStatus      `json:"status"`
	Details          *Details          `json:"details,omitempty"`
	ProfessionalInfo *ProfessionalInfo `json:"professionalInfo,omitempty"`
}

// Validate checks the required fields before any store write happens.
func (r *CreateClientRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrEmailRequired
	}
	if strings.TrimSpace(r.Phone) == "" {
		return ErrPhoneRequired
	}
	if strings.TrimSpace(string(r.Status)) == "" {
		return ErrStatusRequired
	}
	return nil
}

// UpdateClientRequest carries a partial update; nil fields are left untouched.
type UpdateClientRequest struct {
	Name             *string           `json:"name,omitempty"`
	Email            *string           `json:"email,omitempty"`
	Phone            *string           `json:"phone,omitempty"`
	Status           *ClientStatus     `json:"status,omitempty"`
	Details          *Details          `json:"details,omitempty"`
	ProfessionalInfo *ProfessionalInfo `json:"professionalInfo,omitempty"`
	LastContact      *time.Time        `json:"lastContact,omitempty"`
}
