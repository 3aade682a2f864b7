// Package workspace stores per-workspace dashboard settings.
package workspace

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DayHours represents the opening hours for a single day.
// Nil means the clinic is closed that day.
type DayHours struct {
	Open  string `json:"open"`  // "09:00" in 24-hour format
	Close string `json:"close"` // "18:00" in 24-hour format
}

// BusinessHours maps day names to their hours.
type BusinessHours struct {
	Monday    *DayHours `json:"monday,omitempty"`
	Tuesday   *DayHours `json:"tuesday,omitempty"`
	Wednesday *DayHours `json:"wednesday,omitempty"`
	Thursday  *DayHours `json:"thursday,omitempty"`
	Friday    *DayHours `json:"friday,omitempty"`
	Saturday  *DayHours `json:"saturday,omitempty"`
	Sunday    *DayHours `json:"sunday,omitempty"`
}

// NotificationPrefs holds notification preferences for the workspace.
type NotificationPrefs struct {
	EmailEnabled    bool     `json:"emailEnabled"`
	EmailRecipients []string `json:"emailRecipients,omitempty"`

	// What to notify about
	NotifyOnNewClient     bool `json:"notifyOnNewClient"`
	NotifyOnEventCreated  bool `json:"notifyOnEventCreated"`
	NotifyOnEventUpcoming bool `json:"notifyOnEventUpcoming"`
}

// Settings holds workspace-level configuration shown on the settings page.
type Settings struct {
	ClinicName    string            `json:"clinicName"`
	Email         string            `json:"email,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	Address       string            `json:"address,omitempty"`
	Timezone      string            `json:"timezone"` // e.g., "America/Recife"
	Language      string            `json:"language"` // e.g., "pt-BR"
	BusinessHours BusinessHours     `json:"businessHours"`
	Notifications NotificationPrefs `json:"notifications"`
}

// DefaultSettings returns the settings a fresh workspace starts with.
func DefaultSettings() *Settings {
	return &Settings{
		ClinicName: "Minha clínica",
		Timezone:   "America/Recife",
		Language:   "pt-BR",
		BusinessHours: BusinessHours{
			Monday:    &DayHours{Open: "08:00", Close: "18:00"},
			Tuesday:   &DayHours{Open: "08:00", Close: "18:00"},
			Wednesday: &DayHours{Open: "08:00", Close: "18:00"},
			Thursday:  &DayHours{Open: "08:00", Close: "18:00"},
			Friday:    &DayHours{Open: "08:00", Close: "17:00"},
			Saturday:  nil, // Closed
			Sunday:    nil, // Closed
		},
		Notifications: NotificationPrefs{
			EmailEnabled:          false,
			NotifyOnNewClient:     true,
			NotifyOnEventCreated:  false,
			NotifyOnEventUpcoming: true,
		},
	}
}

const settingsKey = "clisphere:workspace:settings"

// Store persists workspace settings in Redis.
type Store struct {
	redis *redis.Client
}

// NewStore creates a new workspace settings store.
func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

// Get retrieves the settings, returning defaults if nothing was saved yet.
func (s *Store) Get(ctx context.Context) (*Settings, error) {
	data, err := s.redis.Get(ctx, settingsKey).Bytes()
	if err == redis.Nil {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("workspace: get settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("workspace: unmarshal settings: %w", err)
	}

	return &settings, nil
}

// Set saves the settings with no expiration.
func (s *Store) Set(ctx context.Context, settings *Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("workspace: marshal settings: %w", err)
	}

	if err := s.redis.Set(ctx, settingsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("workspace: set settings: %w", err)
	}

	return nil
}
