package provider

import (
	"caresched/models"
)

// ProviderService manages provider accounts and their schedule
// configurations.
type ProviderService interface {
	// Register creates a provider account, hashing its password and issuing
	// an auth token.
	Register(provider *models.Provider) (*models.Provider, error)
	// Authenticate verifies credentials and issues a fresh auth token.
	Authenticate(email, password string) (*models.Provider, error)
	// GetByID retrieves a provider, credentials stripped.
	GetByID(id string) (*models.Provider, error)
	// UpdateProfile patches the public profile fields.
	UpdateProfile(id string, profile models.ProviderProfile) (*models.Provider, error)
	// UpdateSchedule validates and replaces the schedule configuration
	// wholesale.
	UpdateSchedule(id string, cfg models.ScheduleConfig) error
	// Delete removes the provider account.
	Delete(id string) error
}
