package providerRepo

import (
	"errors"

	"caresched/models"
)

// ErrNotFound is returned when no provider matches the lookup.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetByEmail retrieves a provider by its email address.
	GetByEmail(email string) (*models.Provider, error)
	// GetByTokenHash retrieves a provider whose tokenHash matches.
	GetByTokenHash(tokenHash string) (*models.Provider, error)
	// Create inserts a new provider record.
	Create(provider *models.Provider) error
	// Update modifies an existing provider record.
	Update(provider *models.Provider) error
	// Delete removes a provider record by its ID.
	Delete(id string) error
	// UpdateScheduleConfig replaces the provider's schedule configuration
	// wholesale.
	UpdateScheduleConfig(id string, cfg models.ScheduleConfig) error
	// UpdateTokenHash stores the hash of the provider's current auth token.
	UpdateTokenHash(id, tokenHash string) error
}
