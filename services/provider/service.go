package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	providerRepo "caresched/database/repository/provider"
	"caresched/models"
	"caresched/services/availability"
	"caresched/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenTTL = 72 * time.Hour

// DefaultProviderService is the production implementation of ProviderService.
type DefaultProviderService struct {
	Repo   providerRepo.ProviderRepository
	Cache  *redis.Client
	Logger *zap.Logger
}

func validateRegistration(p *models.Provider) error {
	if strings.TrimSpace(p.Profile.Name) == "" {
		return utils.NewValidationError("name is required")
	}
	if !strings.Contains(p.Profile.Email, "@") {
		return utils.NewValidationError("a valid email is required")
	}
	if len(p.Security.Password) < 8 {
		return utils.NewValidationError("password must be at least 8 characters")
	}
	return nil
}

// Register creates a provider account. A missing schedule timezone defaults
// to UTC with no recurring rules, so a fresh provider simply has no slots.
func (s *DefaultProviderService) Register(p *models.Provider) (*models.Provider, error) {
	if err := validateRegistration(p); err != nil {
		return nil, err
	}
	if p.ScheduleConfig.Timezone == "" {
		p.ScheduleConfig.Timezone = "UTC"
	}
	if p.ScheduleConfig.MaxDaysAhead == 0 {
		p.ScheduleConfig.MaxDaysAhead = 30
	}
	if err := availability.ValidateScheduleConfig(p.ScheduleConfig); err != nil {
		return nil, err
	}

	if existing, err := s.Repo.GetByEmail(p.Profile.Email); err == nil && existing != nil {
		return nil, utils.NewConflictError("a provider with email %s already exists", p.Profile.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Security.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	p.ID = uuid.New().String()
	p.Security.Password = ""
	p.Security.PasswordHash = string(hash)

	token, err := utils.GenerateToken(p.ID, "provider", authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	p.Security.Token = token
	p.Security.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	if s.Logger != nil {
		s.Logger.Info("provider registered", zap.String("providerID", p.ID))
	}
	return p, nil
}

// Authenticate verifies credentials and rotates the auth token.
func (s *DefaultProviderService) Authenticate(email, password string) (*models.Provider, error) {
	p, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, utils.NewUnauthorizedError("invalid email or password")
		}
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(p.Security.PasswordHash), []byte(password)) != nil {
		return nil, utils.NewUnauthorizedError("invalid email or password")
	}

	token, err := utils.GenerateToken(p.ID, "provider", authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	if err := s.Repo.UpdateTokenHash(p.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to store auth token: %w", err)
	}
	p.Security = models.Security{Token: token}
	return p, nil
}

// GetByID retrieves a provider with credentials stripped.
func (s *DefaultProviderService) GetByID(id string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("provider %s not found", id)
		}
		return nil, fmt.Errorf("failed to load provider %s: %w", id, err)
	}
	p.Security = models.Security{}
	return p, nil
}

// UpdateProfile patches the public profile fields.
func (s *DefaultProviderService) UpdateProfile(id string, profile models.ProviderProfile) (*models.Provider, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("provider %s not found", id)
		}
		return nil, fmt.Errorf("failed to load provider %s: %w", id, err)
	}

	if profile.Name != "" {
		p.Profile.Name = profile.Name
	}
	if profile.Specialty != "" {
		p.Profile.Specialty = profile.Specialty
	}
	if profile.Phone != "" {
		p.Profile.Phone = profile.Phone
	}

	if err := s.Repo.Update(p); err != nil {
		return nil, fmt.Errorf("failed to update provider %s: %w", id, err)
	}
	p.Security = models.Security{}
	return p, nil
}

// UpdateSchedule validates and replaces the schedule configuration wholesale,
// then invalidates cached availability.
func (s *DefaultProviderService) UpdateSchedule(id string, cfg models.ScheduleConfig) error {
	if err := availability.ValidateScheduleConfig(cfg); err != nil {
		return err
	}
	if err := s.Repo.UpdateScheduleConfig(id, cfg); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return utils.NewNotFoundError("provider %s not found", id)
		}
		return fmt.Errorf("failed to update schedule for provider %s: %w", id, err)
	}

	availability.BumpProviderCacheVersion(context.Background(), s.Cache, id)
	if s.Logger != nil {
		s.Logger.Info("schedule updated", zap.String("providerID", id))
	}
	return nil
}

// Delete removes the provider account and orphans its cached availability.
func (s *DefaultProviderService) Delete(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return utils.NewNotFoundError("provider %s not found", id)
		}
		return fmt.Errorf("failed to delete provider %s: %w", id, err)
	}

	availability.BumpProviderCacheVersion(context.Background(), s.Cache, id)
	return nil
}
