package patient

import (
	"errors"
	"fmt"
	"strings"
	"time"

	patientRepo "caresched/database/repository/patient"
	"caresched/models"
	"caresched/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenTTL = 72 * time.Hour

// PatientService manages patient accounts.
type PatientService interface {
	Register(patient *models.Patient) (*models.Patient, error)
	Authenticate(email, password string) (*models.Patient, error)
	GetByID(id string) (*models.Patient, error)
}

// DefaultPatientService is the production implementation of PatientService.
type DefaultPatientService struct {
	Repo   patientRepo.PatientRepository
	Logger *zap.Logger
}

// Register creates a patient account, hashing its password and issuing an
// auth token.
func (s *DefaultPatientService) Register(p *models.Patient) (*models.Patient, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, utils.NewValidationError("name is required")
	}
	if !strings.Contains(p.Email, "@") {
		return nil, utils.NewValidationError("a valid email is required")
	}
	if len(p.Security.Password) < 8 {
		return nil, utils.NewValidationError("password must be at least 8 characters")
	}

	if existing, err := s.Repo.GetByEmail(p.Email); err == nil && existing != nil {
		return nil, utils.NewConflictError("a patient with email %s already exists", p.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Security.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	p.ID = uuid.New().String()
	p.Security.Password = ""
	p.Security.PasswordHash = string(hash)

	token, err := utils.GenerateToken(p.ID, "patient", authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	p.Security.Token = token
	p.Security.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	if s.Logger != nil {
		s.Logger.Info("patient registered", zap.String("patientID", p.ID))
	}
	return p, nil
}

// Authenticate verifies credentials and rotates the auth token.
func (s *DefaultPatientService) Authenticate(email, password string) (*models.Patient, error) {
	p, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return nil, utils.NewUnauthorizedError("invalid email or password")
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(p.Security.PasswordHash), []byte(password)) != nil {
		return nil, utils.NewUnauthorizedError("invalid email or password")
	}

	token, err := utils.GenerateToken(p.ID, "patient", authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	if err := s.Repo.UpdateTokenHash(p.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to store auth token: %w", err)
	}
	p.Security = models.Security{Token: token}
	return p, nil
}

// GetByID retrieves a patient with credentials stripped.
func (s *DefaultPatientService) GetByID(id string) (*models.Patient, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("patient %s not found", id)
		}
		return nil, fmt.Errorf("failed to load patient %s: %w", id, err)
	}
	p.Security = models.Security{}
	return p, nil
}
