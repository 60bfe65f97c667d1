package patientRepo

import (
	"errors"

	"caresched/models"
)

// ErrNotFound is returned when no patient matches the lookup.
var ErrNotFound = errors.New("patient not found")

// PatientRepository defines methods for patient data access.
type PatientRepository interface {
	GetByID(id string) (*models.Patient, error)
	GetByEmail(email string) (*models.Patient, error)
	GetByTokenHash(tokenHash string) (*models.Patient, error)
	Create(patient *models.Patient) error
	Update(patient *models.Patient) error
	Delete(id string) error
	UpdateTokenHash(id, tokenHash string) error
}
