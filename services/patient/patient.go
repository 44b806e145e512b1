package patient

import (
	"fmt"

	patientRepo "clinicore/database/repository/patient"
	"clinicore/models"

	"github.com/google/uuid"
)

// PatientService defines the business logic interface for patient records.
type PatientService interface {
	RegisterPatient(p models.Patient) (*models.Patient, error)
	UpdatePatient(p models.Patient) (*models.Patient, error)
	GetPatientByID(id string) (*models.Patient, error)
	GetAllPatients(activeOnly bool) ([]models.Patient, error)
	SearchPatients(query string) ([]models.Patient, error)
	DeletePatient(id string) error
}

// DefaultPatientService is the production implementation.
type DefaultPatientService struct {
	Repo patientRepo.PatientRepository
}

// RegisterPatient validates input, assigns an ID and creates the record.
func (s *DefaultPatientService) RegisterPatient(p models.Patient) (*models.Patient, error) {
	if p.FirstName == "" || p.LastName == "" {
		return nil, fmt.Errorf("patient first and last name are required")
	}

	p.ID = uuid.New().String()
	p.Active = true
	if err := s.Repo.Create(&p); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return &p, nil
}

// UpdatePatient updates an existing patient record.
func (s *DefaultPatientService) UpdatePatient(p models.Patient) (*models.Patient, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("patient id is required")
	}
	current, err := s.Repo.GetByID(p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("patient with id %s not found", p.ID)
	}

	p.CreatedAt = current.CreatedAt
	if err := s.Repo.Update(&p); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return &p, nil
}

// GetPatientByID retrieves a patient by its unique ID.
func (s *DefaultPatientService) GetPatientByID(id string) (*models.Patient, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("patient with id %s not found", id)
	}
	return p, nil
}

// GetAllPatients lists patients.
func (s *DefaultPatientService) GetAllPatients(activeOnly bool) ([]models.Patient, error) {
	return s.Repo.GetAll(activeOnly)
}

// SearchPatients matches patients by name prefix.
func (s *DefaultPatientService) SearchPatients(query string) ([]models.Patient, error) {
	if query == "" {
		return s.Repo.GetAll(false)
	}
	return s.Repo.Search(query)
}

// DeletePatient removes a patient record.
func (s *DefaultPatientService) DeletePatient(id string) error {
	return s.Repo.Delete(id)
}
