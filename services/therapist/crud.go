package therapist

import (
	"fmt"

	appointmentRepo "clinicore/database/repository/appointment"
	therapistRepo "clinicore/database/repository/therapist"
	"clinicore/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ReportInvalidator drops cached utilization reports for a therapist
// whose capacity just changed.
type ReportInvalidator interface {
	InvalidateTherapist(therapistID string) error
}

// DefaultTherapistService is the production implementation.
type DefaultTherapistService struct {
	Repo         therapistRepo.TherapistRepository
	Appointments appointmentRepo.AppointmentRepository
	Reports      ReportInvalidator
}

// invalidateReports is best-effort; stale entries expire on TTL anyway.
func (s *DefaultTherapistService) invalidateReports(id string) {
	if s.Reports == nil {
		return
	}
	if err := s.Reports.InvalidateTherapist(id); err != nil {
		zap.L().Warn("failed to invalidate report cache",
			zap.String("therapistId", id), zap.Error(err))
	}
}

// RegisterTherapist validates input, assigns an ID and creates the record.
func (s *DefaultTherapistService) RegisterTherapist(t models.Therapist) (*models.Therapist, error) {
	if t.Email == "" || t.Name == "" {
		return nil, fmt.Errorf("therapist email and name are required")
	}

	// Check for duplicates by email using a minimal projection.
	existing, err := s.Repo.GetByEmailWithProjection(t.Email, bson.M{"id": 1})
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing therapist: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("therapist with email %s already exists", t.Email)
	}

	t.ID = uuid.New().String()
	t.Active = true
	if err := s.Repo.Create(&t); err != nil {
		return nil, fmt.Errorf("failed to create therapist: %w", err)
	}
	return &t, nil
}

// UpdateTherapist updates profile fields; the schedule is managed through
// SetSchedule, not here.
func (s *DefaultTherapistService) UpdateTherapist(t models.Therapist) (*models.Therapist, error) {
	if t.ID == "" {
		return nil, fmt.Errorf("therapist id is required")
	}
	current, err := s.Repo.GetByID(t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapist: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("therapist with id %s not found", t.ID)
	}

	t.Schedule = current.Schedule
	t.CreatedAt = current.CreatedAt
	if err := s.Repo.Update(&t); err != nil {
		return nil, fmt.Errorf("failed to update therapist: %w", err)
	}
	return &t, nil
}

// GetTherapistByID retrieves a therapist by its unique ID.
func (s *DefaultTherapistService) GetTherapistByID(id string) (*models.Therapist, error) {
	t, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("therapist with id %s not found", id)
	}
	return t, nil
}

// GetAllTherapists lists therapists.
func (s *DefaultTherapistService) GetAllTherapists(activeOnly bool) ([]models.Therapist, error) {
	return s.Repo.GetAll(activeOnly)
}

// DeleteTherapist removes a therapist record.
func (s *DefaultTherapistService) DeleteTherapist(id string) error {
	return s.Repo.Delete(id)
}

// SetActive enables or disables a therapist. Either direction changes
// clinic-wide capacity.
func (s *DefaultTherapistService) SetActive(id string, active bool) error {
	if err := s.Repo.SetActive(id, active); err != nil {
		return err
	}
	s.invalidateReports(id)
	return nil
}
