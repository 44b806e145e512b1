// Package records implements clinical record keeping: multi-step intake
// form submissions and therapist progress notes.
package records

import (
	"fmt"
	"time"

	recordsRepo "clinicore/database/repository/records"
	"clinicore/models"
	"clinicore/services/availability"

	"github.com/google/uuid"
)

// RecordService defines the business logic for intake forms and progress
// notes.
type RecordService interface {
	// StartIntake opens a draft intake form for a patient.
	StartIntake(patientID, formType string) (*models.IntakeForm, error)
	// SaveIntakeSection stores one wizard step's fields on a draft form.
	SaveIntakeSection(formID, section string, fields map[string]string) (*models.IntakeForm, error)
	// SubmitIntake finalizes a draft form.
	SubmitIntake(formID string) (*models.IntakeForm, error)
	// ReviewIntake marks a submitted form reviewed.
	ReviewIntake(formID string) (*models.IntakeForm, error)
	// AttachDocument links an uploaded document to the form.
	AttachDocument(formID string, att models.Attachment) (*models.IntakeForm, error)
	// GetIntake retrieves one form.
	GetIntake(formID string) (*models.IntakeForm, error)
	// ListIntakeForPatient returns a patient's forms, newest first.
	ListIntakeForPatient(patientID string) ([]models.IntakeForm, error)

	// CreateProgressNote stores a therapist's session note.
	CreateProgressNote(note models.ProgressNote) (*models.ProgressNote, error)
	// UpdateProgressNote edits an existing note.
	UpdateProgressNote(note models.ProgressNote) (*models.ProgressNote, error)
	// DeleteProgressNote removes a note.
	DeleteProgressNote(id string) error
	// ListNotesForPatient returns a patient's notes, newest first.
	ListNotesForPatient(patientID string) ([]models.ProgressNote, error)
	// ListNotesForTherapist returns a therapist's notes in a date range.
	ListNotesForTherapist(therapistID, fromDate, toDate string) ([]models.ProgressNote, error)
}

// DefaultRecordService is the production implementation.
type DefaultRecordService struct {
	Repo recordsRepo.RecordRepository
}

// StartIntake opens a draft intake form for a patient.
func (s *DefaultRecordService) StartIntake(patientID, formType string) (*models.IntakeForm, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient id is required")
	}
	if formType == "" {
		formType = "intake"
	}

	form := models.IntakeForm{
		ID:        uuid.New().String(),
		PatientID: patientID,
		FormType:  formType,
		Status:    models.IntakeDraft,
		Sections:  map[string]map[string]string{},
	}
	if err := s.Repo.CreateIntake(&form); err != nil {
		return nil, fmt.Errorf("failed to start intake form: %w", err)
	}
	return &form, nil
}

// SaveIntakeSection stores one wizard step's fields. Steps may be saved
// in any order and re-saved freely while the form is a draft.
func (s *DefaultRecordService) SaveIntakeSection(formID, section string, fields map[string]string) (*models.IntakeForm, error) {
	form, err := s.GetIntake(formID)
	if err != nil {
		return nil, err
	}
	if form.Status != models.IntakeDraft {
		return nil, fmt.Errorf("intake form %s is %s and can no longer be edited", formID, form.Status)
	}
	if section == "" {
		return nil, fmt.Errorf("section name is required")
	}

	if form.Sections == nil {
		form.Sections = map[string]map[string]string{}
	}
	form.Sections[section] = fields
	if err := s.Repo.UpdateIntake(form); err != nil {
		return nil, fmt.Errorf("failed to save intake section: %w", err)
	}
	return form, nil
}

// SubmitIntake finalizes a draft form.
func (s *DefaultRecordService) SubmitIntake(formID string) (*models.IntakeForm, error) {
	form, err := s.GetIntake(formID)
	if err != nil {
		return nil, err
	}
	if form.Status != models.IntakeDraft {
		return nil, fmt.Errorf("intake form %s already %s", formID, form.Status)
	}
	if len(form.Sections) == 0 {
		return nil, fmt.Errorf("intake form %s has no sections to submit", formID)
	}

	now := time.Now()
	form.Status = models.IntakeSubmitted
	form.SubmittedAt = &now
	if err := s.Repo.UpdateIntake(form); err != nil {
		return nil, fmt.Errorf("failed to submit intake form: %w", err)
	}
	return form, nil
}

// ReviewIntake marks a submitted form reviewed.
func (s *DefaultRecordService) ReviewIntake(formID string) (*models.IntakeForm, error) {
	form, err := s.GetIntake(formID)
	if err != nil {
		return nil, err
	}
	if form.Status != models.IntakeSubmitted {
		return nil, fmt.Errorf("intake form %s is %s, only submitted forms can be reviewed", formID, form.Status)
	}

	form.Status = models.IntakeReviewed
	if err := s.Repo.UpdateIntake(form); err != nil {
		return nil, fmt.Errorf("failed to review intake form: %w", err)
	}
	return form, nil
}

// AttachDocument links an uploaded document to the form.
func (s *DefaultRecordService) AttachDocument(formID string, att models.Attachment) (*models.IntakeForm, error) {
	form, err := s.GetIntake(formID)
	if err != nil {
		return nil, err
	}
	if att.URL == "" {
		return nil, fmt.Errorf("attachment url is required")
	}
	if att.ID == "" {
		att.ID = uuid.New().String()
	}

	form.Attachments = append(form.Attachments, att)
	if err := s.Repo.UpdateIntake(form); err != nil {
		return nil, fmt.Errorf("failed to attach document: %w", err)
	}
	return form, nil
}

// GetIntake retrieves one form.
func (s *DefaultRecordService) GetIntake(formID string) (*models.IntakeForm, error) {
	form, err := s.Repo.GetIntakeByID(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, fmt.Errorf("intake form with id %s not found", formID)
	}
	return form, nil
}

// ListIntakeForPatient returns a patient's forms, newest first.
func (s *DefaultRecordService) ListIntakeForPatient(patientID string) ([]models.IntakeForm, error) {
	return s.Repo.ListIntakeByPatient(patientID)
}

// CreateProgressNote stores a therapist's session note.
func (s *DefaultRecordService) CreateProgressNote(note models.ProgressNote) (*models.ProgressNote, error) {
	if note.PatientID == "" || note.TherapistID == "" {
		return nil, fmt.Errorf("patient and therapist ids are required")
	}
	if note.Summary == "" {
		return nil, fmt.Errorf("progress note summary is required")
	}
	if availability.NormalizeDate(note.Date) == "" {
		return nil, fmt.Errorf("malformed note date %q (want YYYY-MM-DD)", note.Date)
	}

	note.ID = uuid.New().String()
	if err := s.Repo.CreateNote(&note); err != nil {
		return nil, fmt.Errorf("failed to create progress note: %w", err)
	}
	return &note, nil
}

// UpdateProgressNote edits an existing note.
func (s *DefaultRecordService) UpdateProgressNote(note models.ProgressNote) (*models.ProgressNote, error) {
	if note.ID == "" {
		return nil, fmt.Errorf("progress note id is required")
	}
	current, err := s.Repo.GetNoteByID(note.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("progress note with id %s not found", note.ID)
	}

	note.CreatedAt = current.CreatedAt
	if err := s.Repo.UpdateNote(&note); err != nil {
		return nil, fmt.Errorf("failed to update progress note: %w", err)
	}
	return &note, nil
}

// DeleteProgressNote removes a note.
func (s *DefaultRecordService) DeleteProgressNote(id string) error {
	return s.Repo.DeleteNote(id)
}

// ListNotesForPatient returns a patient's notes, newest first.
func (s *DefaultRecordService) ListNotesForPatient(patientID string) ([]models.ProgressNote, error) {
	return s.Repo.ListNotesByPatient(patientID)
}

// ListNotesForTherapist returns a therapist's notes in a date range.
func (s *DefaultRecordService) ListNotesForTherapist(therapistID, fromDate, toDate string) ([]models.ProgressNote, error) {
	return s.Repo.ListNotesByTherapist(therapistID, fromDate, toDate)
}
