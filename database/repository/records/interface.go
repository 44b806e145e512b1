package recordsRepo

import "clinicore/models"

// RecordRepository defines data access for clinical records: intake form
// submissions and therapist progress notes.
type RecordRepository interface {
	CreateIntake(form *models.IntakeForm) error
	UpdateIntake(form *models.IntakeForm) error
	GetIntakeByID(id string) (*models.IntakeForm, error)
	ListIntakeByPatient(patientID string) ([]models.IntakeForm, error)

	CreateNote(note *models.ProgressNote) error
	UpdateNote(note *models.ProgressNote) error
	DeleteNote(id string) error
	GetNoteByID(id string) (*models.ProgressNote, error)
	ListNotesByPatient(patientID string) ([]models.ProgressNote, error)
	ListNotesByTherapist(therapistID string, fromDate, toDate string) ([]models.ProgressNote, error)
}
