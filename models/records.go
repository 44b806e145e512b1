package models

import "time"

// IntakeStatus tracks a multi-step intake form through its lifecycle.
type IntakeStatus string

const (
	IntakeDraft     IntakeStatus = "DRAFT"
	IntakeSubmitted IntakeStatus = "SUBMITTED"
	IntakeReviewed  IntakeStatus = "REVIEWED"
)

// IntakeForm is a patient intake submission. The client renders the form
// as a multi-step wizard; each step lands here as one named section of
// free-form fields, so the backend stays agnostic of the step order.
type IntakeForm struct {
	ID          string                       `bson:"id" json:"id"`
	PatientID   string                       `bson:"patient_id" json:"patientId"`
	FormType    string                       `bson:"formType" json:"formType"` // e.g. "intake", "medical-history"
	Status      IntakeStatus                 `bson:"status" json:"status"`
	Sections    map[string]map[string]string `bson:"sections" json:"sections"`
	Attachments []Attachment                 `bson:"attachments,omitempty" json:"attachments,omitempty"`
	SubmittedAt *time.Time                   `bson:"submitted_at,omitempty" json:"submittedAt,omitempty"`
	CreatedAt   time.Time                    `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time                    `bson:"updated_at" json:"updatedAt"`
}

// Attachment references an uploaded clinical document. URL holds the
// storage provider's permanent identifier, not a browsable link;
// download links are signed on demand.
type Attachment struct {
	ID          string `bson:"id" json:"id"`
	FileName    string `bson:"fileName" json:"fileName"`
	ContentType string `bson:"contentType,omitempty" json:"contentType,omitempty"`
	URL         string `bson:"url" json:"url"`
	SizeBytes   int64  `bson:"sizeBytes,omitempty" json:"sizeBytes,omitempty"`
}

// ProgressNote is a therapist's note for one patient session.
type ProgressNote struct {
	ID            string    `bson:"id" json:"id"`
	PatientID     string    `bson:"patient_id" json:"patientId"`
	TherapistID   string    `bson:"therapist_id" json:"therapistId"`
	AppointmentID string    `bson:"appointment_id,omitempty" json:"appointmentId,omitempty"`
	Date          string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Summary       string    `bson:"summary" json:"summary"`
	Goals         string    `bson:"goals,omitempty" json:"goals,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}
