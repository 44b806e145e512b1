package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentPending    AppointmentStatus = "PENDING"
	AppointmentConfirmed  AppointmentStatus = "CONFIRMED"
	AppointmentInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentCompleted  AppointmentStatus = "COMPLETED"
	AppointmentCancelled  AppointmentStatus = "CANCELLED"
	AppointmentNoShow     AppointmentStatus = "NO_SHOW"
)

// IsCommitted reports whether the status represents a booked/committed
// appointment. Unknown tokens fall through to the pending branch.
func (s AppointmentStatus) IsCommitted() bool {
	switch s {
	case AppointmentConfirmed, AppointmentInProgress, AppointmentCompleted:
		return true
	default:
		return false
	}
}

// IsActive reports whether the appointment still holds its time span.
// Cancelled and no-show appointments release their slot.
func (s AppointmentStatus) IsActive() bool {
	switch s {
	case AppointmentCancelled, AppointmentNoShow:
		return false
	default:
		return true
	}
}

// Appointment is a booked session between one therapist and one patient
// on an absolute calendar date.
type Appointment struct {
	ID          string            `bson:"id" json:"id"`
	TherapistID string            `bson:"therapist_id" json:"therapistId"`
	PatientID   string            `bson:"patient_id" json:"patientId"`
	Date        string            `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Start       string            `bson:"start" json:"start"` // "HH:MM"
	End         string            `bson:"end" json:"end"`
	Kind        string            `bson:"kind,omitempty" json:"kind,omitempty"`
	Status      AppointmentStatus `bson:"status" json:"status"`
	Notes       string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updated_at" json:"updatedAt"`
}
