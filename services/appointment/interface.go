package appointment

import "clinicore/models"

// AppointmentService defines the business logic for booking and managing
// appointments.
type AppointmentService interface {
	// Book validates the requested span against the therapist's
	// availability and creates the appointment.
	Book(req BookingRequest) (*models.Appointment, error)
	// UpdateStatus applies a lifecycle transition.
	UpdateStatus(id string, status models.AppointmentStatus) (*models.Appointment, error)
	// Cancel marks the appointment cancelled, releasing its span.
	Cancel(id string) error
	// GetByID retrieves one appointment.
	GetByID(id string) (*models.Appointment, error)
	// ListForTherapist returns a therapist's appointments in a date range.
	ListForTherapist(therapistID, fromDate, toDate string) ([]models.Appointment, error)
	// ListForPatient returns all appointments of a patient.
	ListForPatient(patientID string) ([]models.Appointment, error)
}

// BookingRequest carries the fields needed to create an appointment.
type BookingRequest struct {
	TherapistID string `json:"therapistId" binding:"required"`
	PatientID   string `json:"patientId" binding:"required"`
	Date        string `json:"date" binding:"required"`  // "YYYY-MM-DD"
	Start       string `json:"start" binding:"required"` // "HH:MM"
	End         string `json:"end" binding:"required"`
	Kind        string `json:"kind,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// ReminderEnqueuer schedules an appointment reminder for later delivery.
// The task queue implements it; tests substitute a no-op.
type ReminderEnqueuer interface {
	EnqueueReminder(payload models.ReminderPayload) error
}

// ReportInvalidator drops cached utilization reports for a therapist
// whose occupancy just changed.
type ReportInvalidator interface {
	InvalidateTherapist(therapistID string) error
}
