package appointmentRepo

import "clinicore/models"

// AppointmentRepository defines data access methods for appointments.
type AppointmentRepository interface {
	Create(a *models.Appointment) error
	Update(a *models.Appointment) error
	Delete(id string) error
	GetByID(id string) (*models.Appointment, error)
	SetStatus(id string, status models.AppointmentStatus) error
	ListByTherapist(therapistID string, fromDate, toDate string) ([]models.Appointment, error)
	ListByPatient(patientID string) ([]models.Appointment, error)
	ListByDateRange(fromDate, toDate string) ([]models.Appointment, error)
}
