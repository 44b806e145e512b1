package handlers

import (
	userRepoPkg "clinicore/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct so route
// registration takes a single dependency.
type HandlerBundle struct {
	// UserRepo backs the auth middleware's session checks.
	UserRepo userRepoPkg.UserRepository

	Therapists   *TherapistHandler
	Calendar     *CalendarHandler
	Appointments *AppointmentHandler
	Patients     *PatientHandler
	Records      *RecordHandler
	Reports      *ReportHandler
	Users        *UserHandler
	Storage      *StorageHandler
}
