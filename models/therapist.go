package models

import "time"

// Therapist is a clinician with an optional availability schedule.
// A therapist without a schedule has zero availability everywhere.
type Therapist struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialty string    `bson:"specialty,omitempty" json:"specialty,omitempty"`
	LicenseNo string    `bson:"licenseNo,omitempty" json:"licenseNo,omitempty"`
	Active    bool      `bson:"active" json:"active"`
	Schedule  *Schedule `bson:"schedule,omitempty" json:"schedule,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`

	// Appointments is populated by the service layer when assembling a
	// snapshot for the availability engine; it is not stored on the
	// therapist document.
	Appointments []Appointment `bson:"-" json:"appointments,omitempty"`
}
