package models

import "time"

// Patient is a clinic patient record.
type Patient struct {
	ID                string    `bson:"id" json:"id"`
	FirstName         string    `bson:"firstName" json:"firstName"`
	LastName          string    `bson:"lastName" json:"lastName"`
	Email             string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone             string    `bson:"phone,omitempty" json:"phone,omitempty"`
	BirthDate         string    `bson:"birthDate,omitempty" json:"birthDate,omitempty"` // "YYYY-MM-DD"
	GuardianName      string    `bson:"guardianName,omitempty" json:"guardianName,omitempty"`
	AssignedTherapist string    `bson:"assignedTherapist,omitempty" json:"assignedTherapist,omitempty"`
	Active            bool      `bson:"active" json:"active"`
	CreatedAt         time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updatedAt"`
}
