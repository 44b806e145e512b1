package models

import "time"

// Role is an access level for back-office users.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleReception Role = "RECEPTION"
	RoleTherapist Role = "THERAPIST"
)

// User is a back-office account (admin panel login).
type User struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Password    string    `bson:"password,omitempty" json:"password,omitempty"` // bcrypt hash; cleared before responses
	Role        Role      `bson:"role" json:"role"`
	TherapistID string    `bson:"therapist_id,omitempty" json:"therapistId,omitempty"` // set when Role is THERAPIST
	Active      bool      `bson:"active" json:"active"`
	TokenHash   string    `bson:"token_hash,omitempty" json:"-"` // SHA-256 of the current session token
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
