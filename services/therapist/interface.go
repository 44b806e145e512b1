package therapist

import (
	"time"

	"clinicore/models"
	"clinicore/services/availability"
)

// TherapistService defines the business logic interface for therapist
// management and calendar queries.
type TherapistService interface {
	// RegisterTherapist creates a new therapist record.
	RegisterTherapist(t models.Therapist) (*models.Therapist, error)
	// UpdateTherapist updates an existing therapist's profile.
	UpdateTherapist(t models.Therapist) (*models.Therapist, error)
	// GetTherapistByID retrieves a therapist by its unique ID.
	GetTherapistByID(id string) (*models.Therapist, error)
	// GetAllTherapists lists therapists, optionally active ones only.
	GetAllTherapists(activeOnly bool) ([]models.Therapist, error)
	// DeleteTherapist removes a therapist record.
	DeleteTherapist(id string) error
	// SetActive enables or disables a therapist.
	SetActive(id string, active bool) error

	// SetSchedule replaces the therapist's availability configuration.
	SetSchedule(id string, schedule models.Schedule) error
	// AddBlockedSlot appends a one-off exception to the schedule.
	AddBlockedSlot(id string, blocked models.BlockedSlot) error
	// RemoveBlockedSlot deletes a one-off exception by its ID.
	RemoveBlockedSlot(id string, blockedID string) error

	// Snapshot loads a therapist with appointments attached for the
	// availability engine, bounded to the given date range.
	Snapshot(id string, fromDate, toDate string) (*models.Therapist, error)
	// WeekCalendar builds the weekly grid for one therapist.
	WeekCalendar(id string, anchor time.Time) (*WeekCalendar, error)
	// SharedTimeAxis derives the grid rows across all active therapists.
	SharedTimeAxis() ([]string, error)
}

// WeekCalendar is the full response for a weekly calendar query.
type WeekCalendar struct {
	TherapistID string                     `json:"therapistId"`
	WeekDates   []string                   `json:"weekDates"`
	TimeAxis    []string                   `json:"timeAxis"`
	Days        []availability.CalendarDay `json:"days"`
	Stats       availability.PeriodStats   `json:"stats"`
}
