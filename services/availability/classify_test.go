package availability

import (
	"testing"

	"clinicore/models"
)

// mondayTherapist builds a therapist available MONDAY 08:00-12:00.
func mondayTherapist(t *testing.T) *models.Therapist {
	t.Helper()
	return &models.Therapist{
		ID:     "t1",
		Active: true,
		Schedule: &models.Schedule{
			SlotDuration: 60,
			TimeSlots: []models.TimeSlot{
				{ID: "s1", Weekday: models.Monday, Start: "08:00", End: "12:00", IsAvailable: true},
			},
		},
	}
}

func TestClassifyBasicAvailability(t *testing.T) {
	th := mondayTherapist(t)

	if got := Classify(th, models.Monday, "2025-01-13", "09:00"); got != StateAvailable {
		t.Errorf("09:00 Monday = %v, want AVAILABLE", got)
	}
	if got := Classify(th, models.Monday, "2025-01-13", "13:00"); got != StateUnavailable {
		t.Errorf("13:00 Monday = %v, want UNAVAILABLE", got)
	}
	if got := Classify(th, models.Tuesday, "2025-01-14", "09:00"); got != StateUnavailable {
		t.Errorf("09:00 Tuesday = %v, want UNAVAILABLE", got)
	}
}

func TestClassifyHalfOpenBoundaries(t *testing.T) {
	th := mondayTherapist(t)
	th.Schedule.RestPeriods = []models.RestPeriod{
		{Weekday: models.Monday, Start: "12:00", End: "13:00"},
	}

	cases := []struct {
		clock string
		want  SlotState
	}{
		{"11:59", StateAvailable},
		{"12:00", StateResting}, // slot end is exclusive, rest start inclusive
		{"12:59", StateResting},
		{"13:00", StateUnavailable}, // rest end is exclusive too
	}
	for _, c := range cases {
		if got := Classify(th, models.Monday, "2025-01-13", c.clock); got != c.want {
			t.Errorf("Classify(%s) = %v, want %v", c.clock, got, c.want)
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	th := mondayTherapist(t)
	th.Schedule.RestPeriods = []models.RestPeriod{
		{Weekday: models.Monday, Start: "09:00", End: "10:00"},
	}
	th.Schedule.BlockedSlots = []models.BlockedSlot{
		{Date: "2025-01-13", Start: "09:00", End: "10:00"},
	}

	// Block outranks rest.
	if got := Classify(th, models.Monday, "2025-01-13", "09:30"); got != StateBlocked {
		t.Fatalf("blocked+rest = %v, want BLOCKED", got)
	}
	// The block is date-specific: a different Monday only rests.
	if got := Classify(th, models.Monday, "2025-01-20", "09:30"); got != StateResting {
		t.Fatalf("other Monday = %v, want RESTING", got)
	}

	// An appointment outranks block and rest both.
	th.Appointments = []models.Appointment{
		{ID: "a1", Date: "2025-01-13", Start: "09:00", End: "10:00", Status: models.AppointmentConfirmed},
	}
	if got := Classify(th, models.Monday, "2025-01-13", "09:30"); got != StateBooked {
		t.Fatalf("appointment+block+rest = %v, want BOOKED", got)
	}
}

func TestClassifyNoSchedule(t *testing.T) {
	th := &models.Therapist{ID: "t2", Active: true}
	if got := Classify(th, models.Monday, "2025-01-13", "09:00"); got != StateUnavailable {
		t.Errorf("no schedule = %v, want UNAVAILABLE", got)
	}
}

func TestClassifyMalformedSlot(t *testing.T) {
	th := &models.Therapist{
		ID: "t3",
		Schedule: &models.Schedule{
			TimeSlots: []models.TimeSlot{
				// end before start: contributes nothing, never an error
				{Weekday: models.Monday, Start: "12:00", End: "08:00", IsAvailable: true},
			},
		},
	}
	if got := Classify(th, models.Monday, "2025-01-13", "10:00"); got != StateUnavailable {
		t.Errorf("inverted slot = %v, want UNAVAILABLE", got)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	th := mondayTherapist(t)
	first := Classify(th, models.Monday, "2025-01-13", "09:00")
	second := Classify(th, models.Monday, "2025-01-13", "09:00")
	if first != second {
		t.Errorf("classification not idempotent: %v then %v", first, second)
	}
}

func TestMatchAppointments(t *testing.T) {
	th := mondayTherapist(t)
	th.Appointments = []models.Appointment{
		{ID: "a1", Date: "2025-01-13", Start: "09:00", End: "10:00", Status: models.AppointmentConfirmed},
		{ID: "a2", Date: "2025-01-13T00:00:00Z", Start: "09:30", End: "10:30", Status: models.AppointmentPending},
		{ID: "a3", Date: "2025-01-13", Start: "09:00", End: "10:00", Status: models.AppointmentCancelled},
		{ID: "a4", Date: "2025-01-20", Start: "09:00", End: "10:00", Status: models.AppointmentConfirmed},
		{ID: "a5", Date: "bad-date", Start: "09:00", End: "10:00", Status: models.AppointmentConfirmed},
	}

	got := MatchAppointments(th, "2025-01-13", "09:45")
	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2 (overcommitted slot)", len(got))
	}
	if got[0].ID != "a1" || got[1].ID != "a2" {
		t.Errorf("matched %s, %s; want a1, a2", got[0].ID, got[1].ID)
	}

	// Appointment end is exclusive.
	if got := MatchAppointments(th, "2025-01-13", "10:00"); len(got) != 1 || got[0].ID != "a2" {
		t.Errorf("at 10:00 want only a2, got %d matches", len(got))
	}
}
