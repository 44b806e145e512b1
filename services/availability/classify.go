package availability

import "clinicore/models"

// SlotState classifies one (weekday, date, time) query against a
// therapist's schedule. The presentation layer maps states to styles;
// the engine only names them.
type SlotState string

const (
	StateBooked      SlotState = "BOOKED"
	StateBlocked     SlotState = "BLOCKED"
	StateResting     SlotState = "RESTING"
	StateAvailable   SlotState = "AVAILABLE"
	StateUnavailable SlotState = "UNAVAILABLE"
)

// Classify resolves the state of a single calendar instant. The weekday
// selects recurring entries (time slots, rest periods) and the concrete
// date selects one-off entries (blocked slots, appointments); callers
// supply both explicitly rather than deriving one from the other.
//
// Precedence is specificity-ordered: an existing appointment outranks
// everything, a date-specific block outranks a recurring rest period,
// and rest outranks plain availability.
func Classify(t *models.Therapist, day models.Weekday, date string, clock string) SlotState {
	minute := ToMinutes(clock)
	if minute < 0 || t == nil {
		return StateUnavailable
	}

	if len(MatchAppointments(t, date, clock)) > 0 {
		return StateBooked
	}

	sched := t.Schedule
	if sched == nil {
		return StateUnavailable
	}

	target := NormalizeDate(date)
	if target != "" {
		for _, b := range sched.BlockedSlots {
			if NormalizeDate(b.Date) == target && contains(b.Start, b.End, minute) {
				return StateBlocked
			}
		}
	}

	for _, r := range sched.RestPeriods {
		if r.Weekday == day && contains(r.Start, r.End, minute) {
			return StateResting
		}
	}

	for _, s := range sched.TimeSlots {
		if s.Weekday == day && s.IsAvailable && contains(s.Start, s.End, minute) {
			return StateAvailable
		}
	}

	return StateUnavailable
}

// MatchAppointments returns every appointment of the therapist whose span
// contains the query time on the given date. Overcommitted slots yield
// multiple matches; the caller decides how many to display. Cancelled and
// no-show appointments no longer hold their span and never match.
func MatchAppointments(t *models.Therapist, date string, clock string) []models.Appointment {
	if t == nil {
		return nil
	}
	minute := ToMinutes(clock)
	target := NormalizeDate(date)
	if minute < 0 || target == "" {
		return nil
	}

	var matches []models.Appointment
	for _, a := range t.Appointments {
		if !a.Status.IsActive() {
			continue
		}
		if NormalizeDate(a.Date) != target {
			continue
		}
		if contains(a.Start, a.End, minute) {
			matches = append(matches, a)
		}
	}
	return matches
}
