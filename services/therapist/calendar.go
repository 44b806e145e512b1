package therapist

import (
	"fmt"
	"time"

	"clinicore/models"
	"clinicore/services/availability"
)

// Snapshot loads a therapist with appointments attached, ready for the
// availability engine. The engine itself never touches the database; it
// classifies whatever snapshot this assembles.
func (s *DefaultTherapistService) Snapshot(id string, fromDate, toDate string) (*models.Therapist, error) {
	t, err := s.GetTherapistByID(id)
	if err != nil {
		return nil, err
	}

	appts, err := s.Appointments.ListByTherapist(id, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for therapist %s: %w", id, err)
	}
	t.Appointments = appts
	return t, nil
}

// WeekCalendar builds the weekly calendar grid plus the week's
// utilization stats for one therapist.
func (s *DefaultTherapistService) WeekCalendar(id string, anchor time.Time) (*WeekCalendar, error) {
	week := availability.BusinessWeek(anchor)

	snapshot, err := s.Snapshot(id, week[0], week[len(week)-1])
	if err != nil {
		return nil, err
	}

	axis, err := s.SharedTimeAxis()
	if err != nil {
		return nil, err
	}

	return &WeekCalendar{
		TherapistID: id,
		WeekDates:   week,
		TimeAxis:    axis,
		Days:        availability.BuildWeekGrid(snapshot, axis, week),
		Stats:       availability.StatsForDates(snapshot, week),
	}, nil
}

// SharedTimeAxis derives the calendar rows across every active
// therapist, so the grid does not change shape when the user switches
// the selected therapist.
func (s *DefaultTherapistService) SharedTimeAxis() ([]string, error) {
	therapists, err := s.Repo.GetAll(true)
	if err != nil {
		return nil, fmt.Errorf("failed to load therapists for time axis: %w", err)
	}

	for i := range therapists {
		appts, err := s.Appointments.ListByTherapist(therapists[i].ID, "", "")
		if err != nil {
			return nil, fmt.Errorf("failed to load appointments for time axis: %w", err)
		}
		therapists[i].Appointments = appts
	}

	return availability.TimeAxis(therapists), nil
}
