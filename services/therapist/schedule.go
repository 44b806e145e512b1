package therapist

import (
	"fmt"

	"clinicore/models"
	"clinicore/services/availability"

	"github.com/google/uuid"
)

// SetSchedule validates and replaces the therapist's availability
// configuration. Validation only rejects data the calendar could not
// label at all; inverted spans are allowed through and simply contribute
// zero availability.
func (s *DefaultTherapistService) SetSchedule(id string, schedule models.Schedule) error {
	if schedule.SlotDuration <= 0 {
		return fmt.Errorf("slot duration must be positive")
	}

	for i := range schedule.TimeSlots {
		slot := &schedule.TimeSlots[i]
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		if availability.ToMinutes(slot.Start) < 0 || availability.ToMinutes(slot.End) < 0 {
			return fmt.Errorf("time slot %s has malformed time (want HH:MM)", slot.ID)
		}
	}
	for i := range schedule.RestPeriods {
		rest := &schedule.RestPeriods[i]
		if rest.ID == "" {
			rest.ID = uuid.New().String()
		}
		if availability.ToMinutes(rest.Start) < 0 || availability.ToMinutes(rest.End) < 0 {
			return fmt.Errorf("rest period %s has malformed time (want HH:MM)", rest.ID)
		}
	}
	for i := range schedule.BlockedSlots {
		blocked := &schedule.BlockedSlots[i]
		if blocked.ID == "" {
			blocked.ID = uuid.New().String()
		}
		if availability.NormalizeDate(blocked.Date) == "" {
			return fmt.Errorf("blocked slot %s has malformed date (want YYYY-MM-DD)", blocked.ID)
		}
	}

	if err := s.Repo.SetSchedule(id, &schedule); err != nil {
		return err
	}
	s.invalidateReports(id)
	return nil
}

// AddBlockedSlot appends a one-off exception to an existing schedule.
func (s *DefaultTherapistService) AddBlockedSlot(id string, blocked models.BlockedSlot) error {
	t, err := s.GetTherapistByID(id)
	if err != nil {
		return err
	}
	if t.Schedule == nil {
		return fmt.Errorf("therapist %s has no schedule to block", id)
	}
	if availability.NormalizeDate(blocked.Date) == "" {
		return fmt.Errorf("blocked slot has malformed date (want YYYY-MM-DD)")
	}
	if blocked.ID == "" {
		blocked.ID = uuid.New().String()
	}

	t.Schedule.BlockedSlots = append(t.Schedule.BlockedSlots, blocked)
	if err := s.Repo.SetSchedule(id, t.Schedule); err != nil {
		return err
	}
	s.invalidateReports(id)
	return nil
}

// RemoveBlockedSlot deletes a one-off exception by its ID.
func (s *DefaultTherapistService) RemoveBlockedSlot(id string, blockedID string) error {
	t, err := s.GetTherapistByID(id)
	if err != nil {
		return err
	}
	if t.Schedule == nil {
		return fmt.Errorf("therapist %s has no schedule", id)
	}

	kept := t.Schedule.BlockedSlots[:0]
	found := false
	for _, b := range t.Schedule.BlockedSlots {
		if b.ID == blockedID {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return fmt.Errorf("blocked slot %s not found on therapist %s", blockedID, id)
	}

	t.Schedule.BlockedSlots = kept
	if err := s.Repo.SetSchedule(id, t.Schedule); err != nil {
		return err
	}
	s.invalidateReports(id)
	return nil
}
