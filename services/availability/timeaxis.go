package availability

import (
	"sort"

	"clinicore/models"
)

// axisStep is the fixed generation granularity for calendar rows. It is
// a presentation choice independent of any schedule's own slotDuration:
// finer steps would only make the grid taller.
const axisStep = 30

// TimeAxis derives the ordered distinct "HH:MM" row labels for the
// calendar grid, spanning every therapist at once so that switching the
// selected therapist never re-derives rows.
//
// Rest periods, blocked slots and appointments are scanned alongside
// availability slots: a legacy appointment booked outside current
// availability must still land on a visible row.
func TimeAxis(therapists []models.Therapist) []string {
	marks := make(map[int]struct{})

	addSpan := func(start, end string) {
		s := ToMinutes(start)
		e := ToMinutes(end)
		if s < 0 || e <= s {
			return
		}
		for m := s; m < e; m += axisStep {
			marks[m] = struct{}{}
		}
	}

	for i := range therapists {
		t := &therapists[i]
		if sched := t.Schedule; sched != nil {
			for _, s := range sched.TimeSlots {
				addSpan(s.Start, s.End)
			}
			for _, r := range sched.RestPeriods {
				addSpan(r.Start, r.End)
			}
			for _, b := range sched.BlockedSlots {
				addSpan(b.Start, b.End)
			}
		}
		for _, a := range t.Appointments {
			addSpan(a.Start, a.End)
		}
	}

	minutes := make([]int, 0, len(marks))
	for m := range marks {
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	axis := make([]string, 0, len(minutes))
	for _, m := range minutes {
		axis = append(axis, FormatMinutes(m))
	}
	return axis
}
