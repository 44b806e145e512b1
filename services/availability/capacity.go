package availability

import (
	"time"

	"clinicore/models"
)

// PeriodStats is the aggregate utilization record for a set of dates.
type PeriodStats struct {
	CapacityMinutes int `json:"capacityMinutes"`
	OccupiedMinutes int `json:"occupiedMinutes"`
	EmptySlotCount  int `json:"emptySlotCount"`
}

// AvailableMinutesForDate computes the capacity of one calendar date:
// the summed length of available time slots on that date's weekday,
// minus rest-period overlap on the same weekday, minus blocked-slot
// overlap on that exact date. Overlapping exception windows subtract
// independently, so each slot's contribution is floored at zero: a slot
// double-covered by a rest and a block counts as empty, never as a
// negative number eating into other slots.
func AvailableMinutesForDate(t *models.Therapist, date string) int {
	if t == nil || t.Schedule == nil {
		return 0
	}
	target := NormalizeDate(date)
	day := WeekdayOf(target)
	if day == "" {
		return 0
	}

	sched := t.Schedule
	total := 0
	for _, s := range sched.TimeSlots {
		if s.Weekday != day || !s.IsAvailable {
			continue
		}
		start := ToMinutes(s.Start)
		end := ToMinutes(s.End)
		if start < 0 || end <= start {
			continue
		}
		minutes := end - start
		for _, r := range sched.RestPeriods {
			if r.Weekday != day {
				continue
			}
			minutes -= OverlapMinutes(start, end, ToMinutes(r.Start), ToMinutes(r.End))
		}
		for _, b := range sched.BlockedSlots {
			if NormalizeDate(b.Date) != target {
				continue
			}
			minutes -= OverlapMinutes(start, end, ToMinutes(b.Start), ToMinutes(b.End))
		}
		if minutes > 0 {
			total += minutes
		}
	}
	return total
}

// StatsForDates rolls capacity and occupancy up over a set of dates.
// Occupancy is measured directly from appointments landing on those
// dates; the empty-slot count approximates how many standard-duration
// sessions still fit into unclaimed capacity. It is not a packing
// computation around already-booked times.
func StatsForDates(t *models.Therapist, dates []string) PeriodStats {
	var stats PeriodStats
	if t == nil {
		return stats
	}

	inPeriod := make(map[string]bool, len(dates))
	for _, d := range dates {
		nd := NormalizeDate(d)
		if nd == "" {
			continue
		}
		inPeriod[nd] = true
		stats.CapacityMinutes += AvailableMinutesForDate(t, nd)
	}

	for _, a := range t.Appointments {
		if !a.Status.IsActive() {
			continue
		}
		if !inPeriod[NormalizeDate(a.Date)] {
			continue
		}
		stats.OccupiedMinutes += spanMinutes(a.Start, a.End)
	}

	free := stats.CapacityMinutes - stats.OccupiedMinutes
	if free < 0 {
		free = 0
	}
	if t.Schedule != nil && t.Schedule.SlotDuration > 0 {
		stats.EmptySlotCount = free / t.Schedule.SlotDuration
	}
	return stats
}

// BusinessWeek returns the five Monday–Friday dates of the week
// containing anchor. Sunday counts as day seven of the prior week, so it
// steps back six days rather than forward one.
func BusinessWeek(anchor time.Time) []string {
	back := int(anchor.Weekday()) - int(time.Monday)
	if anchor.Weekday() == time.Sunday {
		back = 6
	}
	monday := anchor.AddDate(0, 0, -back)

	dates := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		dates = append(dates, monday.AddDate(0, 0, i).Format(dateLayout))
	}
	return dates
}

// MonthDates returns every calendar date of the given month, day 1
// through the last day. Per-date capacity already yields zero for days
// without matching time slots, so the rollup stays weekday-agnostic.
func MonthDates(year int, month time.Month) []string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	var dates []string
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}

// WeekStats aggregates the business week containing anchor.
func WeekStats(t *models.Therapist, anchor time.Time) PeriodStats {
	return StatsForDates(t, BusinessWeek(anchor))
}

// MonthStats aggregates a full calendar month.
func MonthStats(t *models.Therapist, year int, month time.Month) PeriodStats {
	return StatsForDates(t, MonthDates(year, month))
}
