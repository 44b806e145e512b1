// Package availability is the pure computation core behind the therapist
// calendar: per-instant availability classification, appointment matching,
// capacity/occupancy aggregates and the shared time axis. Every function is
// side-effect-free and total over well-typed inputs; malformed data degrades
// to empty availability instead of failing the render.
package availability

import (
	"fmt"
	"time"

	"clinicore/models"
)

// ToMinutes converts a wall-clock "HH:MM" string to minutes since
// midnight. Malformed input returns -1, which no half-open interval
// can contain.
func ToMinutes(clock string) int {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return -1
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// FormatMinutes renders minutes since midnight back to zero-padded "HH:MM".
func FormatMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// OverlapMinutes returns the overlap between two half-open minute
// intervals [aStart, aEnd) and [bStart, bEnd). Adjacent or degenerate
// intervals overlap zero minutes.
func OverlapMinutes(aStart, aEnd, bStart, bEnd int) int {
	lo := aStart
	if bStart > lo {
		lo = bStart
	}
	hi := aEnd
	if bEnd < hi {
		hi = bEnd
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// contains reports whether minute t falls inside [start, end), both given
// as "HH:MM". An inverted or unparseable span contains nothing.
func contains(start, end string, t int) bool {
	s := ToMinutes(start)
	e := ToMinutes(end)
	if s < 0 || e <= s || t < 0 {
		return false
	}
	return t >= s && t < e
}

// spanMinutes returns end-start for a "HH:MM" pair, zero when the span is
// inverted or unparseable.
func spanMinutes(start, end string) int {
	s := ToMinutes(start)
	e := ToMinutes(end)
	if s < 0 || e <= s {
		return 0
	}
	return e - s
}

const dateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" calendar date in UTC.
func ParseDate(date string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// NormalizeDate reduces a stored date to its "YYYY-MM-DD" form so that
// date equality ignores any time-of-day or offset noise the persistence
// layer may have attached. Unparseable input normalizes to "".
func NormalizeDate(date string) string {
	if _, ok := ParseDate(date); ok {
		return date
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Format(dateLayout)
	}
	return ""
}

// WeekdayOf resolves the weekday token for a calendar date. Unparseable
// dates return the empty token, which matches no schedule entry.
func WeekdayOf(date string) models.Weekday {
	d, ok := ParseDate(date)
	if !ok {
		return ""
	}
	return weekdayToken(d.Weekday())
}

func weekdayToken(w time.Weekday) models.Weekday {
	switch w {
	case time.Monday:
		return models.Monday
	case time.Tuesday:
		return models.Tuesday
	case time.Wednesday:
		return models.Wednesday
	case time.Thursday:
		return models.Thursday
	case time.Friday:
		return models.Friday
	case time.Saturday:
		return models.Saturday
	default:
		return models.Sunday
	}
}
