package availability

import "clinicore/models"

// maxCellAppointments caps how many matches a cell carries inline; the
// remainder is summarized as a "+N more" count client-side.
const maxCellAppointments = 2

// CalendarCell is one grid cell: a (day, row) pair with its resolved
// state and the appointments rendered inside it.
type CalendarCell struct {
	Time         string               `json:"time"`
	State        SlotState            `json:"state"`
	Appointments []models.Appointment `json:"appointments,omitempty"`
	MoreCount    int                  `json:"moreCount,omitempty"`
}

// CalendarDay is one business-day column of the weekly grid.
type CalendarDay struct {
	Weekday models.Weekday `json:"weekday"`
	Date    string         `json:"date"`
	Cells   []CalendarCell `json:"cells"`
}

// BuildWeekGrid assembles the weekly calendar for one therapist: one
// column per business day of weekDates, one cell per axis row. The axis
// is shared across therapists and passed in, not derived here.
func BuildWeekGrid(t *models.Therapist, axis []string, weekDates []string) []CalendarDay {
	days := make([]CalendarDay, 0, len(models.BusinessDays))
	for i, day := range models.BusinessDays {
		if i >= len(weekDates) {
			break
		}
		date := weekDates[i]

		cells := make([]CalendarCell, 0, len(axis))
		for _, row := range axis {
			cell := CalendarCell{
				Time:  row,
				State: Classify(t, day, date, row),
			}
			if matches := MatchAppointments(t, date, row); len(matches) > 0 {
				if len(matches) > maxCellAppointments {
					cell.Appointments = matches[:maxCellAppointments]
					cell.MoreCount = len(matches) - maxCellAppointments
				} else {
					cell.Appointments = matches
				}
			}
			cells = append(cells, cell)
		}
		days = append(days, CalendarDay{Weekday: day, Date: date, Cells: cells})
	}
	return days
}
