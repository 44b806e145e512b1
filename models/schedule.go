package models

// Weekday is the uppercase English day token used across the API.
// MONDAY through FRIDAY are the clinic's business days; SATURDAY and
// SUNDAY exist in the type but never appear on the calendar grid.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// BusinessDays lists the weekdays shown on the calendar, in grid order.
var BusinessDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// TimeSlot is a recurring weekly availability window on a therapist's
// schedule. Start and End are wall-clock "HH:MM" (24-hour, zero-padded).
type TimeSlot struct {
	ID          string   `bson:"id" json:"id"`
	Weekday     Weekday  `bson:"weekday" json:"weekday"`
	Start       string   `bson:"start" json:"start"` // e.g. "08:00"
	End         string   `bson:"end" json:"end"`     // e.g. "12:00"
	IsAvailable bool     `bson:"isAvailable" json:"isAvailable"`
	Kinds       []string `bson:"kinds,omitempty" json:"kinds,omitempty"` // permitted appointment kinds, opaque to the engine
}

// RestPeriod is a recurring weekly block carved out of availability,
// e.g. a lunch break. It always subtracts from whatever TimeSlots exist
// on its weekday.
type RestPeriod struct {
	ID      string  `bson:"id" json:"id"`
	Weekday Weekday `bson:"weekday" json:"weekday"`
	Start   string  `bson:"start" json:"start"`
	End     string  `bson:"end" json:"end"`
}

// BlockedSlot is a one-off exception on a specific calendar date
// ("YYYY-MM-DD"), not a recurring weekday pattern.
type BlockedSlot struct {
	ID     string `bson:"id" json:"id"`
	Date   string `bson:"date" json:"date"` // e.g. "2025-01-13"
	Start  string `bson:"start" json:"start"`
	End    string `bson:"end" json:"end"`
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// Schedule holds a therapist's full availability configuration.
type Schedule struct {
	SlotDuration int           `bson:"slotDuration" json:"slotDuration"` // calendar row granularity, minutes
	BreakBetween int           `bson:"breakBetween" json:"breakBetween"` // informational, minutes
	TimeSlots    []TimeSlot    `bson:"timeSlots" json:"timeSlots"`
	RestPeriods  []RestPeriod  `bson:"restPeriods" json:"restPeriods"`
	BlockedSlots []BlockedSlot `bson:"blockedSlots" json:"blockedSlots"`
}
