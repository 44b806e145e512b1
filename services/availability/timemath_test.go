package availability

import "testing"

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"12:30", 750},
		{"23:59", 1439},
		{"24:00", -1},
		{"12:60", -1},
		{"garbage", -1},
		{"", -1},
	}
	for _, c := range cases {
		if got := ToMinutes(c.in); got != c.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	for _, clock := range []string{"00:00", "07:05", "12:30", "23:59"} {
		if got := FormatMinutes(ToMinutes(clock)); got != clock {
			t.Errorf("FormatMinutes(ToMinutes(%q)) = %q", clock, got)
		}
	}
}

func TestOverlapMinutes(t *testing.T) {
	// Adjacent half-open intervals never overlap.
	if got := OverlapMinutes(8*60, 12*60, 12*60, 13*60); got != 0 {
		t.Errorf("adjacent overlap = %d, want 0", got)
	}
	if got := OverlapMinutes(8*60, 12*60, 11*60, 13*60); got != 60 {
		t.Errorf("partial overlap = %d, want 60", got)
	}
	// Symmetry.
	if OverlapMinutes(480, 720, 660, 780) != OverlapMinutes(660, 780, 480, 720) {
		t.Error("overlap is not symmetric")
	}
	// Degenerate interval.
	if got := OverlapMinutes(480, 480, 0, 1440); got != 0 {
		t.Errorf("degenerate overlap = %d, want 0", got)
	}
	// Full containment.
	if got := OverlapMinutes(480, 720, 500, 520); got != 20 {
		t.Errorf("contained overlap = %d, want 20", got)
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-01-13", "2025-01-13"},
		{"2025-01-13T09:00:00Z", "2025-01-13"},
		{"2025-01-13T23:30:00+02:00", "2025-01-13"},
		{"13/01/2025", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeDate(c.in); got != c.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	if got := WeekdayOf("2025-01-13"); got != "MONDAY" {
		t.Errorf("WeekdayOf(2025-01-13) = %q, want MONDAY", got)
	}
	if got := WeekdayOf("2025-01-18"); got != "SATURDAY" {
		t.Errorf("WeekdayOf(2025-01-18) = %q, want SATURDAY", got)
	}
	if got := WeekdayOf("not-a-date"); got != "" {
		t.Errorf("WeekdayOf(not-a-date) = %q, want empty", got)
	}
}
