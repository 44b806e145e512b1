package therapist

import (
	"fmt"
	"testing"
	"time"

	"clinicore/models"
	"clinicore/services/availability"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeTherapistRepo struct {
	therapists map[string]*models.Therapist
}

func newFakeTherapistRepo(ts ...*models.Therapist) *fakeTherapistRepo {
	repo := &fakeTherapistRepo{therapists: map[string]*models.Therapist{}}
	for _, t := range ts {
		repo.therapists[t.ID] = t
	}
	return repo
}

func (f *fakeTherapistRepo) Create(t *models.Therapist) error {
	cp := *t
	f.therapists[t.ID] = &cp
	return nil
}

func (f *fakeTherapistRepo) Update(t *models.Therapist) error {
	if _, ok := f.therapists[t.ID]; !ok {
		return fmt.Errorf("therapist with id %s not found", t.ID)
	}
	cp := *t
	f.therapists[t.ID] = &cp
	return nil
}

func (f *fakeTherapistRepo) Delete(id string) error {
	delete(f.therapists, id)
	return nil
}

func (f *fakeTherapistRepo) GetByID(id string) (*models.Therapist, error) {
	t, ok := f.therapists[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTherapistRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Therapist, error) {
	return f.GetByID(id)
}

func (f *fakeTherapistRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Therapist, error) {
	for _, t := range f.therapists {
		if t.Email == email {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTherapistRepo) GetAll(activeOnly bool) ([]models.Therapist, error) {
	var out []models.Therapist
	for _, t := range f.therapists {
		if activeOnly && !t.Active {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTherapistRepo) SetActive(id string, active bool) error {
	t, ok := f.therapists[id]
	if !ok {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	t.Active = active
	return nil
}

func (f *fakeTherapistRepo) SetSchedule(id string, schedule *models.Schedule) error {
	t, ok := f.therapists[id]
	if !ok {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	t.Schedule = schedule
	return nil
}

type fakeAppointmentRepo struct {
	appointments []models.Appointment
}

func (f *fakeAppointmentRepo) Create(a *models.Appointment) error                    { return nil }
func (f *fakeAppointmentRepo) Update(a *models.Appointment) error                    { return nil }
func (f *fakeAppointmentRepo) Delete(id string) error                                { return nil }
func (f *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error)        { return nil, nil }
func (f *fakeAppointmentRepo) SetStatus(id string, s models.AppointmentStatus) error { return nil }
func (f *fakeAppointmentRepo) ListByPatient(patientID string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListByTherapist(therapistID string, fromDate, toDate string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.TherapistID != therapistID {
			continue
		}
		if fromDate != "" && a.Date < fromDate {
			continue
		}
		if toDate != "" && a.Date > toDate {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByDateRange(fromDate, toDate string) ([]models.Appointment, error) {
	return nil, nil
}

func mondayMorningTherapist() *models.Therapist {
	return &models.Therapist{
		ID: "th-1", Name: "Dana", Email: "dana@clinic.local", Active: true,
		Schedule: &models.Schedule{
			SlotDuration: 30,
			TimeSlots: []models.TimeSlot{
				{ID: "s1", Weekday: models.Monday, Start: "09:00", End: "11:00", IsAvailable: true},
			},
		},
	}
}

func TestWeekCalendar(t *testing.T) {
	svc := &DefaultTherapistService{
		Repo: newFakeTherapistRepo(mondayMorningTherapist()),
		Appointments: &fakeAppointmentRepo{appointments: []models.Appointment{
			{ID: "a1", TherapistID: "th-1", Date: "2025-01-13", Start: "09:00", End: "09:30", Status: models.AppointmentConfirmed},
		}},
	}

	calendar, err := svc.WeekCalendar("th-1", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("WeekCalendar returned error: %v", err)
	}

	if len(calendar.WeekDates) != 5 || calendar.WeekDates[0] != "2025-01-13" {
		t.Fatalf("WeekDates = %v, want Mon 2025-01-13 through Fri", calendar.WeekDates)
	}
	if len(calendar.Days) != 5 {
		t.Fatalf("got %d days, want 5", len(calendar.Days))
	}
	if len(calendar.TimeAxis) == 0 {
		t.Fatal("time axis is empty")
	}

	// Monday 09:00 is booked, Tuesday has no slots at all.
	monday := calendar.Days[0]
	var found bool
	for _, cell := range monday.Cells {
		if cell.Time == "09:00" {
			found = true
			if cell.State != availability.StateBooked {
				t.Errorf("Monday 09:00 state = %s, want %s", cell.State, availability.StateBooked)
			}
			if len(cell.Appointments) != 1 {
				t.Errorf("Monday 09:00 has %d appointments, want 1", len(cell.Appointments))
			}
		}
	}
	if !found {
		t.Error("time axis lacks a 09:00 row")
	}

	for _, cell := range calendar.Days[1].Cells {
		if cell.State != availability.StateUnavailable {
			t.Errorf("Tuesday %s state = %s, want %s", cell.Time, cell.State, availability.StateUnavailable)
		}
	}

	if calendar.Stats.CapacityMinutes != 120 {
		t.Errorf("week capacity = %d, want 120", calendar.Stats.CapacityMinutes)
	}
	if calendar.Stats.OccupiedMinutes != 30 {
		t.Errorf("week occupancy = %d, want 30", calendar.Stats.OccupiedMinutes)
	}
}

func TestSharedTimeAxisSpansTherapists(t *testing.T) {
	early := mondayMorningTherapist()
	late := &models.Therapist{
		ID: "th-2", Name: "Eli", Email: "eli@clinic.local", Active: true,
		Schedule: &models.Schedule{
			SlotDuration: 30,
			TimeSlots: []models.TimeSlot{
				{ID: "s2", Weekday: models.Friday, Start: "15:00", End: "17:00", IsAvailable: true},
			},
		},
	}

	svc := &DefaultTherapistService{
		Repo:         newFakeTherapistRepo(early, late),
		Appointments: &fakeAppointmentRepo{},
	}

	axis, err := svc.SharedTimeAxis()
	if err != nil {
		t.Fatalf("SharedTimeAxis returned error: %v", err)
	}

	has := func(clock string) bool {
		for _, row := range axis {
			if row == clock {
				return true
			}
		}
		return false
	}
	if !has("09:00") || !has("16:30") {
		t.Errorf("axis %v should span both therapists' hours", axis)
	}
	if has("12:00") {
		t.Errorf("axis %v includes 12:00, which no therapist can serve", axis)
	}
}

func TestSetScheduleValidation(t *testing.T) {
	svc := &DefaultTherapistService{
		Repo:         newFakeTherapistRepo(mondayMorningTherapist()),
		Appointments: &fakeAppointmentRepo{},
	}

	tests := []struct {
		name     string
		schedule models.Schedule
		ok       bool
	}{
		{"valid", models.Schedule{
			SlotDuration: 30,
			TimeSlots:    []models.TimeSlot{{Weekday: models.Monday, Start: "08:00", End: "12:00", IsAvailable: true}},
		}, true},
		{"zero slot duration", models.Schedule{SlotDuration: 0}, false},
		{"malformed slot time", models.Schedule{
			SlotDuration: 30,
			TimeSlots:    []models.TimeSlot{{Weekday: models.Monday, Start: "8am", End: "12:00"}},
		}, false},
		{"malformed blocked date", models.Schedule{
			SlotDuration: 30,
			BlockedSlots: []models.BlockedSlot{{Date: "next tuesday", Start: "08:00", End: "09:00"}},
		}, false},
		{"inverted span allowed", models.Schedule{
			SlotDuration: 30,
			TimeSlots:    []models.TimeSlot{{Weekday: models.Monday, Start: "12:00", End: "08:00", IsAvailable: true}},
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.SetSchedule("th-1", tc.schedule)
			if tc.ok && err != nil {
				t.Errorf("SetSchedule returned error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("SetSchedule succeeded, want error")
			}
		})
	}
}

func TestBlockedSlotManagement(t *testing.T) {
	svc := &DefaultTherapistService{
		Repo:         newFakeTherapistRepo(mondayMorningTherapist()),
		Appointments: &fakeAppointmentRepo{},
	}

	blocked := models.BlockedSlot{Date: "2025-01-13", Start: "09:00", End: "10:00", Reason: "training"}
	if err := svc.AddBlockedSlot("th-1", blocked); err != nil {
		t.Fatalf("AddBlockedSlot returned error: %v", err)
	}

	stored, err := svc.GetTherapistByID("th-1")
	if err != nil {
		t.Fatalf("GetTherapistByID returned error: %v", err)
	}
	if len(stored.Schedule.BlockedSlots) != 1 {
		t.Fatalf("got %d blocked slots, want 1", len(stored.Schedule.BlockedSlots))
	}
	blockedID := stored.Schedule.BlockedSlots[0].ID
	if blockedID == "" {
		t.Fatal("blocked slot was not assigned an ID")
	}

	if err := svc.RemoveBlockedSlot("th-1", blockedID); err != nil {
		t.Fatalf("RemoveBlockedSlot returned error: %v", err)
	}
	if err := svc.RemoveBlockedSlot("th-1", blockedID); err == nil {
		t.Error("removing a missing blocked slot succeeded, want error")
	}

	if err := svc.AddBlockedSlot("th-1", models.BlockedSlot{Date: "garbage"}); err == nil {
		t.Error("blocked slot with malformed date succeeded, want error")
	}
}

func TestRegisterTherapistDuplicateEmail(t *testing.T) {
	svc := &DefaultTherapistService{
		Repo:         newFakeTherapistRepo(mondayMorningTherapist()),
		Appointments: &fakeAppointmentRepo{},
	}

	if _, err := svc.RegisterTherapist(models.Therapist{Name: "Dup", Email: "dana@clinic.local"}); err == nil {
		t.Error("registering duplicate email succeeded, want error")
	}
	if _, err := svc.RegisterTherapist(models.Therapist{Name: "New", Email: "new@clinic.local"}); err != nil {
		t.Errorf("RegisterTherapist returned error: %v", err)
	}
}
