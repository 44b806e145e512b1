package report

import (
	"testing"
	"time"

	"clinicore/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeTherapistRepo struct {
	therapists []models.Therapist
}

func (f *fakeTherapistRepo) Create(t *models.Therapist) error { return nil }
func (f *fakeTherapistRepo) Update(t *models.Therapist) error { return nil }
func (f *fakeTherapistRepo) Delete(id string) error           { return nil }

func (f *fakeTherapistRepo) GetByID(id string) (*models.Therapist, error) {
	for i := range f.therapists {
		if f.therapists[i].ID == id {
			cp := f.therapists[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTherapistRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Therapist, error) {
	return f.GetByID(id)
}

func (f *fakeTherapistRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Therapist, error) {
	return nil, nil
}

func (f *fakeTherapistRepo) GetAll(activeOnly bool) ([]models.Therapist, error) {
	var out []models.Therapist
	for _, t := range f.therapists {
		if activeOnly && !t.Active {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTherapistRepo) SetActive(id string, active bool) error                 { return nil }
func (f *fakeTherapistRepo) SetSchedule(id string, schedule *models.Schedule) error { return nil }

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

// businessWeekTherapist works 09:00-12:00 every business day with
// hour-long slots: 900 capacity minutes per week.
func businessWeekTherapist(t *testing.T, id, name string) models.Therapist {
	t.Helper()
	schedule := &models.Schedule{SlotDuration: 60}
	for _, day := range models.BusinessDays {
		schedule.TimeSlots = append(schedule.TimeSlots, models.TimeSlot{
			ID: "s-" + string(day), Weekday: day, Start: "09:00", End: "12:00", IsAvailable: true,
		})
	}
	return models.Therapist{ID: id, Name: name, Active: true, Schedule: schedule}
}

func TestTherapistWeekReport(t *testing.T) {
	svc := &DefaultReportService{
		TherapistRepo: &fakeTherapistRepo{therapists: []models.Therapist{
			businessWeekTherapist(t, "th-1", "Dana"),
		}},
		AppointmentRepo: &fakeAppointmentRepo{appointments: []models.Appointment{
			{ID: "a1", TherapistID: "th-1", Date: "2025-01-13", Start: "09:00", End: "10:00", Status: models.AppointmentConfirmed},
			{ID: "a2", TherapistID: "th-1", Date: "2025-01-13", Start: "10:00", End: "11:00", Status: models.AppointmentCancelled},
			{ID: "a3", TherapistID: "th-1", Date: "2025-01-30", Start: "09:00", End: "10:00", Status: models.AppointmentConfirmed},
		}},
	}

	// Wednesday 2025-01-15 anchors the week 2025-01-13..17.
	report, err := svc.TherapistWeek("th-1", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("TherapistWeek returned error: %v", err)
	}

	if report.From != "2025-01-13" || report.To != "2025-01-17" {
		t.Errorf("report range = %s..%s, want 2025-01-13..2025-01-17", report.From, report.To)
	}
	if report.CapacityMinutes != 900 {
		t.Errorf("CapacityMinutes = %d, want 900", report.CapacityMinutes)
	}
	// The cancelled and out-of-week appointments do not occupy.
	if report.OccupiedMinutes != 60 {
		t.Errorf("OccupiedMinutes = %d, want 60", report.OccupiedMinutes)
	}
	if report.EmptySlotCount != 14 {
		t.Errorf("EmptySlotCount = %d, want 14", report.EmptySlotCount)
	}
	if report.TherapistName != "Dana" {
		t.Errorf("TherapistName = %q, want Dana", report.TherapistName)
	}
}

func TestTherapistMonthReport(t *testing.T) {
	// Mondays only: January 2025 has four Mondays before the engine's
	// business-day filter even matters.
	schedule := &models.Schedule{
		SlotDuration: 60,
		TimeSlots: []models.TimeSlot{
			{ID: "s1", Weekday: models.Monday, Start: "09:00", End: "12:00", IsAvailable: true},
		},
	}
	svc := &DefaultReportService{
		TherapistRepo: &fakeTherapistRepo{therapists: []models.Therapist{
			{ID: "th-1", Name: "Dana", Active: true, Schedule: schedule},
		}},
		AppointmentRepo: &fakeAppointmentRepo{appointments: []models.Appointment{
			{ID: "a1", TherapistID: "th-1", Date: "2025-01-06", Start: "09:00", End: "10:30", Status: models.AppointmentConfirmed},
		}},
	}

	report, err := svc.TherapistMonth("th-1", 2025, time.January)
	if err != nil {
		t.Fatalf("TherapistMonth returned error: %v", err)
	}

	if report.From != "2025-01-01" || report.To != "2025-01-31" {
		t.Errorf("report range = %s..%s, want 2025-01-01..2025-01-31", report.From, report.To)
	}
	// Mondays 6, 13, 20, 27: 4 x 180 minutes.
	if report.CapacityMinutes != 720 {
		t.Errorf("CapacityMinutes = %d, want 720", report.CapacityMinutes)
	}
	if report.OccupiedMinutes != 90 {
		t.Errorf("OccupiedMinutes = %d, want 90", report.OccupiedMinutes)
	}
	// floor((720-90)/60)
	if report.EmptySlotCount != 10 {
		t.Errorf("EmptySlotCount = %d, want 10", report.EmptySlotCount)
	}
}

func TestClinicWeekSummary(t *testing.T) {
	svc := &DefaultReportService{
		TherapistRepo: &fakeTherapistRepo{therapists: []models.Therapist{
			businessWeekTherapist(t, "th-1", "Dana"),
			businessWeekTherapist(t, "th-2", "Eli"),
			{ID: "th-3", Name: "Inactive", Active: false},
		}},
		AppointmentRepo: &fakeAppointmentRepo{appointments: []models.Appointment{
			{ID: "a1", TherapistID: "th-1", Date: "2025-01-14", Start: "09:00", End: "10:00", Status: models.AppointmentConfirmed},
			{ID: "a2", TherapistID: "th-2", Date: "2025-01-14", Start: "09:00", End: "11:00", Status: models.AppointmentInProgress},
		}},
	}

	summary, err := svc.ClinicWeek(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ClinicWeek returned error: %v", err)
	}

	// Inactive therapists are excluded from the roster.
	if len(summary.Therapists) != 2 {
		t.Fatalf("got %d therapists, want 2", len(summary.Therapists))
	}
	if summary.CapacityMinutes != 1800 {
		t.Errorf("CapacityMinutes = %d, want 1800", summary.CapacityMinutes)
	}
	if summary.OccupiedMinutes != 180 {
		t.Errorf("OccupiedMinutes = %d, want 180", summary.OccupiedMinutes)
	}
}

func TestTherapistWeekUnknownTherapist(t *testing.T) {
	svc := &DefaultReportService{
		TherapistRepo:   &fakeTherapistRepo{},
		AppointmentRepo: &fakeAppointmentRepo{},
	}
	if _, err := svc.TherapistWeek("missing", time.Now()); err == nil {
		t.Error("TherapistWeek for unknown therapist succeeded, want error")
	}
}
