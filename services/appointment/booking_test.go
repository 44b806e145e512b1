package appointment

import (
	"fmt"
	"testing"

	"clinicore/models"
)

type fakeAppointmentRepo struct {
	appointments map[string]*models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[string]*models.Appointment{}}
}

func (f *fakeAppointmentRepo) Create(a *models.Appointment) error {
	cp := *a
	f.appointments[a.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) Update(a *models.Appointment) error {
	if _, ok := f.appointments[a.ID]; !ok {
		return fmt.Errorf("appointment with id %s not found", a.ID)
	}
	cp := *a
	f.appointments[a.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) Delete(id string) error {
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) SetStatus(id string, status models.AppointmentStatus) error {
	a, ok := f.appointments[id]
	if !ok {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	a.Status = status
	return nil
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
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByPatient(patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByDateRange(fromDate, toDate string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.Date >= fromDate && a.Date <= toDate {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeEnqueuer struct {
	payloads []models.ReminderPayload
}

func (f *fakeEnqueuer) EnqueueReminder(payload models.ReminderPayload) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

// weekdayTherapist works Mondays 08:00-12:00 with a 10:00-10:30 rest
// and a blocked window on 2025-01-20 from 11:00.
func weekdayTherapist(t *testing.T) *models.Therapist {
	t.Helper()
	return &models.Therapist{
		ID:     "th-1",
		Name:   "Dana",
		Active: true,
		Schedule: &models.Schedule{
			SlotDuration: 30,
			TimeSlots: []models.TimeSlot{
				{ID: "s1", Weekday: models.Monday, Start: "08:00", End: "12:00", IsAvailable: true},
			},
			RestPeriods: []models.RestPeriod{
				{ID: "r1", Weekday: models.Monday, Start: "10:00", End: "10:30"},
			},
			BlockedSlots: []models.BlockedSlot{
				{ID: "b1", Date: "2025-01-20", Start: "11:00", End: "12:00"},
			},
		},
	}
}

func newBookingService(t *testing.T) (*DefaultAppointmentService, *fakeAppointmentRepo, *fakeEnqueuer) {
	t.Helper()
	apptRepo := newFakeAppointmentRepo()
	enqueuer := &fakeEnqueuer{}
	svc := &DefaultAppointmentService{
		Repo:          apptRepo,
		TherapistRepo: &fakeTherapistRepo{therapist: weekdayTherapist(t)},
		PatientRepo:   &fakePatientRepo{ids: map[string]bool{"pa-1": true}},
		Reminders:     enqueuer,
	}
	return svc, apptRepo, enqueuer
}

// 2025-01-13 and 2025-01-20 are Mondays.
func TestBookWithinAvailability(t *testing.T) {
	svc, _, _ := newBookingService(t)

	appt, err := svc.Book(BookingRequest{
		TherapistID: "th-1", PatientID: "pa-1",
		Date: "2025-01-13", Start: "08:30", End: "09:30",
	})
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if appt.Status != models.AppointmentPending {
		t.Errorf("new appointment status = %s, want PENDING", appt.Status)
	}
	if appt.ID == "" {
		t.Error("new appointment has no ID")
	}
}

func TestBookRejections(t *testing.T) {
	tests := []struct {
		name string
		req  BookingRequest
	}{
		{"outside working hours", BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "13:00", End: "14:00"}},
		{"wrong weekday", BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-14", Start: "08:30", End: "09:00"}},
		{"touches rest period", BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "09:45", End: "10:15"}},
		{"rest fully inside span", BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "09:30", End: "11:00"}},
		{"blocked date", BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-20", Start: "11:00", End: "11:30"}},
		{"block begins mid-span", BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-20", Start: "10:45", End: "11:15"}},
		{"spills past closing", BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "11:30", End: "12:30"}},
		{"malformed date", BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "Jan 13", Start: "08:30", End: "09:00"}},
		{"malformed time", BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "8am", End: "09:00"}},
		{"end before start", BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "09:00", End: "08:30"}},
		{"unknown patient", BookingRequest{TherapistID: "th-1", PatientID: "nobody", Date: "2025-01-13", Start: "08:30", End: "09:00"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newBookingService(t)
			if _, err := svc.Book(tc.req); err == nil {
				t.Errorf("Book(%+v) succeeded, want error", tc.req)
			}
		})
	}
}

func TestBookAcrossContiguousSlots(t *testing.T) {
	svc, _, _ := newBookingService(t)
	th := weekdayTherapist(t)
	th.Schedule.TimeSlots = append(th.Schedule.TimeSlots, models.TimeSlot{
		ID: "s2", Weekday: models.Monday, Start: "12:00", End: "14:00", IsAvailable: true,
	})
	svc.TherapistRepo = &fakeTherapistRepo{therapist: th}

	// Two back-to-back slots read as one bookable window.
	req := BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "11:30", End: "12:30"}
	if _, err := svc.Book(req); err != nil {
		t.Errorf("booking across contiguous slots failed: %v", err)
	}
}

func TestBookRejectsDoubleBooking(t *testing.T) {
	svc, _, _ := newBookingService(t)

	first := BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "08:30", End: "09:30"}
	if _, err := svc.Book(first); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	overlap := BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "09:00", End: "10:00"}
	if _, err := svc.Book(overlap); err == nil {
		t.Error("overlapping booking succeeded, want error")
	}

	// The half-open span means an adjacent booking is fine.
	adjacent := BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "09:30", End: "10:00"}
	if _, err := svc.Book(adjacent); err != nil {
		t.Errorf("back-to-back booking failed: %v", err)
	}
}

func TestBookRejectsInactiveTherapist(t *testing.T) {
	svc, _, _ := newBookingService(t)
	inactive := weekdayTherapist(t)
	inactive.Active = false
	svc.TherapistRepo = &fakeTherapistRepo{therapist: inactive}

	req := BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "08:30", End: "09:00"}
	if _, err := svc.Book(req); err == nil {
		t.Error("booking with inactive therapist succeeded, want error")
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to models.AppointmentStatus
		ok       bool
	}{
		{models.AppointmentPending, models.AppointmentConfirmed, true},
		{models.AppointmentPending, models.AppointmentCancelled, true},
		{models.AppointmentPending, models.AppointmentCompleted, false},
		{models.AppointmentConfirmed, models.AppointmentInProgress, true},
		{models.AppointmentConfirmed, models.AppointmentNoShow, true},
		{models.AppointmentInProgress, models.AppointmentCompleted, true},
		{models.AppointmentInProgress, models.AppointmentCancelled, false},
		{models.AppointmentCompleted, models.AppointmentConfirmed, false},
		{models.AppointmentCancelled, models.AppointmentPending, false},
		{models.AppointmentConfirmed, models.AppointmentConfirmed, true},
	}

	for _, tc := range tests {
		if got := validTransition(tc.from, tc.to); got != tc.ok {
			t.Errorf("validTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestConfirmEnqueuesReminder(t *testing.T) {
	svc, _, enqueuer := newBookingService(t)

	appt, err := svc.Book(BookingRequest{
		TherapistID: "th-1", PatientID: "pa-1",
		Date: "2025-01-13", Start: "08:30", End: "09:00",
	})
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	if _, err := svc.UpdateStatus(appt.ID, models.AppointmentConfirmed); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	if len(enqueuer.payloads) != 1 {
		t.Fatalf("got %d reminders, want 1", len(enqueuer.payloads))
	}
	if enqueuer.payloads[0].AppointmentID != appt.ID {
		t.Errorf("reminder references %s, want %s", enqueuer.payloads[0].AppointmentID, appt.ID)
	}
}

func TestCancelReleasesSpan(t *testing.T) {
	svc, _, _ := newBookingService(t)

	req := BookingRequest{TherapistID: "th-1", PatientID: "pa-1", Date: "2025-01-13", Start: "08:30", End: "09:00"}
	appt, err := svc.Book(req)
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	if err := svc.Cancel(appt.ID); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	// The same span can be booked again once the holder is cancelled.
	if _, err := svc.Book(req); err != nil {
		t.Errorf("rebooking cancelled span failed: %v", err)
	}
}
