package appointment

import (
	"fmt"
	"sort"

	appointmentRepo "clinicore/database/repository/appointment"
	patientRepo "clinicore/database/repository/patient"
	therapistRepo "clinicore/database/repository/therapist"
	"clinicore/models"
	"clinicore/services/availability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo          appointmentRepo.AppointmentRepository
	TherapistRepo therapistRepo.TherapistRepository
	PatientRepo   patientRepo.PatientRepository
	Reminders     ReminderEnqueuer
	Reports       ReportInvalidator
}

// invalidateReports is best-effort; a stale cache entry expires on its
// own TTL anyway.
func (s *DefaultAppointmentService) invalidateReports(therapistID string) {
	if s.Reports == nil {
		return
	}
	if err := s.Reports.InvalidateTherapist(therapistID); err != nil {
		zap.L().Warn("failed to invalidate report cache",
			zap.String("therapistId", therapistID), zap.Error(err))
	}
}

// Book validates the requested span against the therapist's schedule and
// existing appointments, then creates the record in PENDING state.
//
// The whole span must sit inside working hours and stay clear of every
// rest period, blocked window and active appointment: a span touching
// any of them is rejected rather than silently overbooked.
func (s *DefaultAppointmentService) Book(req BookingRequest) (*models.Appointment, error) {
	date := availability.NormalizeDate(req.Date)
	if date == "" {
		return nil, fmt.Errorf("malformed date %q (want YYYY-MM-DD)", req.Date)
	}
	startMin := availability.ToMinutes(req.Start)
	endMin := availability.ToMinutes(req.End)
	if startMin < 0 || endMin < 0 {
		return nil, fmt.Errorf("malformed time (want HH:MM)")
	}
	if endMin <= startMin {
		return nil, fmt.Errorf("appointment end must be after start")
	}

	patient, err := s.PatientRepo.GetByID(req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check patient: %w", err)
	}
	if patient == nil {
		return nil, fmt.Errorf("patient with id %s not found", req.PatientID)
	}

	snapshot, err := s.snapshot(req.TherapistID, date)
	if err != nil {
		return nil, err
	}
	if !snapshot.Active {
		return nil, fmt.Errorf("therapist %s is not active", req.TherapistID)
	}

	if err := checkSpanBookable(snapshot, date, startMin, endMin); err != nil {
		return nil, err
	}

	appt := models.Appointment{
		ID:          uuid.New().String(),
		TherapistID: req.TherapistID,
		PatientID:   req.PatientID,
		Date:        date,
		Start:       req.Start,
		End:         req.End,
		Kind:        req.Kind,
		Notes:       req.Notes,
		Status:      models.AppointmentPending,
	}
	if err := s.Repo.Create(&appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	s.invalidateReports(appt.TherapistID)
	return &appt, nil
}

// checkSpanBookable validates the half-open span [startMin, endMin)
// against the therapist's schedule and existing appointments as whole
// intervals, so an exception window landing anywhere inside the span
// rejects it, however narrow.
func checkSpanBookable(t *models.Therapist, date string, startMin, endMin int) error {
	day := availability.WeekdayOf(date)

	contained := false
	for _, w := range workingIntervals(t.Schedule, day) {
		if startMin >= w[0] && endMin <= w[1] {
			contained = true
			break
		}
	}
	if !contained {
		return fmt.Errorf("therapist has no working hours covering %s-%s on %s",
			availability.FormatMinutes(startMin), availability.FormatMinutes(endMin), date)
	}

	for _, r := range t.Schedule.RestPeriods {
		if r.Weekday != day {
			continue
		}
		if availability.OverlapMinutes(startMin, endMin, availability.ToMinutes(r.Start), availability.ToMinutes(r.End)) > 0 {
			return fmt.Errorf("requested span overlaps a rest period on %s", date)
		}
	}
	for _, b := range t.Schedule.BlockedSlots {
		if availability.NormalizeDate(b.Date) != date {
			continue
		}
		if availability.OverlapMinutes(startMin, endMin, availability.ToMinutes(b.Start), availability.ToMinutes(b.End)) > 0 {
			return fmt.Errorf("requested span overlaps a blocked window on %s", date)
		}
	}

	for _, a := range t.Appointments {
		if !a.Status.IsActive() || availability.NormalizeDate(a.Date) != date {
			continue
		}
		if availability.OverlapMinutes(startMin, endMin, availability.ToMinutes(a.Start), availability.ToMinutes(a.End)) > 0 {
			return fmt.Errorf("therapist already has an appointment from %s to %s on %s", a.Start, a.End, date)
		}
	}
	return nil
}

// workingIntervals merges the weekday's available time slots into
// continuous [start, end) intervals in minutes, so back-to-back slots
// read as one bookable window.
func workingIntervals(sched *models.Schedule, day models.Weekday) [][2]int {
	if sched == nil {
		return nil
	}

	var spans [][2]int
	for _, s := range sched.TimeSlots {
		if s.Weekday != day || !s.IsAvailable {
			continue
		}
		start := availability.ToMinutes(s.Start)
		end := availability.ToMinutes(s.End)
		if start < 0 || end <= start {
			continue
		}
		spans = append(spans, [2]int{start, end})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	var merged [][2]int
	for _, sp := range spans {
		if n := len(merged); n > 0 && sp[0] <= merged[n-1][1] {
			if sp[1] > merged[n-1][1] {
				merged[n-1][1] = sp[1]
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// snapshot loads the therapist with the day's appointments attached.
func (s *DefaultAppointmentService) snapshot(therapistID, date string) (*models.Therapist, error) {
	t, err := s.TherapistRepo.GetByID(therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapist: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("therapist with id %s not found", therapistID)
	}

	appts, err := s.Repo.ListByTherapist(therapistID, date, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing appointments: %w", err)
	}
	t.Appointments = appts
	return t, nil
}

// UpdateStatus applies a lifecycle transition and enqueues a reminder
// when the appointment is confirmed.
func (s *DefaultAppointmentService) UpdateStatus(id string, status models.AppointmentStatus) (*models.Appointment, error) {
	appt, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !validTransition(appt.Status, status) {
		return nil, fmt.Errorf("cannot move appointment from %s to %s", appt.Status, status)
	}
	if err := s.Repo.SetStatus(id, status); err != nil {
		return nil, err
	}
	appt.Status = status

	// Cancellations and no-shows release occupied minutes.
	if status == models.AppointmentCancelled || status == models.AppointmentNoShow {
		s.invalidateReports(appt.TherapistID)
	}

	if status == models.AppointmentConfirmed && s.Reminders != nil {
		payload := models.ReminderPayload{
			AppointmentID: appt.ID,
			TherapistID:   appt.TherapistID,
			PatientID:     appt.PatientID,
			Date:          appt.Date,
			Start:         appt.Start,
		}
		if err := s.Reminders.EnqueueReminder(payload); err != nil {
			// Reminder delivery is best-effort; the booking itself stands.
			zap.L().Warn("failed to enqueue appointment reminder",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
	return appt, nil
}

func validTransition(from, to models.AppointmentStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.AppointmentPending:
		return to == models.AppointmentConfirmed || to == models.AppointmentCancelled
	case models.AppointmentConfirmed:
		return to == models.AppointmentInProgress || to == models.AppointmentCancelled || to == models.AppointmentNoShow
	case models.AppointmentInProgress:
		return to == models.AppointmentCompleted
	default:
		// Completed, cancelled and no-show are terminal.
		return false
	}
}

// Cancel marks the appointment cancelled, releasing its span.
func (s *DefaultAppointmentService) Cancel(id string) error {
	_, err := s.UpdateStatus(id, models.AppointmentCancelled)
	return err
}

// GetByID retrieves one appointment.
func (s *DefaultAppointmentService) GetByID(id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, fmt.Errorf("appointment with id %s not found", id)
	}
	return appt, nil
}

// ListForTherapist returns a therapist's appointments in a date range.
func (s *DefaultAppointmentService) ListForTherapist(therapistID, fromDate, toDate string) ([]models.Appointment, error) {
	return s.Repo.ListByTherapist(therapistID, fromDate, toDate)
}

// ListForPatient returns all appointments of a patient.
func (s *DefaultAppointmentService) ListForPatient(patientID string) ([]models.Appointment, error) {
	return s.Repo.ListByPatient(patientID)
}
