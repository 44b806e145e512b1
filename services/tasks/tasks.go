// Package tasks builds and enqueues asynq background tasks: appointment
// reminders and the nightly utilization precompute.
package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"clinicore/config"
	"clinicore/models"
	"clinicore/services/availability"

	"github.com/hibiken/asynq"
)

const (
	// TypeAppointmentReminder notifies the patient ahead of a confirmed
	// appointment.
	TypeAppointmentReminder = "appointment:reminder"
	// TypeUtilizationPrecompute warms the report cache overnight.
	TypeUtilizationPrecompute = "report:precompute"
)

// reminderLeadTime is how long before the appointment start the
// reminder fires.
const reminderLeadTime = 24 * time.Hour

// NewReminderTask builds the reminder task with its scheduling options.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(3)}
	return task, opts, nil
}

// NewPrecomputeTask builds the nightly report precompute task.
func NewPrecomputeTask(fireAt time.Time) (*asynq.Task, []asynq.Option) {
	task := asynq.NewTask(TypeUtilizationPrecompute, nil)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(1)}
	return task, opts
}

// QueueClient wraps the asynq client used to enqueue tasks from request
// handlers and from the worker itself.
type QueueClient struct {
	client *asynq.Client
}

// NewQueueClient builds the client from the application configuration.
func NewQueueClient() *QueueClient {
	return &QueueClient{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskQueueDB,
		}),
	}
}

// Close releases the underlying asynq client.
func (q *QueueClient) Close() error {
	return q.client.Close()
}

// EnqueueReminder schedules an appointment reminder ahead of its start
// time. Appointments starting sooner than the lead time get the
// reminder immediately.
func (q *QueueClient) EnqueueReminder(payload models.ReminderPayload) error {
	startsAt, err := appointmentStart(payload.Date, payload.Start)
	if err != nil {
		return err
	}

	fireAt := startsAt.Add(-reminderLeadTime)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := q.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// EnqueuePrecompute schedules the report precompute for the given time.
func (q *QueueClient) EnqueuePrecompute(fireAt time.Time) error {
	task, opts := NewPrecomputeTask(fireAt)
	if _, err := q.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue report precompute: %w", err)
	}
	return nil
}

// appointmentStart combines an appointment's date and start clock into a
// local timestamp.
func appointmentStart(date, start string) (time.Time, error) {
	day, ok := availability.ParseDate(date)
	if !ok {
		return time.Time{}, fmt.Errorf("malformed appointment date %q", date)
	}
	mins := availability.ToMinutes(start)
	if mins < 0 {
		return time.Time{}, fmt.Errorf("malformed appointment start %q", start)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, mins, 0, 0, time.Local), nil
}
