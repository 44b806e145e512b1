// Package cron runs the asynq background worker: appointment reminders
// and the nightly report precompute.
package cron

import (
	"context"
	"encoding/json"
	"time"

	"clinicore/config"
	"clinicore/models"
	"clinicore/services/report"
	"clinicore/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitWorker starts the background task worker. Reminder delivery is a
// structured log entry for now; the front desk display tails it.
func InitWorker(reportSvc report.ReportService, queue *tasks.QueueClient) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentReminder, handleReminderTask)
	mux.HandleFunc(tasks.TypeUtilizationPrecompute, handlePrecomputeTask(reportSvc, queue))

	// Seed the first precompute run; the handler re-enqueues itself.
	if err := queue.EnqueuePrecompute(nextMidnight()); err != nil {
		zap.L().Warn("failed to schedule initial report precompute", zap.Error(err))
	}

	go func() {
		zap.L().Info("starting background task worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				zap.L().Error("task worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					zap.L().Fatal("task worker could not start, giving up")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		zap.L().Error("invalid reminder payload", zap.Error(err))
		return err
	}

	zap.L().Info("appointment reminder due",
		zap.String("appointmentId", p.AppointmentID),
		zap.String("patientId", p.PatientID),
		zap.String("therapistId", p.TherapistID),
		zap.String("date", p.Date),
		zap.String("start", p.Start),
	)
	return nil
}

// handlePrecomputeTask warms the clinic report caches so the morning
// dashboard load is instant, then schedules the next run.
func handlePrecomputeTask(reportSvc report.ReportService, queue *tasks.QueueClient) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		now := time.Now()

		if _, err := reportSvc.ClinicWeek(now); err != nil {
			zap.L().Error("weekly report precompute failed", zap.Error(err))
		}
		if _, err := reportSvc.ClinicMonth(now.Year(), now.Month()); err != nil {
			zap.L().Error("monthly report precompute failed", zap.Error(err))
		}

		if err := queue.EnqueuePrecompute(nextMidnight()); err != nil {
			zap.L().Warn("failed to schedule next report precompute", zap.Error(err))
		}
		return nil
	}
}

func nextMidnight() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 5, 0, 0, time.Local)
}
