// Package report computes weekly and monthly utilization reports from
// the availability engine's capacity aggregates, with Redis caching so
// dashboard refreshes do not recompute across every therapist.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinicore/config"
	appointmentRepo "clinicore/database/repository/appointment"
	therapistRepo "clinicore/database/repository/therapist"
	"clinicore/models"
	"clinicore/services/availability"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ReportService defines the reporting queries exposed to the admin
// dashboard.
type ReportService interface {
	// TherapistWeek reports one therapist's utilization for the business
	// week containing anchor.
	TherapistWeek(therapistID string, anchor time.Time) (*models.UtilizationReport, error)
	// TherapistMonth reports one therapist's utilization for a calendar
	// month.
	TherapistMonth(therapistID string, year int, month time.Month) (*models.UtilizationReport, error)
	// ClinicWeek aggregates weekly utilization across active therapists.
	ClinicWeek(anchor time.Time) (*models.ClinicSummary, error)
	// ClinicMonth aggregates monthly utilization across active therapists.
	ClinicMonth(year int, month time.Month) (*models.ClinicSummary, error)
	// InvalidateTherapist drops cached reports for a therapist after a
	// schedule or appointment change.
	InvalidateTherapist(therapistID string) error
}

// DefaultReportService is the production implementation.
type DefaultReportService struct {
	TherapistRepo   therapistRepo.TherapistRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	Cache           *redis.Client // optional; nil disables caching
}

func cacheTTL() time.Duration {
	secs := config.AppConfig.ReportCacheTTLSecs
	if secs <= 0 {
		secs = 300
	}
	return time.Duration(secs) * time.Second
}

// TherapistWeek reports one therapist's utilization for the business
// week containing anchor.
func (s *DefaultReportService) TherapistWeek(therapistID string, anchor time.Time) (*models.UtilizationReport, error) {
	week := availability.BusinessWeek(anchor)
	key := fmt.Sprintf("report:week:%s:%s", therapistID, week[0])

	if cached := s.cachedReport(key); cached != nil {
		return cached, nil
	}

	snapshot, err := s.snapshot(therapistID, week[0], week[len(week)-1])
	if err != nil {
		return nil, err
	}
	stats := availability.StatsForDates(snapshot, week)

	report := s.buildReport(snapshot, "week", week[0], week[len(week)-1], stats)
	s.cacheReport(key, report)
	return report, nil
}

// TherapistMonth reports one therapist's utilization for a calendar month.
func (s *DefaultReportService) TherapistMonth(therapistID string, year int, month time.Month) (*models.UtilizationReport, error) {
	dates := availability.MonthDates(year, month)
	if len(dates) == 0 {
		return nil, fmt.Errorf("invalid report month %d-%d", year, month)
	}
	key := fmt.Sprintf("report:month:%s:%04d-%02d", therapistID, year, month)

	if cached := s.cachedReport(key); cached != nil {
		return cached, nil
	}

	snapshot, err := s.snapshot(therapistID, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, err
	}
	stats := availability.StatsForDates(snapshot, dates)

	report := s.buildReport(snapshot, "month", dates[0], dates[len(dates)-1], stats)
	s.cacheReport(key, report)
	return report, nil
}

// ClinicWeek aggregates weekly utilization across active therapists.
func (s *DefaultReportService) ClinicWeek(anchor time.Time) (*models.ClinicSummary, error) {
	week := availability.BusinessWeek(anchor)
	return s.clinicSummary("week", week[0], week[len(week)-1], func(id string) (*models.UtilizationReport, error) {
		return s.TherapistWeek(id, anchor)
	})
}

// ClinicMonth aggregates monthly utilization across active therapists.
func (s *DefaultReportService) ClinicMonth(year int, month time.Month) (*models.ClinicSummary, error) {
	dates := availability.MonthDates(year, month)
	if len(dates) == 0 {
		return nil, fmt.Errorf("invalid report month %d-%d", year, month)
	}
	return s.clinicSummary("month", dates[0], dates[len(dates)-1], func(id string) (*models.UtilizationReport, error) {
		return s.TherapistMonth(id, year, month)
	})
}

func (s *DefaultReportService) clinicSummary(period, from, to string, perTherapist func(id string) (*models.UtilizationReport, error)) (*models.ClinicSummary, error) {
	therapists, err := s.TherapistRepo.GetAll(true)
	if err != nil {
		return nil, fmt.Errorf("failed to load therapists for clinic report: %w", err)
	}

	summary := models.ClinicSummary{
		Period:      period,
		From:        from,
		To:          to,
		Therapists:  []models.UtilizationReport{},
		GeneratedAt: time.Now(),
	}
	for i := range therapists {
		report, err := perTherapist(therapists[i].ID)
		if err != nil {
			return nil, err
		}
		summary.CapacityMinutes += report.CapacityMinutes
		summary.OccupiedMinutes += report.OccupiedMinutes
		summary.Therapists = append(summary.Therapists, *report)
	}
	return &summary, nil
}

// InvalidateTherapist drops cached reports for a therapist. Keys are
// scanned rather than tracked; the report keyspace is small.
func (s *DefaultReportService) InvalidateTherapist(therapistID string) error {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, pattern := range []string{
		fmt.Sprintf("report:week:%s:*", therapistID),
		fmt.Sprintf("report:month:%s:*", therapistID),
	} {
		iter := s.Cache.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			if err := s.Cache.Del(ctx, iter.Val()).Err(); err != nil {
				return fmt.Errorf("failed to invalidate report cache: %w", err)
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to scan report cache: %w", err)
		}
	}
	return nil
}

func (s *DefaultReportService) snapshot(therapistID, fromDate, toDate string) (*models.Therapist, error) {
	t, err := s.TherapistRepo.GetByID(therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapist: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("therapist with id %s not found", therapistID)
	}

	appts, err := s.AppointmentRepo.ListByTherapist(therapistID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for report: %w", err)
	}
	t.Appointments = appts
	return t, nil
}

func (s *DefaultReportService) buildReport(t *models.Therapist, period, from, to string, stats availability.PeriodStats) *models.UtilizationReport {
	return &models.UtilizationReport{
		TherapistID:     t.ID,
		TherapistName:   t.Name,
		Period:          period,
		From:            from,
		To:              to,
		CapacityMinutes: stats.CapacityMinutes,
		OccupiedMinutes: stats.OccupiedMinutes,
		EmptySlotCount:  stats.EmptySlotCount,
		GeneratedAt:     time.Now(),
	}
}

// cachedReport returns the cached report for key, or nil on miss. Cache
// failures degrade to recomputation.
func (s *DefaultReportService) cachedReport(key string) *models.UtilizationReport {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.Cache.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		zap.L().Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}

	var report models.UtilizationReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		zap.L().Warn("report cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &report
}

func (s *DefaultReportService) cacheReport(key string, report *models.UtilizationReport) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Cache.Set(ctx, key, data, cacheTTL()).Err(); err != nil {
		zap.L().Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
