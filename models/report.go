package models

import "time"

// UtilizationReport is the cached weekly or monthly utilization summary
// for one therapist. Capacity and occupancy are minute counts produced
// by the availability engine.
type UtilizationReport struct {
	TherapistID     string    `json:"therapistId"`
	TherapistName   string    `json:"therapistName"`
	Period          string    `json:"period"` // "week" or "month"
	From            string    `json:"from"`   // first date in the period, "YYYY-MM-DD"
	To              string    `json:"to"`
	CapacityMinutes int       `json:"capacityMinutes"`
	OccupiedMinutes int       `json:"occupiedMinutes"`
	EmptySlotCount  int       `json:"emptySlotCount"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// ClinicSummary aggregates utilization across all active therapists.
type ClinicSummary struct {
	Period          string              `json:"period"`
	From            string              `json:"from"`
	To              string              `json:"to"`
	CapacityMinutes int                 `json:"capacityMinutes"`
	OccupiedMinutes int                 `json:"occupiedMinutes"`
	Therapists      []UtilizationReport `json:"therapists"`
	GeneratedAt     time.Time           `json:"generatedAt"`
}

// ReminderPayload is the asynq task payload for appointment reminders.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	TherapistID   string `json:"therapistId"`
	PatientID     string `json:"patientId"`
	Date          string `json:"date"`
	Start         string `json:"start"`
}
