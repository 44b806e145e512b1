// Seed harness: wipes and repopulates the local database with a
// realistic clinic so the calendar and reports have something to show.
// Run it against a development database only.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"clinicore/config"
	"clinicore/database"
	"clinicore/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const (
	therapistCount = 6
	patientCount   = 40
)

var specialties = []string{
	"Speech Therapy", "Occupational Therapy", "Physiotherapy",
	"Behavioral Therapy", "Child Psychology",
}

var appointmentKinds = []string{"intake", "session", "evaluation", "follow-up"}

func main() {
	config.LoadConfig()
	database.InitDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range []string{"therapists", "patients", "appointments", "users", "intake_forms", "progress_notes"} {
		if _, err := database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	gofakeit.Seed(time.Now().UnixNano())

	therapists := seedTherapists(ctx)
	patients := seedPatients(ctx, therapists)
	seedAppointments(ctx, therapists, patients)
	seedUsers(ctx, therapists)

	log.Printf("Seeded %d therapists, %d patients, plus appointments and accounts", len(therapists), len(patients))
}

func seedTherapists(ctx context.Context) []models.Therapist {
	now := time.Now()
	var therapists []models.Therapist
	var docs []interface{}

	for i := 0; i < therapistCount; i++ {
		t := models.Therapist{
			ID:        uuid.New().String(),
			Name:      gofakeit.Name(),
			Email:     gofakeit.Email(),
			Phone:     gofakeit.Phone(),
			Specialty: specialties[i%len(specialties)],
			LicenseNo: fmt.Sprintf("LIC-%05d", gofakeit.Number(10000, 99999)),
			Active:    true,
			Schedule:  randomSchedule(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		therapists = append(therapists, t)
		docs = append(docs, t)
	}

	if _, err := database.Collection("therapists").InsertMany(ctx, docs); err != nil {
		log.Fatalf("Failed to seed therapists: %v", err)
	}
	return therapists
}

// randomSchedule builds a plausible working week: morning and afternoon
// windows on business days, a lunch rest, and one blocked afternoon in
// the coming week.
func randomSchedule() *models.Schedule {
	schedule := &models.Schedule{
		SlotDuration: 30,
		BreakBetween: 10,
	}

	for _, day := range models.BusinessDays {
		// Some therapists skip one weekday.
		if rand.Intn(10) == 0 {
			continue
		}
		schedule.TimeSlots = append(schedule.TimeSlots,
			models.TimeSlot{
				ID:          uuid.New().String(),
				Weekday:     day,
				Start:       "08:00",
				End:         "12:00",
				IsAvailable: true,
				Kinds:       appointmentKinds,
			},
			models.TimeSlot{
				ID:          uuid.New().String(),
				Weekday:     day,
				Start:       "13:00",
				End:         "17:00",
				IsAvailable: true,
				Kinds:       appointmentKinds,
			},
		)
		schedule.RestPeriods = append(schedule.RestPeriods, models.RestPeriod{
			ID:      uuid.New().String(),
			Weekday: day,
			Start:   "12:00",
			End:     "13:00",
		})
	}

	blockedDay := time.Now().AddDate(0, 0, 1+rand.Intn(5))
	schedule.BlockedSlots = append(schedule.BlockedSlots, models.BlockedSlot{
		ID:     uuid.New().String(),
		Date:   blockedDay.Format("2006-01-02"),
		Start:  "14:00",
		End:    "17:00",
		Reason: "staff training",
	})
	return schedule
}

func seedPatients(ctx context.Context, therapists []models.Therapist) []models.Patient {
	now := time.Now()
	var patients []models.Patient
	var docs []interface{}

	for i := 0; i < patientCount; i++ {
		birth := gofakeit.DateRange(
			time.Now().AddDate(-14, 0, 0),
			time.Now().AddDate(-3, 0, 0),
		)
		p := models.Patient{
			ID:                uuid.New().String(),
			FirstName:         gofakeit.FirstName(),
			LastName:          gofakeit.LastName(),
			Email:             gofakeit.Email(),
			Phone:             gofakeit.Phone(),
			BirthDate:         birth.Format("2006-01-02"),
			GuardianName:      gofakeit.Name(),
			AssignedTherapist: therapists[i%len(therapists)].ID,
			Active:            true,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		patients = append(patients, p)
		docs = append(docs, p)
	}

	if _, err := database.Collection("patients").InsertMany(ctx, docs); err != nil {
		log.Fatalf("Failed to seed patients: %v", err)
	}
	return patients
}

// seedAppointments fills the current business week with half-hour and
// hour-long sessions, leaving gaps so the calendar shows free slots too.
func seedAppointments(ctx context.Context, therapists []models.Therapist, patients []models.Patient) {
	now := time.Now()
	monday := now.AddDate(0, 0, -(int(now.Weekday())+6)%7)

	statuses := []models.AppointmentStatus{
		models.AppointmentConfirmed, models.AppointmentConfirmed,
		models.AppointmentPending, models.AppointmentCompleted,
		models.AppointmentCancelled,
	}

	var docs []interface{}
	patientIdx := 0
	for _, t := range therapists {
		for day := 0; day < 5; day++ {
			date := monday.AddDate(0, 0, day).Format("2006-01-02")
			for _, start := range []string{"08:00", "09:30", "13:00", "15:00"} {
				// Roughly half the slots stay open.
				if rand.Intn(2) == 0 {
					continue
				}
				startClock, endClock := sessionSpan(start)
				docs = append(docs, models.Appointment{
					ID:          uuid.New().String(),
					TherapistID: t.ID,
					PatientID:   patients[patientIdx%len(patients)].ID,
					Date:        date,
					Start:       startClock,
					End:         endClock,
					Kind:        appointmentKinds[rand.Intn(len(appointmentKinds))],
					Status:      statuses[rand.Intn(len(statuses))],
					CreatedAt:   now,
					UpdatedAt:   now,
				})
				patientIdx++
			}
		}
	}

	if len(docs) == 0 {
		return
	}
	if _, err := database.Collection("appointments").InsertMany(ctx, docs); err != nil {
		log.Fatalf("Failed to seed appointments: %v", err)
	}
}

func sessionSpan(start string) (string, string) {
	var h, m int
	fmt.Sscanf(start, "%d:%d", &h, &m)
	dur := 30
	if rand.Intn(2) == 0 {
		dur = 60
	}
	end := h*60 + m + dur
	return fmt.Sprintf("%02d:%02d", h, m), fmt.Sprintf("%02d:%02d", end/60, end%60)
}

func seedUsers(ctx context.Context, therapists []models.Therapist) {
	now := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	docs := []interface{}{
		models.User{
			ID: uuid.New().String(), Name: "Clinic Admin", Email: "admin@clinic.local",
			Password: string(hash), Role: models.RoleAdmin, Active: true,
			CreatedAt: now, UpdatedAt: now,
		},
		models.User{
			ID: uuid.New().String(), Name: "Front Desk", Email: "reception@clinic.local",
			Password: string(hash), Role: models.RoleReception, Active: true,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, t := range therapists {
		docs = append(docs, models.User{
			ID: uuid.New().String(), Name: t.Name, Email: t.Email,
			Password: string(hash), Role: models.RoleTherapist, TherapistID: t.ID,
			Active: true, CreatedAt: now, UpdatedAt: now,
		})
	}

	if _, err := database.Collection("users").InsertMany(ctx, docs); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
}
