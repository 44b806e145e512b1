package appointmentRepo

import (
	"fmt"
	"time"

	"clinicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoAppointmentRepo) find(filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

// ListByTherapist returns a therapist's appointments, optionally bounded
// by an inclusive "YYYY-MM-DD" date range. Dates sort lexicographically
// in that format, so range filters work on the raw strings.
func (r *MongoAppointmentRepo) ListByTherapist(therapistID string, fromDate, toDate string) ([]models.Appointment, error) {
	filter := bson.M{"therapist_id": therapistID}
	if dateFilter := rangeFilter(fromDate, toDate); dateFilter != nil {
		filter["date"] = dateFilter
	}
	return r.find(filter)
}

// ListByPatient returns all appointments for one patient.
func (r *MongoAppointmentRepo) ListByPatient(patientID string) ([]models.Appointment, error) {
	return r.find(bson.M{"patient_id": patientID})
}

// ListByDateRange returns every appointment in the inclusive date range,
// across all therapists.
func (r *MongoAppointmentRepo) ListByDateRange(fromDate, toDate string) ([]models.Appointment, error) {
	filter := bson.M{}
	if dateFilter := rangeFilter(fromDate, toDate); dateFilter != nil {
		filter["date"] = dateFilter
	}
	return r.find(filter)
}

func rangeFilter(fromDate, toDate string) bson.M {
	f := bson.M{}
	if fromDate != "" {
		f["$gte"] = fromDate
	}
	if toDate != "" {
		f["$lte"] = toDate
	}
	if len(f) == 0 {
		return nil
	}
	return f
}
