package recordsRepo

import (
	"context"
	"fmt"
	"time"

	"clinicore/database"
	"clinicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRecordRepo implements RecordRepository on two collections:
// intake_forms and progress_notes.
type MongoRecordRepo struct {
	intakes *mongo.Collection
	notes   *mongo.Collection
}

// NewMongoRecordRepo creates a new instance of RecordRepository using MongoDB.
func NewMongoRecordRepo() RecordRepository {
	repo := &MongoRecordRepo{
		intakes: database.Collection("intake_forms"),
		notes:   database.Collection("progress_notes"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRecordRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	_, err := r.intakes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create intake indexes: %w", err)
	}

	_, err = r.notes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "therapist_id", Value: 1}, {Key: "date", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create note indexes: %w", err)
	}
	return nil
}

// CreateIntake inserts a new intake form document.
func (r *MongoRecordRepo) CreateIntake(form *models.IntakeForm) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	form.CreatedAt = now
	form.UpdatedAt = now

	_, err := r.intakes.InsertOne(ctx, form)
	if err != nil {
		return fmt.Errorf("failed to create intake form: %w", err)
	}
	return nil
}

// UpdateIntake modifies an existing intake form document.
func (r *MongoRecordRepo) UpdateIntake(form *models.IntakeForm) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	form.UpdatedAt = time.Now()
	result, err := r.intakes.UpdateOne(ctx, bson.M{"id": form.ID}, bson.M{"$set": form})
	if err != nil {
		return fmt.Errorf("failed to update intake form with id %s: %w", form.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("intake form with id %s not found", form.ID)
	}
	return nil
}

// GetIntakeByID retrieves an intake form by its unique ID.
func (r *MongoRecordRepo) GetIntakeByID(id string) (*models.IntakeForm, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var form models.IntakeForm
	err := r.intakes.FindOne(ctx, bson.M{"id": id}).Decode(&form)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intake form with id %s: %w", id, err)
	}
	return &form, nil
}

// ListIntakeByPatient returns a patient's intake forms, newest first.
func (r *MongoRecordRepo) ListIntakeByPatient(patientID string) ([]models.IntakeForm, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.intakes.Find(ctx, bson.M{"patient_id": patientID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list intake forms: %w", err)
	}
	defer cursor.Close(ctx)

	var forms []models.IntakeForm
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, fmt.Errorf("failed to decode intake forms: %w", err)
	}
	return forms, nil
}

// CreateNote inserts a new progress note document.
func (r *MongoRecordRepo) CreateNote(note *models.ProgressNote) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.notes.InsertOne(ctx, note)
	if err != nil {
		return fmt.Errorf("failed to create progress note: %w", err)
	}
	return nil
}

// UpdateNote modifies an existing progress note document.
func (r *MongoRecordRepo) UpdateNote(note *models.ProgressNote) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	note.UpdatedAt = time.Now()
	result, err := r.notes.UpdateOne(ctx, bson.M{"id": note.ID}, bson.M{"$set": note})
	if err != nil {
		return fmt.Errorf("failed to update progress note with id %s: %w", note.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("progress note with id %s not found", note.ID)
	}
	return nil
}

// DeleteNote removes a progress note by its ID.
func (r *MongoRecordRepo) DeleteNote(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.notes.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete progress note with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("progress note with id %s not found", id)
	}
	return nil
}

// GetNoteByID retrieves a progress note by its unique ID.
func (r *MongoRecordRepo) GetNoteByID(id string) (*models.ProgressNote, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var note models.ProgressNote
	err := r.notes.FindOne(ctx, bson.M{"id": id}).Decode(&note)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress note with id %s: %w", id, err)
	}
	return &note, nil
}

// ListNotesByPatient returns a patient's progress notes, newest first.
func (r *MongoRecordRepo) ListNotesByPatient(patientID string) ([]models.ProgressNote, error) {
	return r.listNotes(bson.M{"patient_id": patientID})
}

// ListNotesByTherapist returns a therapist's notes, optionally bounded by
// an inclusive date range.
func (r *MongoRecordRepo) ListNotesByTherapist(therapistID string, fromDate, toDate string) ([]models.ProgressNote, error) {
	filter := bson.M{"therapist_id": therapistID}
	dateFilter := bson.M{}
	if fromDate != "" {
		dateFilter["$gte"] = fromDate
	}
	if toDate != "" {
		dateFilter["$lte"] = toDate
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}
	return r.listNotes(filter)
}

func (r *MongoRecordRepo) listNotes(filter bson.M) ([]models.ProgressNote, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.notes.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress notes: %w", err)
	}
	defer cursor.Close(ctx)

	var notes []models.ProgressNote
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode progress notes: %w", err)
	}
	return notes, nil
}
