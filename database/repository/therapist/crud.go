package therapistRepo

import (
	"fmt"
	"time"

	"clinicore/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new therapist document.
func (r *MongoTherapistRepo) Create(t *models.Therapist) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		return fmt.Errorf("failed to create therapist: %w", err)
	}
	return nil
}

// Update modifies an existing therapist document.
func (r *MongoTherapistRepo) Update(t *models.Therapist) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	t.UpdatedAt = time.Now()
	filter := bson.M{"id": t.ID}
	update := bson.M{"$set": t}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update therapist with id %s: %w", t.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", t.ID)
	}
	return nil
}

// Delete removes a therapist document by its ID.
func (r *MongoTherapistRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete therapist with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	return nil
}

// SetActive flips the active flag without touching the rest of the document.
func (r *MongoTherapistRepo) SetActive(id string, active bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"active": active, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set active for therapist %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	return nil
}

// SetSchedule replaces the therapist's schedule configuration. A nil
// schedule clears it, leaving the therapist with zero availability.
func (r *MongoTherapistRepo) SetSchedule(id string, schedule *models.Schedule) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var update bson.M
	if schedule == nil {
		update = bson.M{
			"$unset": bson.M{"schedule": ""},
			"$set":   bson.M{"updated_at": time.Now()},
		}
	} else {
		update = bson.M{"$set": bson.M{"schedule": schedule, "updated_at": time.Now()}}
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set schedule for therapist %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	return nil
}
