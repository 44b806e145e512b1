package therapistRepo

import (
	"fmt"
	"time"

	"clinicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByIDWithProjection retrieves a therapist by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoTherapistRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Therapist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	findOpts := options.FindOne()
	if projection != nil {
		findOpts.SetProjection(projection)
	}

	var t models.Therapist
	err := r.coll.FindOne(ctx, bson.M{"id": id}, findOpts).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapist with id %s: %w", id, err)
	}
	return &t, nil
}

// GetByID retrieves the full therapist document.
func (r *MongoTherapistRepo) GetByID(id string) (*models.Therapist, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetByEmailWithProjection retrieves a therapist by email using a projection.
func (r *MongoTherapistRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Therapist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	findOpts := options.FindOne()
	if projection != nil {
		findOpts.SetProjection(projection)
	}

	var t models.Therapist
	err := r.coll.FindOne(ctx, bson.M{"email": email}, findOpts).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapist with email %s: %w", email, err)
	}
	return &t, nil
}

// GetAll returns all therapists, optionally restricted to active ones,
// sorted by name for stable listings.
func (r *MongoTherapistRepo) GetAll(activeOnly bool) ([]models.Therapist, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	defer cursor.Close(ctx)

	var therapists []models.Therapist
	if err := cursor.All(ctx, &therapists); err != nil {
		return nil, fmt.Errorf("failed to decode therapists: %w", err)
	}
	return therapists, nil
}
