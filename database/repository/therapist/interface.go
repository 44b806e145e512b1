package therapistRepo

import (
	"clinicore/models"

	"go.mongodb.org/mongo-driver/bson"
)

// TherapistRepository defines data access methods for therapist documents.
type TherapistRepository interface {
	Create(t *models.Therapist) error
	Update(t *models.Therapist) error
	Delete(id string) error
	GetByID(id string) (*models.Therapist, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.Therapist, error)
	GetByEmailWithProjection(email string, projection bson.M) (*models.Therapist, error)
	GetAll(activeOnly bool) ([]models.Therapist, error)
	SetActive(id string, active bool) error
	SetSchedule(id string, schedule *models.Schedule) error
}
