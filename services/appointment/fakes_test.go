package appointment

import (
	"clinicore/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeTherapistRepo serves a single therapist.
type fakeTherapistRepo struct {
	therapist *models.Therapist
}

func (f *fakeTherapistRepo) Create(t *models.Therapist) error { return nil }
func (f *fakeTherapistRepo) Update(t *models.Therapist) error { return nil }
func (f *fakeTherapistRepo) Delete(id string) error           { return nil }

func (f *fakeTherapistRepo) GetByID(id string) (*models.Therapist, error) {
	if f.therapist == nil || f.therapist.ID != id {
		return nil, nil
	}
	cp := *f.therapist
	return &cp, nil
}

func (f *fakeTherapistRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Therapist, error) {
	return f.GetByID(id)
}

func (f *fakeTherapistRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Therapist, error) {
	if f.therapist == nil || f.therapist.Email != email {
		return nil, nil
	}
	cp := *f.therapist
	return &cp, nil
}

func (f *fakeTherapistRepo) GetAll(activeOnly bool) ([]models.Therapist, error) {
	if f.therapist == nil || (activeOnly && !f.therapist.Active) {
		return nil, nil
	}
	return []models.Therapist{*f.therapist}, nil
}

func (f *fakeTherapistRepo) SetActive(id string, active bool) error {
	if f.therapist != nil && f.therapist.ID == id {
		f.therapist.Active = active
	}
	return nil
}

func (f *fakeTherapistRepo) SetSchedule(id string, schedule *models.Schedule) error {
	if f.therapist != nil && f.therapist.ID == id {
		f.therapist.Schedule = schedule
	}
	return nil
}

// fakePatientRepo recognizes a fixed set of patient IDs.
type fakePatientRepo struct {
	ids map[string]bool
}

func (f *fakePatientRepo) Create(p *models.Patient) error { return nil }
func (f *fakePatientRepo) Update(p *models.Patient) error { return nil }
func (f *fakePatientRepo) Delete(id string) error         { return nil }

func (f *fakePatientRepo) GetByID(id string) (*models.Patient, error) {
	if !f.ids[id] {
		return nil, nil
	}
	return &models.Patient{ID: id, FirstName: "Test", LastName: "Patient", Active: true}, nil
}

func (f *fakePatientRepo) GetAll(activeOnly bool) ([]models.Patient, error) { return nil, nil }
func (f *fakePatientRepo) Search(query string) ([]models.Patient, error)    { return nil, nil }
