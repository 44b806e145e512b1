package records

import (
	"fmt"
	"sort"
	"testing"

	"clinicore/models"
)

type fakeRecordRepo struct {
	forms map[string]*models.IntakeForm
	notes map[string]*models.ProgressNote
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{
		forms: map[string]*models.IntakeForm{},
		notes: map[string]*models.ProgressNote{},
	}
}

func (f *fakeRecordRepo) CreateIntake(form *models.IntakeForm) error {
	cp := *form
	f.forms[form.ID] = &cp
	return nil
}

func (f *fakeRecordRepo) UpdateIntake(form *models.IntakeForm) error {
	if _, ok := f.forms[form.ID]; !ok {
		return fmt.Errorf("intake form with id %s not found", form.ID)
	}
	cp := *form
	f.forms[form.ID] = &cp
	return nil
}

func (f *fakeRecordRepo) GetIntakeByID(id string) (*models.IntakeForm, error) {
	form, ok := f.forms[id]
	if !ok {
		return nil, nil
	}
	cp := *form
	return &cp, nil
}

func (f *fakeRecordRepo) ListIntakeByPatient(patientID string) ([]models.IntakeForm, error) {
	var out []models.IntakeForm
	for _, form := range f.forms {
		if form.PatientID == patientID {
			out = append(out, *form)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRecordRepo) CreateNote(note *models.ProgressNote) error {
	cp := *note
	f.notes[note.ID] = &cp
	return nil
}

func (f *fakeRecordRepo) UpdateNote(note *models.ProgressNote) error {
	if _, ok := f.notes[note.ID]; !ok {
		return fmt.Errorf("progress note with id %s not found", note.ID)
	}
	cp := *note
	f.notes[note.ID] = &cp
	return nil
}

func (f *fakeRecordRepo) DeleteNote(id string) error {
	delete(f.notes, id)
	return nil
}

func (f *fakeRecordRepo) GetNoteByID(id string) (*models.ProgressNote, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, nil
	}
	cp := *note
	return &cp, nil
}

func (f *fakeRecordRepo) ListNotesByPatient(patientID string) ([]models.ProgressNote, error) {
	var out []models.ProgressNote
	for _, note := range f.notes {
		if note.PatientID == patientID {
			out = append(out, *note)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) ListNotesByTherapist(therapistID string, fromDate, toDate string) ([]models.ProgressNote, error) {
	var out []models.ProgressNote
	for _, note := range f.notes {
		if note.TherapistID != therapistID {
			continue
		}
		if fromDate != "" && note.Date < fromDate {
			continue
		}
		if toDate != "" && note.Date > toDate {
			continue
		}
		out = append(out, *note)
	}
	return out, nil
}

func newRecordService() *DefaultRecordService {
	return &DefaultRecordService{Repo: newFakeRecordRepo()}
}

func TestIntakeLifecycle(t *testing.T) {
	svc := newRecordService()

	form, err := svc.StartIntake("pa-1", "")
	if err != nil {
		t.Fatalf("StartIntake returned error: %v", err)
	}
	if form.Status != models.IntakeDraft {
		t.Fatalf("new form status = %s, want DRAFT", form.Status)
	}
	if form.FormType != "intake" {
		t.Errorf("default form type = %q, want intake", form.FormType)
	}

	// Sections save in any order and can be re-saved while a draft.
	if _, err := svc.SaveIntakeSection(form.ID, "medical-history", map[string]string{"allergies": "none"}); err != nil {
		t.Fatalf("SaveIntakeSection returned error: %v", err)
	}
	form, err = svc.SaveIntakeSection(form.ID, "contact", map[string]string{"phone": "555-0101"})
	if err != nil {
		t.Fatalf("SaveIntakeSection returned error: %v", err)
	}
	if len(form.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(form.Sections))
	}

	form, err = svc.SubmitIntake(form.ID)
	if err != nil {
		t.Fatalf("SubmitIntake returned error: %v", err)
	}
	if form.Status != models.IntakeSubmitted || form.SubmittedAt == nil {
		t.Errorf("submitted form: status=%s submittedAt=%v", form.Status, form.SubmittedAt)
	}

	// Submitted forms are frozen.
	if _, err := svc.SaveIntakeSection(form.ID, "contact", nil); err == nil {
		t.Error("editing a submitted form succeeded, want error")
	}
	if _, err := svc.SubmitIntake(form.ID); err == nil {
		t.Error("double submit succeeded, want error")
	}

	form, err = svc.ReviewIntake(form.ID)
	if err != nil {
		t.Fatalf("ReviewIntake returned error: %v", err)
	}
	if form.Status != models.IntakeReviewed {
		t.Errorf("reviewed form status = %s, want REVIEWED", form.Status)
	}
}

func TestSubmitEmptyIntakeFails(t *testing.T) {
	svc := newRecordService()

	form, err := svc.StartIntake("pa-1", "intake")
	if err != nil {
		t.Fatalf("StartIntake returned error: %v", err)
	}
	if _, err := svc.SubmitIntake(form.ID); err == nil {
		t.Error("submitting an empty form succeeded, want error")
	}
}

func TestReviewRequiresSubmission(t *testing.T) {
	svc := newRecordService()

	form, err := svc.StartIntake("pa-1", "intake")
	if err != nil {
		t.Fatalf("StartIntake returned error: %v", err)
	}
	if _, err := svc.ReviewIntake(form.ID); err == nil {
		t.Error("reviewing a draft succeeded, want error")
	}
}

func TestAttachDocument(t *testing.T) {
	svc := newRecordService()

	form, err := svc.StartIntake("pa-1", "intake")
	if err != nil {
		t.Fatalf("StartIntake returned error: %v", err)
	}

	form, err = svc.AttachDocument(form.ID, models.Attachment{
		FileName: "referral.pdf",
		URL:      "intake/abc123",
	})
	if err != nil {
		t.Fatalf("AttachDocument returned error: %v", err)
	}
	if len(form.Attachments) != 1 {
		t.Fatalf("got %d attachments, want 1", len(form.Attachments))
	}
	if form.Attachments[0].ID == "" {
		t.Error("attachment was not assigned an ID")
	}

	if _, err := svc.AttachDocument(form.ID, models.Attachment{FileName: "empty.pdf"}); err == nil {
		t.Error("attachment without a URL succeeded, want error")
	}
}

func TestProgressNoteValidation(t *testing.T) {
	svc := newRecordService()

	valid := models.ProgressNote{
		PatientID: "pa-1", TherapistID: "th-1",
		Date: "2025-01-13", Summary: "Worked on articulation drills.",
	}
	note, err := svc.CreateProgressNote(valid)
	if err != nil {
		t.Fatalf("CreateProgressNote returned error: %v", err)
	}
	if note.ID == "" {
		t.Error("note was not assigned an ID")
	}

	tests := []struct {
		name string
		note models.ProgressNote
	}{
		{"missing therapist", models.ProgressNote{PatientID: "pa-1", Date: "2025-01-13", Summary: "x"}},
		{"missing summary", models.ProgressNote{PatientID: "pa-1", TherapistID: "th-1", Date: "2025-01-13"}},
		{"malformed date", models.ProgressNote{PatientID: "pa-1", TherapistID: "th-1", Date: "13/01/2025", Summary: "x"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateProgressNote(tc.note); err == nil {
				t.Errorf("CreateProgressNote(%+v) succeeded, want error", tc.note)
			}
		})
	}
}

func TestListNotesForTherapistRange(t *testing.T) {
	svc := newRecordService()

	for _, date := range []string{"2025-01-06", "2025-01-13", "2025-01-20"} {
		if _, err := svc.CreateProgressNote(models.ProgressNote{
			PatientID: "pa-1", TherapistID: "th-1", Date: date, Summary: "session",
		}); err != nil {
			t.Fatalf("CreateProgressNote returned error: %v", err)
		}
	}

	notes, err := svc.ListNotesForTherapist("th-1", "2025-01-10", "2025-01-17")
	if err != nil {
		t.Fatalf("ListNotesForTherapist returned error: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("got %d notes in range, want 1", len(notes))
	}
	if notes[0].Date != "2025-01-13" {
		t.Errorf("note date = %s, want 2025-01-13", notes[0].Date)
	}
}
