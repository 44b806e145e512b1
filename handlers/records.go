package handlers

import (
	"net/http"

	"clinicore/models"
	"clinicore/services/records"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecordHandler exposes intake form and progress note endpoints.
type RecordHandler struct {
	Service records.RecordService
}

// StartIntakeHandler handles POST /records/intake.
func (h *RecordHandler) StartIntakeHandler(c *gin.Context) {
	var req struct {
		PatientID string `json:"patientId" binding:"required"`
		FormType  string `json:"formType,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.Service.StartIntake(req.PatientID, req.FormType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, form)
}

// SaveIntakeSectionHandler handles PUT /records/intake/:id/sections/:section.
func (h *RecordHandler) SaveIntakeSectionHandler(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.Service.SaveIntakeSection(c.Param("id"), c.Param("section"), fields)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, form)
}

// SubmitIntakeHandler handles POST /records/intake/:id/submit.
func (h *RecordHandler) SubmitIntakeHandler(c *gin.Context) {
	logger := utils.GetLogger()

	form, err := h.Service.SubmitIntake(c.Param("id"))
	if err != nil {
		logger.Warn("Intake submission rejected", zap.String("formId", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, form)
}

// ReviewIntakeHandler handles POST /records/intake/:id/review.
func (h *RecordHandler) ReviewIntakeHandler(c *gin.Context) {
	form, err := h.Service.ReviewIntake(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, form)
}

// GetIntakeHandler handles GET /records/intake/:id.
func (h *RecordHandler) GetIntakeHandler(c *gin.Context) {
	form, err := h.Service.GetIntake(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, form)
}

// ListIntakeHandler handles GET /records/intake/patient/:id.
func (h *RecordHandler) ListIntakeHandler(c *gin.Context) {
	forms, err := h.Service.ListIntakeForPatient(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, forms)
}

// CreateNoteHandler handles POST /records/notes.
func (h *RecordHandler) CreateNoteHandler(c *gin.Context) {
	var note models.ProgressNote
	if err := c.ShouldBindJSON(&note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.CreateProgressNote(note)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateNoteHandler handles PUT /records/notes/:id.
func (h *RecordHandler) UpdateNoteHandler(c *gin.Context) {
	var note models.ProgressNote
	if err := c.ShouldBindJSON(&note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	note.ID = c.Param("id")

	updated, err := h.Service.UpdateProgressNote(note)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteNoteHandler handles DELETE /records/notes/:id.
func (h *RecordHandler) DeleteNoteHandler(c *gin.Context) {
	if err := h.Service.DeleteProgressNote(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Progress note deleted"})
}

// ListNotesForPatientHandler handles GET /records/notes/patient/:id.
func (h *RecordHandler) ListNotesForPatientHandler(c *gin.Context) {
	notes, err := h.Service.ListNotesForPatient(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}

// ListNotesForTherapistHandler handles GET /records/notes/therapist/:id
// with optional ?from= and ?to= date bounds.
func (h *RecordHandler) ListNotesForTherapistHandler(c *gin.Context) {
	notes, err := h.Service.ListNotesForTherapist(c.Param("id"), c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}
