package handlers

import (
	"net/http"

	"clinicore/models"
	"clinicore/services/patient"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PatientHandler exposes patient registry endpoints.
type PatientHandler struct {
	Service patient.PatientService
}

// RegisterPatientHandler handles POST /patients.
func (h *PatientHandler) RegisterPatientHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var p models.Patient
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.RegisterPatient(p)
	if err != nil {
		logger.Error("Failed to register patient", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdatePatientHandler handles PUT /patients/:id.
func (h *PatientHandler) UpdatePatientHandler(c *gin.Context) {
	var p models.Patient
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = c.Param("id")

	updated, err := h.Service.UpdatePatient(p)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetPatientHandler handles GET /patients/:id.
func (h *PatientHandler) GetPatientHandler(c *gin.Context) {
	p, err := h.Service.GetPatientByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListPatientsHandler handles GET /patients. Pass ?q= for a name
// search, ?active=true to filter.
func (h *PatientHandler) ListPatientsHandler(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		patients, err := h.Service.SearchPatients(q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, patients)
		return
	}

	patients, err := h.Service.GetAllPatients(c.Query("active") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patients)
}

// DeletePatientHandler handles DELETE /patients/:id.
func (h *PatientHandler) DeletePatientHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if err := h.Service.DeletePatient(id); err != nil {
		logger.Error("Failed to delete patient", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}
