package handlers

import (
	"net/http"

	"clinicore/models"
	"clinicore/services/appointment"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes booking and lifecycle endpoints.
type AppointmentHandler struct {
	Service appointment.AppointmentService
}

// BookHandler handles POST /appointments.
func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req appointment.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.Service.Book(req)
	if err != nil {
		logger.Warn("Booking rejected",
			zap.String("therapistId", req.TherapistID),
			zap.String("date", req.Date), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// UpdateStatusHandler handles PUT /appointments/:id/status.
func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	var req struct {
		Status models.AppointmentStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.Service.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelHandler handles DELETE /appointments/:id.
func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	if err := h.Service.Cancel(c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// GetAppointmentHandler handles GET /appointments/:id.
func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListForTherapistHandler handles GET /appointments/therapist/:id with
// optional ?from=YYYY-MM-DD&to=YYYY-MM-DD bounds.
func (h *AppointmentHandler) ListForTherapistHandler(c *gin.Context) {
	appts, err := h.Service.ListForTherapist(c.Param("id"), c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appts)
}

// ListForPatientHandler handles GET /appointments/patient/:id.
func (h *AppointmentHandler) ListForPatientHandler(c *gin.Context) {
	appts, err := h.Service.ListForPatient(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appts)
}
