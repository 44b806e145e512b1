package handlers

import (
	"net/http"

	"clinicore/models"
	"clinicore/services/therapist"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TherapistHandler exposes therapist management endpoints.
type TherapistHandler struct {
	Service therapist.TherapistService
}

// RegisterTherapistHandler handles POST /therapists.
func (h *TherapistHandler) RegisterTherapistHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var t models.Therapist
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.RegisterTherapist(t)
	if err != nil {
		logger.Error("Failed to register therapist", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateTherapistHandler handles PUT /therapists/:id.
func (h *TherapistHandler) UpdateTherapistHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var t models.Therapist
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t.ID = c.Param("id")

	updated, err := h.Service.UpdateTherapist(t)
	if err != nil {
		logger.Error("Failed to update therapist", zap.String("id", t.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetTherapistHandler handles GET /therapists/:id.
func (h *TherapistHandler) GetTherapistHandler(c *gin.Context) {
	id := c.Param("id")
	t, err := h.Service.GetTherapistByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

// ListTherapistsHandler handles GET /therapists. Pass ?active=true to
// filter to active therapists only.
func (h *TherapistHandler) ListTherapistsHandler(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	therapists, err := h.Service.GetAllTherapists(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, therapists)
}

// DeleteTherapistHandler handles DELETE /therapists/:id.
func (h *TherapistHandler) DeleteTherapistHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if err := h.Service.DeleteTherapist(id); err != nil {
		logger.Error("Failed to delete therapist", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Therapist deleted"})
}

// SetActiveHandler handles PUT /therapists/:id/active.
func (h *TherapistHandler) SetActiveHandler(c *gin.Context) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.SetActive(c.Param("id"), req.Active); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Therapist updated"})
}

// SetScheduleHandler handles PUT /therapists/:id/schedule. The payload
// replaces the whole availability configuration.
func (h *TherapistHandler) SetScheduleHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var schedule models.Schedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := h.Service.SetSchedule(id, schedule); err != nil {
		logger.Error("Failed to set schedule", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule updated"})
}

// AddBlockedSlotHandler handles POST /therapists/:id/blocked.
func (h *TherapistHandler) AddBlockedSlotHandler(c *gin.Context) {
	var blocked models.BlockedSlot
	if err := c.ShouldBindJSON(&blocked); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.AddBlockedSlot(c.Param("id"), blocked); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Blocked slot added"})
}

// RemoveBlockedSlotHandler handles DELETE /therapists/:id/blocked/:blockedId.
func (h *TherapistHandler) RemoveBlockedSlotHandler(c *gin.Context) {
	if err := h.Service.RemoveBlockedSlot(c.Param("id"), c.Param("blockedId")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blocked slot removed"})
}
