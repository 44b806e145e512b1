package handlers

import (
	"net/http"
	"time"

	"clinicore/services/availability"
	"clinicore/services/therapist"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler exposes the calendar grid and availability queries.
type CalendarHandler struct {
	Service therapist.TherapistService
}

// anchorDate parses the ?date query, defaulting to today. The grid
// always shows the business week containing this date.
func anchorDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	parsed, ok := availability.ParseDate(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed date, want YYYY-MM-DD"})
		return time.Time{}, false
	}
	return parsed, true
}

// WeekCalendarHandler handles GET /calendar/:id/week?date=YYYY-MM-DD.
func (h *CalendarHandler) WeekCalendarHandler(c *gin.Context) {
	logger := utils.GetLogger()

	anchor, ok := anchorDate(c)
	if !ok {
		return
	}

	id := c.Param("id")
	calendar, err := h.Service.WeekCalendar(id, anchor)
	if err != nil {
		logger.Error("Failed to build week calendar", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, calendar)
}

// TimeAxisHandler handles GET /calendar/time-axis. The axis is shared
// across every active therapist so the grid keeps its shape when the
// user switches therapists.
func (h *CalendarHandler) TimeAxisHandler(c *gin.Context) {
	axis, err := h.Service.SharedTimeAxis()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeAxis": axis})
}

// SlotStateHandler handles GET /calendar/:id/state?date=YYYY-MM-DD&time=HH:MM.
// It classifies one moment of one therapist's day, appointments included.
func (h *CalendarHandler) SlotStateHandler(c *gin.Context) {
	date := availability.NormalizeDate(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed date, want YYYY-MM-DD"})
		return
	}
	clock := c.Query("time")
	if availability.ToMinutes(clock) < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed time, want HH:MM"})
		return
	}

	snapshot, err := h.Service.Snapshot(c.Param("id"), date, date)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	state := availability.Classify(snapshot, availability.WeekdayOf(date), date, clock)
	c.JSON(http.StatusOK, gin.H{
		"therapistId":  snapshot.ID,
		"date":         date,
		"time":         clock,
		"state":        state,
		"appointments": availability.MatchAppointments(snapshot, date, clock),
	})
}
