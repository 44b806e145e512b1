package handlers

import (
	"net/http"
	"strconv"
	"time"

	"clinicore/services/availability"
	"clinicore/services/report"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler exposes utilization reporting endpoints.
type ReportHandler struct {
	Service report.ReportService
}

// yearMonth parses ?year= and ?month= query params, defaulting to the
// current month.
func yearMonth(c *gin.Context) (int, time.Month, bool) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed year"})
			return 0, 0, false
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed month"})
			return 0, 0, false
		}
		month = time.Month(parsed)
	}
	return year, month, true
}

// TherapistWeekHandler handles GET /reports/therapist/:id/week?date=YYYY-MM-DD.
func (h *ReportHandler) TherapistWeekHandler(c *gin.Context) {
	logger := utils.GetLogger()

	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, ok := availability.ParseDate(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed date, want YYYY-MM-DD"})
			return
		}
		anchor = parsed
	}

	r, err := h.Service.TherapistWeek(c.Param("id"), anchor)
	if err != nil {
		logger.Error("Failed to build weekly report", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

// TherapistMonthHandler handles GET /reports/therapist/:id/month?year=&month=.
func (h *ReportHandler) TherapistMonthHandler(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}

	r, err := h.Service.TherapistMonth(c.Param("id"), year, month)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

// ClinicWeekHandler handles GET /reports/clinic/week?date=YYYY-MM-DD.
func (h *ReportHandler) ClinicWeekHandler(c *gin.Context) {
	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, ok := availability.ParseDate(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed date, want YYYY-MM-DD"})
			return
		}
		anchor = parsed
	}

	summary, err := h.Service.ClinicWeek(anchor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ClinicMonthHandler handles GET /reports/clinic/month?year=&month=.
func (h *ReportHandler) ClinicMonthHandler(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}

	summary, err := h.Service.ClinicMonth(year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
