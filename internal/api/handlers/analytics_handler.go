package handlers

import (
	"net/http"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/dto"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/analytics"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnalyticsHandler handles HTTP requests for the heuristic analytics
type AnalyticsHandler struct {
	service analytics.Service
	cfg     config.AnalyticsConfig
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance
func NewAnalyticsHandler(service analytics.Service, cfg config.AnalyticsConfig) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, cfg: cfg}
}

// sensitivity resolves the effective sensitivity: explicit query param
// first, configured default otherwise.
func (h *AnalyticsHandler) sensitivity(param, fallback string) analytics.Sensitivity {
	if param != "" {
		return analytics.ParseSensitivity(param)
	}
	return analytics.ParseSensitivity(fallback)
}

// AttendanceReport godoc
// @Summary Attendance anomaly report
// @Description Count late arrivals and early departures over a date range and flag repeat offenders
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param from query string false "Range start (YYYY-MM-DD, default: 30 days ago)"
// @Param to query string false "Range end (YYYY-MM-DD, default: today)"
// @Param sensitivity query string false "low, medium or high (default: configured)"
// @Success 200 {object} analytics.AttendanceReport "Attendance report"
// @Router /api/analytics/attendance [get]
func (h *AnalyticsHandler) AttendanceReport(c *gin.Context) {
	var req dto.AttendanceReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var from, to time.Time
	var err error
	if req.From != "" {
		if from, err = time.Parse("2006-01-02", req.From); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
	}
	if req.To != "" {
		if to, err = time.Parse("2006-01-02", req.To); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
	}

	report, err := h.service.AttendanceReport(c.Request.Context(), from, to,
		h.sensitivity(req.Sensitivity, h.cfg.AttendanceSensitivity))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}

// ProjectRisk godoc
// @Summary Project deadline risk
// @Description Classify a project as on-track or at-risk from its incomplete-task ratio and days to deadline
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID" format(uuid)
// @Param sensitivity query string false "low, medium or high (default: configured)"
// @Success 200 {object} analytics.RiskPrediction "Risk prediction"
// @Failure 404 {object} map[string]string "Project not found"
// @Router /api/analytics/projects/{id}/risk [get]
func (h *AnalyticsHandler) ProjectRisk(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	var req dto.RiskRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.service.ProjectRisk(c.Request.Context(), id,
		h.sensitivity(req.Sensitivity, h.cfg.RiskSensitivity))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": prediction})
}

// PayrollForecast godoc
// @Summary Payroll forecast
// @Description Project the next period's net pay as the mean of recent approved periods
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param worker_id query string false "Restrict to one worker"
// @Param periods query int false "Number of recent periods to average (default: configured)"
// @Success 200 {object} dto.ForecastResponse "Forecast"
// @Router /api/analytics/payroll/forecast [get]
func (h *AnalyticsHandler) PayrollForecast(c *gin.Context) {
	var req dto.ForecastRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var workerID *uuid.UUID
	if req.WorkerID != "" {
		id, err := uuid.Parse(req.WorkerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid worker_id"})
			return
		}
		workerID = &id
	}

	periods := req.Periods
	if periods <= 0 {
		periods = h.cfg.ForecastPeriods
	}

	forecast, err := h.service.PayrollForecast(c.Request.Context(), workerID, periods)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ForecastResponse{Forecast: forecast, Periods: periods}})
}

// Recommendations godoc
// @Summary Dashboard recommendations
// @Description Compose the attendance, risk and payroll heuristics into actionable messages
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param project_id query string true "Project to evaluate"
// @Param sensitivity query string false "low, medium or high (default: configured)"
// @Param periods query int false "Payroll periods to average (default: configured)"
// @Success 200 {array} analytics.Recommendation "Recommendations"
// @Failure 404 {object} map[string]string "Project not found"
// @Router /api/analytics/recommendations [get]
func (h *AnalyticsHandler) Recommendations(c *gin.Context) {
	var req dto.RecommendationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
		return
	}

	periods := req.Periods
	if periods <= 0 {
		periods = h.cfg.ForecastPeriods
	}

	recommendations, err := h.service.Recommendations(c.Request.Context(), projectID,
		h.sensitivity(req.Sensitivity, h.cfg.RiskSensitivity), periods)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": recommendations})
}
