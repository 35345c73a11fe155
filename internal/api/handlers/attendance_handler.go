package handlers

import (
	"net/http"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/dto"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/middleware"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttendanceHandler handles HTTP requests for attendance sessions
type AttendanceHandler struct {
	service attendance.Service
}

// NewAttendanceHandler creates a new AttendanceHandler instance
func NewAttendanceHandler(service attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// CheckIn godoc
// @Summary Check in on a project
// @Description Open an attendance session for the authenticated worker. Checking in again on the same project returns the existing session.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body dto.CheckInRequest true "Check-in request"
// @Success 201 {object} dto.SessionResponse "Session opened"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Already checked in elsewhere"
// @Router /api/attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	session, err := h.service.StartSession(c.Request.Context(), attendance.StartSessionInput{
		WorkerID:  workerID,
		ProjectID: req.ProjectID,
		GPS: attendance.GPSFix{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Accuracy:  req.Accuracy,
			Timestamp: time.Now().UTC(),
		},
		AutoLogged: req.AutoLogged,
		SelfieURL:  req.SelfieURL,
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			middleware.CountSessionConflict()
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": SessionToResponse(session)})
}

// CheckOut godoc
// @Summary Check out of a project
// @Description Close the open session and report tasks finished during it. Task updates are best-effort; the session always closes.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body dto.CheckOutRequest true "Check-out request"
// @Success 200 {object} dto.CheckOutResponse "Session closed"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "No open session"
// @Router /api/attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req dto.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	input := attendance.CheckoutInput{
		WorkerID:         workerID,
		ProjectID:        req.ProjectID,
		SelfieURL:        req.SelfieURL,
		CompletedTaskIDs: req.CompletedTaskIDs,
		Notes:            req.Notes,
	}
	if req.Latitude != nil && req.Longitude != nil {
		gps := attendance.GPSFix{
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
			Timestamp: time.Now().UTC(),
		}
		if req.Accuracy != nil {
			gps.Accuracy = *req.Accuracy
		}
		input.GPS = &gps
	}

	result, err := h.service.CheckoutSession(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": CheckoutToResponse(result)})
}

// AppendTrack godoc
// @Summary Upload location track points
// @Description Append GPS samples to an open session's location track
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID" format(uuid)
// @Param track body dto.AppendTrackRequest true "Track points"
// @Success 204 "Track updated"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /api/attendance/sessions/{id}/track [post]
func (h *AttendanceHandler) AppendTrack(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	var req dto.AppendTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points := make([]attendance.TrackPoint, len(req.Points))
	for i, p := range req.Points {
		ts := p.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		points[i] = attendance.TrackPoint{Latitude: p.Latitude, Longitude: p.Longitude, Timestamp: ts}
	}

	if err := h.service.AppendLocationTrack(c.Request.Context(), id, points); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSession godoc
// @Summary Get a session by ID
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID" format(uuid)
// @Success 200 {object} dto.SessionResponse "Session details"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /api/attendance/sessions/{id} [get]
func (h *AttendanceHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	session, err := h.service.GetSession(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": SessionToResponse(session)})
}

// ListSessions godoc
// @Summary List attendance sessions
// @Description Get a paginated session history with optional filters
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param worker_id query string false "Filter by worker ID"
// @Param project_id query string false "Filter by project ID"
// @Param review_status query string false "Filter by review status"
// @Param date_start query string false "Range start (YYYY-MM-DD)"
// @Param date_end query string false "Range end, exclusive (YYYY-MM-DD)"
// @Param only_open query bool false "Only open sessions"
// @Param page query int false "Page number (default: 0)"
// @Param page_size query int false "Items per page (default: 20)"
// @Success 200 {object} dto.SessionListResponse "Session history"
// @Router /api/attendance/sessions [get]
func (h *AttendanceHandler) ListSessions(c *gin.Context) {
	var req dto.SessionFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := attendance.SessionFilter{
		OnlyOpen: req.OnlyOpen,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	if req.WorkerID != "" {
		id, err := uuid.Parse(req.WorkerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid worker_id"})
			return
		}
		filter.WorkerID = &id
	}
	if req.ProjectID != "" {
		id, err := uuid.Parse(req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}
		filter.ProjectID = &id
	}
	if req.ReviewStatus != "" {
		status := attendance.ReviewStatus(req.ReviewStatus)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review_status"})
			return
		}
		filter.ReviewStatus = &status
	}
	if req.DateStart != "" {
		t, err := time.Parse("2006-01-02", req.DateStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_start"})
			return
		}
		filter.DateStart = &t
	}
	if req.DateEnd != "" {
		t, err := time.Parse("2006-01-02", req.DateEnd)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_end"})
			return
		}
		filter.DateEnd = &t
	}

	sessions, total, err := h.service.ListSessions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.SessionListResponse{
		Sessions:   SessionsToResponse(sessions),
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}})
}
