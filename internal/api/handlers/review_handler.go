package handlers

import (
	"net/http"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/dto"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/middleware"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/review"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler handles HTTP requests for the approval workflow
type ReviewHandler struct {
	service review.Service
}

// NewReviewHandler creates a new ReviewHandler instance
func NewReviewHandler(service review.Service) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// ReviewSession godoc
// @Summary Approve or reject an attendance session
// @Description Record a compliance decision on a session. Re-reviewing overwrites the prior decision.
// @Tags review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID" format(uuid)
// @Param decision body dto.ReviewSessionRequest true "Review decision"
// @Success 200 {object} dto.SessionResponse "Decision recorded"
// @Failure 403 {object} map[string]string "Caller may not review"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /api/review/sessions/{id} [patch]
func (h *ReviewHandler) ReviewSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	var req dto.ReviewSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	session, err := h.service.ReviewSession(c.Request.Context(), id, reviewerID,
		attendance.ReviewStatus(req.Status), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": SessionToResponse(session)})
}

// ReviewTask godoc
// @Summary Verify or reject a task awaiting review
// @Description Record a review decision on a task. Rejection notes are shown to the worker and must be at least 5 characters.
// @Tags review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Param decision body dto.ReviewTaskRequest true "Review decision"
// @Success 200 {object} dto.TaskResponse "Decision recorded"
// @Failure 403 {object} map[string]string "Caller may not review"
// @Failure 409 {object} map[string]string "Task is not awaiting review"
// @Router /api/review/tasks/{id} [patch]
func (h *ReviewHandler) ReviewTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.ReviewTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	tsk, err := h.service.ReviewTask(c.Request.Context(), id, reviewerID,
		task.TaskStatus(req.Status), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(tsk)})
}
