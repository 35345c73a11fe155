package handlers

import (
	"context"
	"net/http"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/dto"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/middleware"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	service task.Service
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(service task.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTask godoc
// @Summary Create a new task
// @Description Create a new task with the provided information
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse "Task created successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creatorID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	createdTask, err := h.service.CreateTask(c.Request.Context(), task.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		CreatorID:   creatorID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": TaskToResponse(createdTask)})
}

// GetTask godoc
// @Summary Get a task by ID
// @Description Get detailed information about a specific task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} dto.TaskResponse "Task details"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	tsk, err := h.service.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(tsk)})
}

// ListTasks godoc
// @Summary List tasks
// @Description Get a paginated list of tasks with optional filters
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param project_id query string false "Filter by project ID"
// @Param status query string false "Filter by status"
// @Param assignee_id query string false "Filter by assignee ID"
// @Param page query int false "Page number (default: 0)"
// @Param page_size query int false "Items per page (default: 20)"
// @Success 200 {object} dto.TaskListResponse "Task list"
// @Router /api/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var req dto.TaskFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := task.TaskFilter{Page: req.Page, PageSize: req.PageSize}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	if req.ProjectID != "" {
		id, err := uuid.Parse(req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}
		filter.ProjectID = &id
	}
	if req.AssigneeID != "" {
		id, err := uuid.Parse(req.AssigneeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignee_id"})
			return
		}
		filter.AssigneeID = &id
	}
	if req.Status != "" {
		status := task.TaskStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		filter.Status = &status
	}

	tasks, total, err := h.service.ListTasks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.TaskListResponse{
		Tasks:      TasksToResponse(tasks),
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}})
}

// AssignTask godoc
// @Summary Assign a task to a worker
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Param assignment body dto.AssignTaskRequest true "Assignment request"
// @Success 200 {object} dto.TaskResponse "Task assigned"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{id}/assign [patch]
func (h *TaskHandler) AssignTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tsk, err := h.service.AssignTask(c.Request.Context(), id, req.AssigneeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(tsk)})
}

// StartTask godoc
// @Summary Start working on a task
// @Description Move a pending task to in-progress and begin time tracking
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} dto.TaskResponse "Task started"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Router /api/tasks/{id}/start [patch]
func (h *TaskHandler) StartTask(c *gin.Context) {
	h.workerTransition(c, h.service.StartTask)
}

// PauseTask godoc
// @Summary Pause an in-progress task
// @Description Pause a task, folding the running interval into its elapsed time
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} dto.TaskResponse "Task paused"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Router /api/tasks/{id}/pause [patch]
func (h *TaskHandler) PauseTask(c *gin.Context) {
	h.workerTransition(c, h.service.PauseTask)
}

// ResumeTask godoc
// @Summary Resume a paused task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} dto.TaskResponse "Task resumed"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Router /api/tasks/{id}/resume [patch]
func (h *TaskHandler) ResumeTask(c *gin.Context) {
	h.workerTransition(c, h.service.ResumeTask)
}

// ReassignTask godoc
// @Summary Reassign a rejected task
// @Description Move a rejected task back to pending for a new or the same assignee
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Param assignment body dto.AssignTaskRequest true "Reassignment request"
// @Success 200 {object} dto.TaskResponse "Task reassigned"
// @Failure 409 {object} map[string]string "Task is not rejected"
// @Router /api/tasks/{id}/reassign [patch]
func (h *TaskHandler) ReassignTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tsk, err := h.service.ReassignRejected(c.Request.Context(), id, req.AssigneeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(tsk)})
}

func (h *TaskHandler) workerTransition(c *gin.Context, fn func(ctx context.Context, id, workerID uuid.UUID) (*task.Task, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	workerID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	tsk, err := fn(c.Request.Context(), id, workerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": TaskToResponse(tsk)})
}
