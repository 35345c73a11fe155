package routes

import (
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/handlers"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/middleware"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/gin-gonic/gin"
)

// TaskRoutes handles the setup of task-related routes
type TaskRoutes struct {
	handler   *handlers.TaskHandler
	jwtSecret string
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, jwtSecret string) *TaskRoutes {
	return &TaskRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all task-related routes
func (r *TaskRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	tasks.Use(metrics.CollectMetrics())

	tasks.GET("", r.handler.ListTasks)
	tasks.GET("/:id", r.handler.GetTask)

	// Creation, assignment and reassignment are supervisor operations.
	reviewers := []string{string(roles.RoleSupervisor), string(roles.RoleAdmin)}
	tasks.POST("", middleware.RequireRoles(reviewers...), r.handler.CreateTask)
	tasks.PATCH("/:id/assign", middleware.RequireRoles(reviewers...), r.handler.AssignTask)
	tasks.PATCH("/:id/reassign", middleware.RequireRoles(reviewers...), r.handler.ReassignTask)

	// Worker-driven lifecycle.
	tasks.PATCH("/:id/start", r.handler.StartTask)
	tasks.PATCH("/:id/pause", r.handler.PauseTask)
	tasks.PATCH("/:id/resume", r.handler.ResumeTask)
}
