package routes

import (
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/handlers"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/middleware"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/gin-gonic/gin"
)

// ReviewRoutes handles the setup of review workflow routes
type ReviewRoutes struct {
	handler   *handlers.ReviewHandler
	audit     *handlers.AuditHandler
	jwtSecret string
}

// NewReviewRoutes creates a new ReviewRoutes instance
func NewReviewRoutes(handler *handlers.ReviewHandler, audit *handlers.AuditHandler, jwtSecret string) *ReviewRoutes {
	return &ReviewRoutes{
		handler:   handler,
		audit:     audit,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all review workflow routes. The role gate
// here is a fast path; the service re-checks the reviewer's stored role.
func (r *ReviewRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	review := router.Group("/api/review")
	review.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	review.Use(metrics.CollectMetrics())
	review.Use(middleware.RequireRoles(string(roles.RoleSupervisor), string(roles.RoleAdmin)))

	review.PATCH("/sessions/:id", r.handler.ReviewSession)
	review.PATCH("/tasks/:id", r.handler.ReviewTask)
	review.GET("/audit/:id", r.audit.ListEntries)
}
