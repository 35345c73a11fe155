package routes

import (
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/handlers"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/middleware"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/gin-gonic/gin"
)

// AnalyticsRoutes handles the setup of analytics routes
type AnalyticsRoutes struct {
	handler   *handlers.AnalyticsHandler
	jwtSecret string
}

// NewAnalyticsRoutes creates a new AnalyticsRoutes instance
func NewAnalyticsRoutes(handler *handlers.AnalyticsHandler, jwtSecret string) *AnalyticsRoutes {
	return &AnalyticsRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all analytics routes
func (r *AnalyticsRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	analytics := router.Group("/api/analytics")
	analytics.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	analytics.Use(metrics.CollectMetrics())
	analytics.Use(middleware.RequireRoles(string(roles.RoleSupervisor), string(roles.RoleAdmin)))

	analytics.GET("/attendance", r.handler.AttendanceReport)
	analytics.GET("/projects/:id/risk", r.handler.ProjectRisk)
	analytics.GET("/payroll/forecast", r.handler.PayrollForecast)
	analytics.GET("/recommendations", r.handler.Recommendations)
}
