package routes

import (
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/handlers"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// AttendanceRoutes handles the setup of attendance-related routes
type AttendanceRoutes struct {
	handler   *handlers.AttendanceHandler
	jwtSecret string
}

// NewAttendanceRoutes creates a new AttendanceRoutes instance
func NewAttendanceRoutes(handler *handlers.AttendanceHandler, jwtSecret string) *AttendanceRoutes {
	return &AttendanceRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all attendance-related routes
func (r *AttendanceRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	attendance := router.Group("/api/attendance")
	attendance.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	attendance.Use(metrics.CollectMetrics())

	attendance.POST("/check-in", r.handler.CheckIn)
	attendance.POST("/check-out", r.handler.CheckOut)

	attendance.GET("/sessions", r.handler.ListSessions)
	attendance.GET("/sessions/:id", r.handler.GetSession)
	attendance.POST("/sessions/:id/track", r.handler.AppendTrack)
}
