package routes

import (
	"net/http"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/cache"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp time.Time         `json:"timestamp" example:"2026-08-29T02:00:00Z"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// SetupHealthRoutes registers health check endpoints
func SetupHealthRoutes(router *gin.Engine, db *connection.Database, redis *cache.RedisClient) {
	// @Summary Health check endpoint
	// @Description Get the current health status of the API
	// @Tags health
	// @Produce json
	// @Success 200 {object} HealthResponse
	// @Router /health [get]
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
		})
	})

	// @Summary Readiness check endpoint
	// @Description Verify database and cache connectivity
	// @Tags health
	// @Produce json
	// @Success 200 {object} HealthResponse
	// @Failure 503 {object} HealthResponse
	// @Router /health/ready [get]
	router.GET("/health/ready", func(c *gin.Context) {
		checks := map[string]string{"database": "ok", "redis": "ok"}
		status := http.StatusOK

		if sqlDB, err := db.DB.DB(); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		if redis != nil {
			if err := redis.HealthCheck(c.Request.Context()); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not ready"
		}
		c.JSON(status, HealthResponse{
			Status:    state,
			Timestamp: time.Now().UTC(),
			Checks:    checks,
		})
	})
}
