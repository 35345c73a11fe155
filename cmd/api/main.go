package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/handlers"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/api/routes"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/analytics"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/audit"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/notification"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/payroll"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/project"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/review"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/user"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/cache"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/persistence/postgres/migrations"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/scheduler"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/broker"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/config"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           FieldOps API
// @version         1.0
// @description     Field workforce attendance, task lifecycle and heuristic analytics API.

// @host      localhost:8000
// @BasePath

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// taskCoordinator narrows the task service to the slice checkout needs.
type taskCoordinator struct {
	tasks task.Service
}

func (tc taskCoordinator) CompleteFromSession(ctx context.Context, taskID, sessionProjectID uuid.UUID, checkoutTime time.Time, notes, mediaURL string) error {
	_, err := tc.tasks.CompleteFromSession(ctx, taskID, sessionProjectID, checkoutTime, notes, mediaURL)
	return err
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLoggerWithLevel(cfg.Logging.Level)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     append(cfg.CORS.AllowedHeaders, "Content-Type", "Authorization"),
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Add Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize logrus logger for the notification pipeline
	notificationLogger := logrus.New()
	notificationLogger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Server.Mode == "production" {
		notificationLogger.SetLevel(logrus.InfoLevel)
	} else {
		notificationLogger.SetLevel(logrus.DebugLevel)
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)
	projectRepo := project.NewRepository(db)
	taskRepo := task.NewRepository(db)
	sessionRepo := attendance.NewRepository(db)
	payrollRepo := payroll.NewRepository(db)
	rolesResolver := roles.NewResolver(db)
	auditor := audit.NewRecorder(db, log)

	// Notification delivery queue and consumer
	deliveryQueue := broker.NewQueue(redisClient.Client(), notification.DeliveryQueueName, 24*time.Hour)
	notifier := notification.NewService(db, userRepo, deliveryQueue, notificationLogger)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	notification.NewConsumer(deliveryQueue, notificationLogger).Start(consumerCtx)

	// Initialize services
	taskService := task.NewService(taskRepo, redisClient, auditor, log.Logger)
	attendanceService := attendance.NewService(
		sessionRepo,
		taskCoordinator{tasks: taskService},
		projectRepo,
		notifier,
		auditor,
		redisClient,
		log.Logger,
	)
	reviewService := review.NewService(sessionRepo, taskRepo, rolesResolver, notifier, auditor, redisClient, log.Logger)
	analyticsService := analytics.NewService(sessionRepo, taskRepo, projectRepo, payrollRepo, redisClient, log.Logger)

	// Initialize and start the nightly attendance sweep
	sweep := scheduler.NewScheduler(
		attendanceService,
		notifier,
		analytics.ParseSensitivity(cfg.Analytics.AttendanceSensitivity),
		log,
	)
	sweep.Start()
	log.Info("Attendance sweep scheduler started")

	// Initialize handlers
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	taskHandler := handlers.NewTaskHandler(taskService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	auditHandler := handlers.NewAuditHandler(auditor)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, cfg.Analytics)

	// Swagger documentation endpoint
	if cfg.Swagger.Enabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		log.Info("Registered swagger route at /swagger/*")
	}

	// Health check routes (no /api prefix as these are system endpoints)
	routes.SetupHealthRoutes(router, db, redisClient)
	log.Info("Registered health check routes at /health and /health/ready")

	// Attendance routes (protected)
	attendanceRoutes := routes.NewAttendanceRoutes(attendanceHandler, cfg.Auth.JWTSecret)
	attendanceRoutes.RegisterRoutes(router)
	log.Info("Registered attendance routes at /api/attendance")

	// Task routes (protected)
	taskRoutes := routes.NewTaskRoutes(taskHandler, cfg.Auth.JWTSecret)
	taskRoutes.RegisterRoutes(router)
	log.Info("Registered task routes at /api/tasks")

	// Review routes (protected, supervisor/admin)
	reviewRoutes := routes.NewReviewRoutes(reviewHandler, auditHandler, cfg.Auth.JWTSecret)
	reviewRoutes.RegisterRoutes(router)
	log.Info("Registered review routes at /api/review")

	// Analytics routes (protected, supervisor/admin)
	analyticsRoutes := routes.NewAnalyticsRoutes(analyticsHandler, cfg.Auth.JWTSecret)
	analyticsRoutes.RegisterRoutes(router)
	log.Info("Registered analytics routes at /api/analytics")

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	stopConsumer()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
