package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/payroll"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/project"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/cache"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/apperrors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reportTTL bounds how stale a cached analytics response can get.
const reportTTL = 5 * time.Minute

// defaultLogWindowDays is the trailing window analyzed when the caller
// does not supply a date range.
const defaultLogWindowDays = 30

// LogSource supplies flattened attendance logs.
type LogSource interface {
	LogsForRange(ctx context.Context, from, to time.Time) ([]attendance.Log, error)
}

// TaskSource supplies tasks for a project.
type TaskSource interface {
	FindAll(ctx context.Context, filter task.TaskFilter) ([]task.Task, int64, error)
}

// ProjectSource resolves projects.
type ProjectSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
}

// PayrollSource supplies payroll records.
type PayrollSource interface {
	FindAll(ctx context.Context, filter payroll.Filter) ([]payroll.Record, error)
}

// Service runs the heuristics over live data. The heuristics themselves
// are pure; this layer does the fetching and short-lived caching.
type Service interface {
	AttendanceReport(ctx context.Context, from, to time.Time, sensitivity Sensitivity) (*AttendanceReport, error)
	ProjectRisk(ctx context.Context, projectID uuid.UUID, sensitivity Sensitivity) (*RiskPrediction, error)
	PayrollForecast(ctx context.Context, workerID *uuid.UUID, periods int) (float64, error)
	Recommendations(ctx context.Context, projectID uuid.UUID, sensitivity Sensitivity, forecastPeriods int) ([]Recommendation, error)
}

type service struct {
	logs     LogSource
	tasks    TaskSource
	projects ProjectSource
	payrolls PayrollSource
	redis    *cache.RedisClient
	logger   *zap.Logger
}

func NewService(
	logs LogSource,
	tasks TaskSource,
	projects ProjectSource,
	payrolls PayrollSource,
	redis *cache.RedisClient,
	logger *zap.Logger,
) Service {
	return &service{
		logs:     logs,
		tasks:    tasks,
		projects: projects,
		payrolls: payrolls,
		redis:    redis,
		logger:   logger,
	}
}

func (s *service) AttendanceReport(ctx context.Context, from, to time.Time, sensitivity Sensitivity) (*AttendanceReport, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -defaultLogWindowDays)
	}
	if !from.Before(to) {
		return nil, apperrors.Validation("from", "range start must be before range end")
	}

	cacheKey := fmt.Sprintf("analytics:attendance:%s:%s:%s",
		from.Format("2006-01-02"), to.Format("2006-01-02"), sensitivity)

	var cached AttendanceReport
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	logs, err := s.logs.LogsForRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := AnalyzeAttendance(logs, sensitivity)
	s.cacheSet(ctx, cacheKey, report)
	return &report, nil
}

func (s *service) ProjectRisk(ctx context.Context, projectID uuid.UUID, sensitivity Sensitivity) (*RiskPrediction, error) {
	p, tasks, err := s.projectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}

	prediction := PredictRisk(p, tasks, time.Now().UTC(), sensitivity)
	return &prediction, nil
}

func (s *service) PayrollForecast(ctx context.Context, workerID *uuid.UUID, periods int) (float64, error) {
	if periods <= 0 {
		periods = payroll.DefaultForecastPeriods
	}

	records, err := s.payrolls.FindAll(ctx, payroll.Filter{WorkerID: workerID})
	if err != nil {
		return 0, err
	}
	return payroll.Forecast(records, periods), nil
}

func (s *service) Recommendations(ctx context.Context, projectID uuid.UUID, sensitivity Sensitivity, forecastPeriods int) ([]Recommendation, error) {
	if forecastPeriods <= 0 {
		forecastPeriods = payroll.DefaultForecastPeriods
	}

	now := time.Now().UTC()
	logs, err := s.logs.LogsForRange(ctx, now.AddDate(0, 0, -defaultLogWindowDays), now)
	if err != nil {
		return nil, err
	}

	p, tasks, err := s.projectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}

	records, err := s.payrolls.FindAll(ctx, payroll.Filter{})
	if err != nil {
		return nil, err
	}

	return Recommend(logs, p, tasks, records, now, sensitivity, forecastPeriods), nil
}

func (s *service) projectTasks(ctx context.Context, projectID uuid.UUID) (*project.Project, []task.Task, error) {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if err == project.ErrProjectNotFound {
			return nil, nil, apperrors.NotFound("project %s does not exist", projectID)
		}
		return nil, nil, err
	}

	tasks, _, err := s.tasks.FindAll(ctx, task.TaskFilter{ProjectID: &projectID})
	if err != nil {
		return nil, nil, err
	}
	return p, tasks, nil
}

func (s *service) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.redis == nil {
		return false
	}
	if err := s.redis.Get(ctx, key, dest); err != nil {
		return false
	}
	return true
}

func (s *service) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, key, value, reportTTL); err != nil {
		s.logger.Warn("Failed to cache analytics report", zap.String("key", key), zap.Error(err))
	}
}
