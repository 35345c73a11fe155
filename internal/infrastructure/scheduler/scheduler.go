package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/analytics"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/notification"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// flagWindowDays is how far back the nightly sweep looks.
const flagWindowDays = 30

// Scheduler runs the nightly attendance sweep: recompute flags over
// the trailing window and alert supervisors when workers trip the
// threshold.
type Scheduler struct {
	sessions    attendance.Service
	notifier    notification.Notifier
	sensitivity analytics.Sensitivity
	logger      *logger.Logger
}

func NewScheduler(sessions attendance.Service, notifier notification.Notifier, sensitivity analytics.Sensitivity, log *logger.Logger) *Scheduler {
	return &Scheduler{
		sessions:    sessions,
		notifier:    notifier,
		sensitivity: sensitivity,
		logger:      log,
	}
}

func (s *Scheduler) Start() {
	// Run immediately at startup
	s.runAttendanceSweep()

	// Calculate time until next midnight
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timeUntilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Attendance sweep scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", timeUntilMidnight),
	)

	go func() {
		time.Sleep(timeUntilMidnight)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		s.runAttendanceSweep()
		for range ticker.C {
			s.runAttendanceSweep()
		}
	}()
}

func (s *Scheduler) runAttendanceSweep() {
	ctx := context.Background()
	start := time.Now()

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -flagWindowDays)

	logs, err := s.sessions.LogsForRange(ctx, from, to)
	if err != nil {
		s.logger.Error("Attendance sweep failed to load logs", zap.Error(err))
		return
	}

	report := analytics.AnalyzeAttendance(logs, s.sensitivity)
	s.logger.Info("Attendance sweep completed",
		zap.Int("logs", len(logs)),
		zap.Int("flagged", len(report.Flagged)),
		zap.Duration("took", time.Since(start)),
	)

	if len(report.Flagged) == 0 || s.notifier == nil {
		return
	}

	content := fmt.Sprintf("%d worker(s) exceeded the attendance threshold in the last %d days.",
		len(report.Flagged), flagWindowDays)
	if err := s.notifier.NotifyRoles(ctx, roles.ReviewerRoles(),
		"Attendance flags", content, "attendance_sweep", uuid.Nil); err != nil {
		s.logger.Warn("Attendance sweep notification failed", zap.Error(err))
	}
}
