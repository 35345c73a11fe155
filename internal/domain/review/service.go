package review

import (
	"context"
	"strings"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/audit"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/events"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/notification"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/cache"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/apperrors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultRejectionNotes is persisted when a session is rejected
// without an explanation.
const DefaultRejectionNotes = "Rejected without specific notes."

// MinTaskRejectionNotes is the minimum length of task rejection notes;
// they are shown to the worker.
const MinTaskRejectionNotes = 5

// Service is the supervisor/admin approval workflow over closed
// sessions and tasks awaiting compliance review. Decisions are
// last-writer-wins: re-reviewing overwrites the prior decision.
type Service interface {
	ReviewSession(ctx context.Context, sessionID, reviewerID uuid.UUID, status attendance.ReviewStatus, notes string) (*attendance.AttendanceSession, error)
	ReviewTask(ctx context.Context, taskID, reviewerID uuid.UUID, status task.TaskStatus, notes string) (*task.Task, error)
}

type service struct {
	sessions attendance.SessionRepository
	tasks    task.TaskRepository
	resolver roles.Resolver
	notifier notification.Notifier
	auditor  audit.Recorder
	redis    *cache.RedisClient
	logger   *zap.Logger
}

func NewService(
	sessions attendance.SessionRepository,
	tasks task.TaskRepository,
	resolver roles.Resolver,
	notifier notification.Notifier,
	auditor audit.Recorder,
	redis *cache.RedisClient,
	logger *zap.Logger,
) Service {
	return &service{
		sessions: sessions,
		tasks:    tasks,
		resolver: resolver,
		notifier: notifier,
		auditor:  auditor,
		redis:    redis,
		logger:   logger,
	}
}

func (s *service) ReviewSession(ctx context.Context, sessionID, reviewerID uuid.UUID, status attendance.ReviewStatus, notes string) (*attendance.AttendanceSession, error) {
	if status != attendance.ReviewStatusApproved && status != attendance.ReviewStatusRejected {
		return nil, apperrors.Validation("status", "review status must be approved or rejected")
	}
	if err := s.requireReviewer(ctx, reviewerID); err != nil {
		return nil, err
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if err == attendance.ErrSessionNotFound {
			return nil, apperrors.NotFound("session %s does not exist", sessionID)
		}
		return nil, err
	}

	if status == attendance.ReviewStatusRejected && strings.TrimSpace(notes) == "" {
		notes = DefaultRejectionNotes
	}

	now := time.Now().UTC()
	session.ReviewStatus = status
	session.ReviewedBy = &reviewerID
	session.ReviewedAt = &now
	session.ReviewNotes = notes

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, reviewerID, "session_reviewed", "attendance_session", session.ID,
		"Session "+string(status))
	s.notifyWorker(ctx, session.WorkerID, "Attendance "+string(status),
		"Your attendance session was "+string(status)+".", "attendance_session", session.ID)
	s.publishEvent(ctx, events.EventTypeSessionReviewed, session.WorkerID, session.ID, status)

	return session, nil
}

func (s *service) ReviewTask(ctx context.Context, taskID, reviewerID uuid.UUID, status task.TaskStatus, notes string) (*task.Task, error) {
	if status != task.TaskStatusVerified && status != task.TaskStatusRejected {
		return nil, apperrors.Validation("status", "task review status must be verified or rejected")
	}
	if status == task.TaskStatusRejected && len(strings.TrimSpace(notes)) < MinTaskRejectionNotes {
		return nil, apperrors.Validation("notes", "rejection notes are shown to the worker and must be at least 5 characters")
	}
	if err := s.requireReviewer(ctx, reviewerID); err != nil {
		return nil, err
	}

	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if err == task.ErrTaskNotFound {
			return nil, apperrors.NotFound("task %s does not exist", taskID)
		}
		return nil, err
	}

	// Re-reviewing an already decided task overwrites the decision.
	switch t.Status {
	case task.TaskStatusNeedsReview, task.TaskStatusVerified, task.TaskStatusRejected:
	default:
		return nil, apperrors.Conflict("task %s is not awaiting review (status %s)", taskID, t.Status)
	}

	now := time.Now().UTC()
	t.Status = status
	t.ReviewerID = &reviewerID
	t.ReviewedAt = &now
	t.ReviewNotes = notes
	t.UpdatedAt = now

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, reviewerID, "task_reviewed", "task", t.ID, "Task "+string(status))
	if t.AssigneeID != nil {
		s.notifyWorker(ctx, *t.AssigneeID, "Task "+string(status),
			"Task \""+t.Title+"\" was "+string(status)+".", "task", t.ID)
	}
	s.publishEvent(ctx, events.EventTypeTaskReviewed, t.CreatorID, t.ID, status)

	return t, nil
}

// requireReviewer gates review operations to supervisor/admin roles.
func (s *service) requireReviewer(ctx context.Context, reviewerID uuid.UUID) error {
	role, err := s.resolver.ResolveRole(ctx, reviewerID)
	if err != nil {
		if err == roles.ErrUserNotFound {
			return apperrors.Authorization("reviewer %s does not exist", reviewerID)
		}
		return err
	}
	if !role.CanReview() {
		return apperrors.Authorization("role %s may not review sessions or tasks", role)
	}
	return nil
}

func (s *service) notifyWorker(ctx context.Context, workerID uuid.UUID, title, content, reference string, refID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyUser(ctx, workerID, title, content, reference, refID); err != nil {
		s.logger.Warn("Failed to notify worker of review decision", zap.Error(err))
	}
}

func (s *service) publishEvent(ctx context.Context, eventType string, userID, entityID uuid.UUID, status interface{}) {
	if s.redis == nil {
		return
	}
	event := &events.DashboardEvent{
		EventType: eventType,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Details:   map[string]interface{}{"status": status},
	}
	if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish dashboard event", zap.Error(err))
	}
}
