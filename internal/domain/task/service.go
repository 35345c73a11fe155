package task

import (
	"context"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/audit"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/events"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/cache"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/apperrors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	AssignTask(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) (*Task, error)

	// Worker-driven lifecycle.
	StartTask(ctx context.Context, id uuid.UUID, workerID uuid.UUID) (*Task, error)
	PauseTask(ctx context.Context, id uuid.UUID, workerID uuid.UUID) (*Task, error)
	ResumeTask(ctx context.Context, id uuid.UUID, workerID uuid.UUID) (*Task, error)

	// ReassignRejected moves a rejected task back to pending for a
	// (possibly new) assignee.
	ReassignRejected(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) (*Task, error)

	// CompleteFromSession applies the checkout side effect for one task
	// reported done in a session. Best-effort per task: the caller
	// collects errors and never aborts the batch.
	CompleteFromSession(ctx context.Context, taskID, sessionProjectID uuid.UUID, checkoutTime time.Time, notes, mediaURL string) (*Task, error)
}

type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ProjectID   uuid.UUID  `json:"project_id"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	CreatorID   uuid.UUID  `json:"creator_id"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type service struct {
	repo    TaskRepository
	redis   *cache.RedisClient
	auditor audit.Recorder
	logger  *zap.Logger
}

func NewService(repo TaskRepository, redis *cache.RedisClient, auditor audit.Recorder, logger *zap.Logger) Service {
	return &service{repo: repo, redis: redis, auditor: auditor, logger: logger}
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, apperrors.Validation("title", "title is required")
	}
	if input.ProjectID == uuid.Nil {
		return nil, apperrors.Validation("project_id", "project id is required")
	}

	t := &Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Status:      TaskStatusPending,
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
		CreatorID:   input.CreatorID,
		DueDate:     input.DueDate,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, input.CreatorID, "task_created", "task", t.ID, "Task \""+t.Title+"\" created")
	s.publishTaskEvent(ctx, t, events.EventTypeTaskUpdate, "task_created")

	return t, nil
}

func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == ErrTaskNotFound {
			return nil, apperrors.NotFound("task %s does not exist", id)
		}
		return nil, err
	}
	return t, nil
}

func (s *service) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) AssignTask(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) (*Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	t.AssigneeID = &assigneeID
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, assigneeID, "task_assigned", "task", t.ID, "Task assigned")
	s.publishTaskEvent(ctx, t, events.EventTypeTaskUpdate, "task_assigned")
	return t, nil
}

func (s *service) StartTask(ctx context.Context, id uuid.UUID, workerID uuid.UUID) (*Task, error) {
	return s.transition(ctx, id, workerID, TaskStatusInProgress, "task_started")
}

func (s *service) ResumeTask(ctx context.Context, id uuid.UUID, workerID uuid.UUID) (*Task, error) {
	return s.transition(ctx, id, workerID, TaskStatusInProgress, "task_resumed")
}

func (s *service) PauseTask(ctx context.Context, id uuid.UUID, workerID uuid.UUID) (*Task, error) {
	return s.transition(ctx, id, workerID, TaskStatusPaused, "task_paused")
}

// transition applies a worker-driven status change, keeping the
// running-time bookkeeping consistent: entering in-progress stamps
// StartTime, leaving it folds the open interval into ElapsedSeconds.
func (s *service) transition(ctx context.Context, id, workerID uuid.UUID, next TaskStatus, action string) (*Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(t.Status, next) {
		return nil, apperrors.Conflict("cannot move task from %s to %s", t.Status, next)
	}

	now := time.Now().UTC()
	switch next {
	case TaskStatusInProgress:
		if t.StartTime == nil {
			t.StartTime = &now
		}
	case TaskStatusPaused:
		if t.StartTime != nil {
			t.ElapsedSeconds += clampedSeconds(*t.StartTime, now)
			t.StartTime = nil
		}
	}

	t.Status = next
	t.UpdatedAt = now
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, workerID, action, "task", t.ID, "Task moved to "+string(next))
	s.publishTaskEvent(ctx, t, events.EventTypeTaskUpdate, action)
	return t, nil
}

func (s *service) ReassignRejected(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) (*Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(t.Status, TaskStatusPending) {
		return nil, apperrors.Conflict("only rejected tasks can be reassigned, task is %s", t.Status)
	}

	now := time.Now().UTC()
	t.Status = TaskStatusPending
	t.AssigneeID = &assigneeID
	t.StartTime = nil
	t.EndTime = nil
	t.UpdatedAt = now
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, assigneeID, "task_reassigned", "task", t.ID, "Rejected task reassigned")
	s.publishTaskEvent(ctx, t, events.EventTypeTaskUpdate, "task_reassigned")
	return t, nil
}

func (s *service) CompleteFromSession(ctx context.Context, taskID, sessionProjectID uuid.UUID, checkoutTime time.Time, notes, mediaURL string) (*Task, error) {
	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if err == ErrTaskNotFound {
			return nil, apperrors.NotFound("task %s does not exist", taskID)
		}
		return nil, err
	}

	if t.ProjectID != sessionProjectID {
		return nil, apperrors.Conflict("task %s belongs to a different project", taskID)
	}

	if t.Status == TaskStatusInProgress && t.StartTime != nil {
		t.ElapsedSeconds += clampedSeconds(*t.StartTime, checkoutTime)
		t.StartTime = nil
		end := checkoutTime
		t.EndTime = &end
	}

	t.Status = TaskStatusNeedsReview
	if t.EmployeeNotes == "" && notes != "" {
		t.EmployeeNotes = notes
	}
	if t.SubmittedMediaURL == "" && mediaURL != "" {
		t.SubmittedMediaURL = mediaURL
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.publishTaskEvent(ctx, t, events.EventTypeTaskUpdate, "task_reported_done")
	return t, nil
}

// clampedSeconds returns the whole seconds between start and end,
// never negative. Checkout timestamps can lag a task's start when
// clients submit queued offline data with skewed clocks.
func clampedSeconds(start, end time.Time) int64 {
	delta := end.Unix() - start.Unix()
	if delta < 0 {
		return 0
	}
	return delta
}

func (s *service) publishTaskEvent(ctx context.Context, t *Task, eventType, action string) {
	if s.redis == nil {
		return
	}
	event := &events.DashboardEvent{
		EventType: eventType,
		UserID:    t.CreatorID,
		EntityID:  t.ID,
		Timestamp: time.Now().UTC(),
		Details: map[string]interface{}{
			"action": action,
			"status": t.Status,
		},
	}
	if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish dashboard event", zap.Error(err))
	}
}
