package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/audit"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/events"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/notification"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/project"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/cache"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/apperrors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskCoordinator is the slice of the task service checkout needs.
type TaskCoordinator interface {
	CompleteFromSession(ctx context.Context, taskID, sessionProjectID uuid.UUID, checkoutTime time.Time, notes, mediaURL string) error
}

// ProjectLookup resolves project names for conflict messages.
type ProjectLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
}

type StartSessionInput struct {
	WorkerID   uuid.UUID
	ProjectID  uuid.UUID
	GPS        GPSFix
	AutoLogged bool
	SelfieURL  string
}

type CheckoutInput struct {
	WorkerID         uuid.UUID
	ProjectID        uuid.UUID
	GPS              *GPSFix
	SelfieURL        string
	CompletedTaskIDs []uuid.UUID
	Notes            string
}

// TaskOutcome is the per-task result of a checkout batch.
type TaskOutcome struct {
	TaskID uuid.UUID `json:"task_id"`
	Error  string    `json:"error,omitempty"`
}

// CheckoutResult reports the closed session and the best-effort task
// updates it triggered.
type CheckoutResult struct {
	Session      *AttendanceSession `json:"session"`
	TaskOutcomes []TaskOutcome      `json:"task_outcomes"`
	TasksUpdated int                `json:"tasks_updated"`
	TasksFailed  int                `json:"tasks_failed"`
}

type Service interface {
	StartSession(ctx context.Context, input StartSessionInput) (*AttendanceSession, error)
	CheckoutSession(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
	AppendLocationTrack(ctx context.Context, sessionID uuid.UUID, points []TrackPoint) error
	GetSession(ctx context.Context, id uuid.UUID) (*AttendanceSession, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]AttendanceSession, int64, error)
	LogsForRange(ctx context.Context, from, to time.Time) ([]Log, error)
}

type service struct {
	repo     SessionRepository
	tasks    TaskCoordinator
	projects ProjectLookup
	notifier notification.Notifier
	auditor  audit.Recorder
	redis    *cache.RedisClient
	logger   *zap.Logger
}

func NewService(
	repo SessionRepository,
	tasks TaskCoordinator,
	projects ProjectLookup,
	notifier notification.Notifier,
	auditor audit.Recorder,
	redis *cache.RedisClient,
	logger *zap.Logger,
) Service {
	return &service{
		repo:     repo,
		tasks:    tasks,
		projects: projects,
		notifier: notifier,
		auditor:  auditor,
		redis:    redis,
		logger:   logger,
	}
}

// StartSession opens a session for today. The open-session scan and
// the insert run in one transaction with the worker's open rows locked,
// so two racing check-ins for the same worker cannot both pass the scan.
func (s *service) StartSession(ctx context.Context, input StartSessionInput) (*AttendanceSession, error) {
	if input.WorkerID == uuid.Nil {
		return nil, apperrors.Validation("worker_id", "worker id is required")
	}
	if input.ProjectID == uuid.Nil {
		return nil, apperrors.Validation("project_id", "project id is required")
	}

	now := time.Now().UTC()
	var session *AttendanceSession

	err := s.repo.Transaction(ctx, func(tx SessionRepository) error {
		open, err := tx.FindOpenForWorker(ctx, input.WorkerID, now, true)
		if err != nil {
			return err
		}

		for i := range open {
			if open[i].ProjectID == input.ProjectID {
				// Duplicate check-in on the same project: idempotent.
				session = &open[i]
				return nil
			}
		}
		if len(open) > 0 {
			return apperrors.Conflict("already checked in on project %q, check out there first",
				s.projectName(ctx, open[0].ProjectID))
		}

		session = &AttendanceSession{
			ID:              uuid.New(),
			WorkerID:        input.WorkerID,
			ProjectID:       input.ProjectID,
			Date:            DayOf(now),
			CheckInTime:     now,
			CheckInLat:      input.GPS.Latitude,
			CheckInLng:      input.GPS.Longitude,
			CheckInAccuracy: input.GPS.Accuracy,
			CheckInSelfie:   input.SelfieURL,
			AutoLogged:      input.AutoLogged,
			ArrivalStatus:   ClassifyArrival(now),
			ReviewStatus:    ReviewStatusPending,
		}
		return tx.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.notifyReviewers(ctx, "Worker checked in",
		fmt.Sprintf("Worker %s checked in on project %s", input.WorkerID, s.projectName(ctx, input.ProjectID)),
		session.ID)
	s.auditor.Record(ctx, input.WorkerID, "session_started", "attendance_session", session.ID, "Attendance session opened")
	s.publishSessionEvent(ctx, session, events.EventTypeSessionOpened)

	return session, nil
}

// CheckoutSession closes the newest open session for worker+project
// today and applies the reported task completions, best-effort per task.
func (s *service) CheckoutSession(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if input.WorkerID == uuid.Nil {
		return nil, apperrors.Validation("worker_id", "worker id is required")
	}
	if input.ProjectID == uuid.Nil {
		return nil, apperrors.Validation("project_id", "project id is required")
	}

	now := time.Now().UTC()

	session, err := s.repo.FindLatestOpen(ctx, input.WorkerID, input.ProjectID, now)
	if err != nil {
		if err == ErrSessionNotFound {
			return nil, apperrors.NotFound("no open session for this worker and project today")
		}
		return nil, err
	}

	checkOut := now
	if !checkOut.After(session.CheckInTime) {
		// Check-out must be strictly after check-in.
		checkOut = session.CheckInTime.Add(time.Second)
	}

	session.CheckOutTime = &checkOut
	session.DepartureStatus = ClassifyDeparture(checkOut)
	if input.GPS != nil {
		session.CheckOutLat = &input.GPS.Latitude
		session.CheckOutLng = &input.GPS.Longitude
		session.CheckOutAccuracy = &input.GPS.Accuracy
	}
	if input.SelfieURL != "" {
		session.CheckOutSelfie = input.SelfieURL
	}
	session.CompletedTaskIDs = UUIDSlice(input.CompletedTaskIDs)
	if input.Notes != "" {
		session.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	result := &CheckoutResult{Session: session}
	for _, taskID := range input.CompletedTaskIDs {
		outcome := TaskOutcome{TaskID: taskID}
		if err := s.tasks.CompleteFromSession(ctx, taskID, session.ProjectID, checkOut, input.Notes, input.SelfieURL); err != nil {
			outcome.Error = err.Error()
			result.TasksFailed++
			s.logger.Warn("Task update failed during checkout",
				zap.String("session_id", session.ID.String()),
				zap.String("task_id", taskID.String()),
				zap.Error(err),
			)
		} else {
			result.TasksUpdated++
		}
		result.TaskOutcomes = append(result.TaskOutcomes, outcome)
	}

	s.notifyReviewers(ctx, "Worker checked out",
		fmt.Sprintf("Worker %s checked out of project %s with %d task(s) reported done",
			input.WorkerID, s.projectName(ctx, input.ProjectID), len(input.CompletedTaskIDs)),
		session.ID)
	s.auditor.Record(ctx, input.WorkerID, "session_closed", "attendance_session", session.ID, "Attendance session closed")
	s.publishSessionEvent(ctx, session, events.EventTypeSessionClosed)

	return result, nil
}

func (s *service) AppendLocationTrack(ctx context.Context, sessionID uuid.UUID, points []TrackPoint) error {
	if len(points) == 0 {
		return apperrors.Validation("points", "at least one track point is required")
	}
	if err := s.repo.AppendTrack(ctx, sessionID, points); err != nil {
		if err == ErrSessionNotFound {
			return apperrors.NotFound("session %s does not exist", sessionID)
		}
		return err
	}
	return nil
}

func (s *service) GetSession(ctx context.Context, id uuid.UUID) (*AttendanceSession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == ErrSessionNotFound {
			return nil, apperrors.NotFound("session %s does not exist", id)
		}
		return nil, err
	}
	return session, nil
}

func (s *service) ListSessions(ctx context.Context, filter SessionFilter) ([]AttendanceSession, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) LogsForRange(ctx context.Context, from, to time.Time) ([]Log, error) {
	return s.repo.LogsForRange(ctx, from, to)
}

func (s *service) projectName(ctx context.Context, id uuid.UUID) string {
	if s.projects == nil {
		return id.String()
	}
	p, err := s.projects.FindByID(ctx, id)
	if err != nil || p == nil {
		return id.String()
	}
	return p.Name
}

// notifyReviewers fans out to supervisors and admins. Failures are
// downstream-only: logged, never surfaced to the caller.
func (s *service) notifyReviewers(ctx context.Context, title, content string, sessionID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyRoles(ctx, roles.ReviewerRoles(), title, content, "attendance_session", sessionID); err != nil {
		s.logger.Warn("Failed to notify reviewers", zap.Error(err))
	}
}

func (s *service) publishSessionEvent(ctx context.Context, session *AttendanceSession, eventType string) {
	if s.redis == nil {
		return
	}
	event := &events.DashboardEvent{
		EventType: eventType,
		UserID:    session.WorkerID,
		EntityID:  session.ID,
		Timestamp: time.Now().UTC(),
		Details: map[string]interface{}{
			"project_id":    session.ProjectID,
			"review_status": session.ReviewStatus,
		},
	}
	if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish dashboard event", zap.Error(err))
	}
}
