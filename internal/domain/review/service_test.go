package review

import (
	"context"
	"testing"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/audit"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionRepo struct {
	sessions map[uuid.UUID]attendance.AttendanceSession
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *attendance.AttendanceSession) error {
	r.sessions[s.ID] = *s
	return nil
}

func (r *fakeSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*attendance.AttendanceSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, attendance.ErrSessionNotFound
	}
	found := s
	return &found, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, s *attendance.AttendanceSession) error {
	if _, ok := r.sessions[s.ID]; !ok {
		return attendance.ErrSessionNotFound
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, filter attendance.SessionFilter) ([]attendance.AttendanceSession, int64, error) {
	return nil, 0, nil
}

func (r *fakeSessionRepo) FindOpenForWorker(ctx context.Context, workerID uuid.UUID, date time.Time, lock bool) ([]attendance.AttendanceSession, error) {
	return nil, nil
}

func (r *fakeSessionRepo) FindLatestOpen(ctx context.Context, workerID, projectID uuid.UUID, date time.Time) (*attendance.AttendanceSession, error) {
	return nil, attendance.ErrSessionNotFound
}

func (r *fakeSessionRepo) AppendTrack(ctx context.Context, sessionID uuid.UUID, points []attendance.TrackPoint) error {
	return nil
}

func (r *fakeSessionRepo) LogsForRange(ctx context.Context, from, to time.Time) ([]attendance.Log, error) {
	return nil, nil
}

func (r *fakeSessionRepo) Transaction(ctx context.Context, fn func(attendance.SessionRepository) error) error {
	return fn(r)
}

type fakeTaskRepo struct {
	tasks map[uuid.UUID]task.Task
}

func (r *fakeTaskRepo) Create(ctx context.Context, t *task.Task) error {
	r.tasks[t.ID] = *t
	return nil
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	found := t
	return &found, nil
}

func (r *fakeTaskRepo) FindAll(ctx context.Context, filter task.TaskFilter) ([]task.Task, int64, error) {
	return nil, 0, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, t *task.Task) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return task.ErrTaskNotFound
	}
	r.tasks[t.ID] = *t
	return nil
}

type fakeResolver struct {
	roles map[uuid.UUID]roles.Role
}

func (r *fakeResolver) ResolveRole(ctx context.Context, userID uuid.UUID) (roles.Role, error) {
	role, ok := r.roles[userID]
	if !ok {
		return "", roles.ErrUserNotFound
	}
	return role, nil
}

type fakeNotifier struct {
	notified []uuid.UUID
}

func (n *fakeNotifier) NotifyRoles(ctx context.Context, audience []roles.Role, title, content, reference string, referenceID uuid.UUID) error {
	return nil
}

func (n *fakeNotifier) NotifyUser(ctx context.Context, userID uuid.UUID, title, content, reference string, referenceID uuid.UUID) error {
	n.notified = append(n.notified, userID)
	return nil
}

type nopRecorder struct{}

func (nopRecorder) Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, description string) {
}

func (nopRecorder) List(ctx context.Context, entityID uuid.UUID, limit int) ([]audit.Entry, error) {
	return nil, nil
}

type fixture struct {
	sessions   *fakeSessionRepo
	tasks      *fakeTaskRepo
	resolver   *fakeResolver
	notifier   *fakeNotifier
	service    Service
	supervisor uuid.UUID
	worker     uuid.UUID
}

func newFixture() *fixture {
	sessions := &fakeSessionRepo{sessions: make(map[uuid.UUID]attendance.AttendanceSession)}
	tasks := &fakeTaskRepo{tasks: make(map[uuid.UUID]task.Task)}
	resolver := &fakeResolver{roles: make(map[uuid.UUID]roles.Role)}
	notifier := &fakeNotifier{}

	f := &fixture{
		sessions:   sessions,
		tasks:      tasks,
		resolver:   resolver,
		notifier:   notifier,
		supervisor: uuid.New(),
		worker:     uuid.New(),
	}
	resolver.roles[f.supervisor] = roles.RoleSupervisor
	resolver.roles[f.worker] = roles.RoleWorker

	f.service = NewService(sessions, tasks, resolver, notifier, nopRecorder{}, nil, zap.NewNop())
	return f
}

func (f *fixture) seedClosedSession() *attendance.AttendanceSession {
	now := time.Now().UTC()
	out := now.Add(8 * time.Hour)
	s := attendance.AttendanceSession{
		ID:           uuid.New(),
		WorkerID:     f.worker,
		ProjectID:    uuid.New(),
		Date:         attendance.DayOf(now),
		CheckInTime:  now,
		CheckOutTime: &out,
		ReviewStatus: attendance.ReviewStatusPending,
	}
	f.sessions.sessions[s.ID] = s
	return &s
}

func (f *fixture) seedTask(status task.TaskStatus) *task.Task {
	assignee := f.worker
	t := task.Task{
		ID:         uuid.New(),
		Title:      "Pour foundation",
		Status:     status,
		ProjectID:  uuid.New(),
		AssigneeID: &assignee,
		CreatorID:  f.supervisor,
	}
	f.tasks.tasks[t.ID] = t
	return &t
}

func TestReviewSessionApprove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := f.seedClosedSession()

	reviewed, err := f.service.ReviewSession(ctx, session.ID, f.supervisor, attendance.ReviewStatusApproved, "looks good")
	require.NoError(t, err)

	assert.Equal(t, attendance.ReviewStatusApproved, reviewed.ReviewStatus)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, f.supervisor, *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, "looks good", reviewed.ReviewNotes)
	assert.Contains(t, f.notifier.notified, f.worker)
}

func TestReviewSessionRejectWithoutNotesGetsPlaceholder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := f.seedClosedSession()

	reviewed, err := f.service.ReviewSession(ctx, session.ID, f.supervisor, attendance.ReviewStatusRejected, "   ")
	require.NoError(t, err)

	assert.Equal(t, attendance.ReviewStatusRejected, reviewed.ReviewStatus)
	assert.Equal(t, DefaultRejectionNotes, reviewed.ReviewNotes)
}

func TestReviewSessionRoleGate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := f.seedClosedSession()

	_, err := f.service.ReviewSession(ctx, session.ID, f.worker, attendance.ReviewStatusApproved, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))

	_, err = f.service.ReviewSession(ctx, session.ID, uuid.New(), attendance.ReviewStatusApproved, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
}

func TestReviewSessionValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := f.seedClosedSession()

	_, err := f.service.ReviewSession(ctx, session.ID, f.supervisor, attendance.ReviewStatusPending, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.service.ReviewSession(ctx, uuid.New(), f.supervisor, attendance.ReviewStatusApproved, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestReviewSessionReReviewOverwrites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := f.seedClosedSession()

	_, err := f.service.ReviewSession(ctx, session.ID, f.supervisor, attendance.ReviewStatusApproved, "")
	require.NoError(t, err)

	reviewed, err := f.service.ReviewSession(ctx, session.ID, f.supervisor, attendance.ReviewStatusRejected, "missing checkout selfie")
	require.NoError(t, err)
	assert.Equal(t, attendance.ReviewStatusRejected, reviewed.ReviewStatus)
	assert.Equal(t, "missing checkout selfie", reviewed.ReviewNotes)
}

func TestReviewTaskVerify(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tsk := f.seedTask(task.TaskStatusNeedsReview)

	reviewed, err := f.service.ReviewTask(ctx, tsk.ID, f.supervisor, task.TaskStatusVerified, "")
	require.NoError(t, err)

	assert.Equal(t, task.TaskStatusVerified, reviewed.Status)
	require.NotNil(t, reviewed.ReviewerID)
	assert.Equal(t, f.supervisor, *reviewed.ReviewerID)
	assert.Contains(t, f.notifier.notified, f.worker)
}

func TestReviewTaskRejectRequiresNotes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tsk := f.seedTask(task.TaskStatusNeedsReview)

	_, err := f.service.ReviewTask(ctx, tsk.ID, f.supervisor, task.TaskStatusRejected, "bad")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	reviewed, err := f.service.ReviewTask(ctx, tsk.ID, f.supervisor, task.TaskStatusRejected, "photos do not show the finished work")
	require.NoError(t, err)
	assert.Equal(t, task.TaskStatusRejected, reviewed.Status)
}

func TestReviewTaskInvalidStates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Only review decisions are accepted as target statuses.
	tsk := f.seedTask(task.TaskStatusNeedsReview)
	_, err := f.service.ReviewTask(ctx, tsk.ID, f.supervisor, task.TaskStatusInProgress, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	// A task still in progress is not reviewable.
	running := f.seedTask(task.TaskStatusInProgress)
	_, err = f.service.ReviewTask(ctx, running.ID, f.supervisor, task.TaskStatusVerified, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestReviewTaskReReviewOverwrites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tsk := f.seedTask(task.TaskStatusVerified)

	reviewed, err := f.service.ReviewTask(ctx, tsk.ID, f.supervisor, task.TaskStatusRejected, "recount required on panel install")
	require.NoError(t, err)
	assert.Equal(t, task.TaskStatusRejected, reviewed.Status)
}

func TestReviewTaskRoleGate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tsk := f.seedTask(task.TaskStatusNeedsReview)

	_, err := f.service.ReviewTask(ctx, tsk.ID, f.worker, task.TaskStatusVerified, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
}
