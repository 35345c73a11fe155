package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/audit"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/project"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSessionRepo is an in-memory SessionRepository for service tests.
type fakeSessionRepo struct {
	sessions map[uuid.UUID]AttendanceSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]AttendanceSession)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *AttendanceSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *fakeSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*AttendanceSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	found := s
	return &found, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, s *AttendanceSession) error {
	if _, ok := r.sessions[s.ID]; !ok {
		return ErrSessionNotFound
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, filter SessionFilter) ([]AttendanceSession, int64, error) {
	var out []AttendanceSession
	for _, s := range r.sessions {
		if filter.WorkerID != nil && s.WorkerID != *filter.WorkerID {
			continue
		}
		if filter.ProjectID != nil && s.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.OnlyOpen && !s.IsOpen() {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSessionRepo) FindOpenForWorker(ctx context.Context, workerID uuid.UUID, date time.Time, lock bool) ([]AttendanceSession, error) {
	var out []AttendanceSession
	for _, s := range r.sessions {
		if s.WorkerID == workerID && s.Date.Equal(DayOf(date)) && s.IsOpen() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) FindLatestOpen(ctx context.Context, workerID, projectID uuid.UUID, date time.Time) (*AttendanceSession, error) {
	var latest *AttendanceSession
	for id := range r.sessions {
		s := r.sessions[id]
		if s.WorkerID != workerID || s.ProjectID != projectID || !s.Date.Equal(DayOf(date)) || !s.IsOpen() {
			continue
		}
		if latest == nil || s.CheckInTime.After(latest.CheckInTime) {
			copied := s
			latest = &copied
		}
	}
	if latest == nil {
		return nil, ErrSessionNotFound
	}
	return latest, nil
}

func (r *fakeSessionRepo) AppendTrack(ctx context.Context, sessionID uuid.UUID, points []TrackPoint) error {
	s, ok := r.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	s.LocationTrack = append(s.LocationTrack, points...)
	r.sessions[sessionID] = s
	return nil
}

func (r *fakeSessionRepo) LogsForRange(ctx context.Context, from, to time.Time) ([]Log, error) {
	var logs []Log
	for _, s := range r.sessions {
		if s.IsOpen() || s.Date.Before(DayOf(from)) || !s.Date.Before(DayOf(to)) {
			continue
		}
		logs = append(logs, Log{
			WorkerID:        s.WorkerID,
			Date:            s.Date,
			ArrivalStatus:   s.ArrivalStatus,
			DepartureStatus: s.DepartureStatus,
		})
	}
	return logs, nil
}

func (r *fakeSessionRepo) Transaction(ctx context.Context, fn func(SessionRepository) error) error {
	return fn(r)
}

// fakeCoordinator records CompleteFromSession calls and fails on demand.
type fakeCoordinator struct {
	calls   []uuid.UUID
	failFor map[uuid.UUID]error
}

func (c *fakeCoordinator) CompleteFromSession(ctx context.Context, taskID, sessionProjectID uuid.UUID, checkoutTime time.Time, notes, mediaURL string) error {
	c.calls = append(c.calls, taskID)
	if err, ok := c.failFor[taskID]; ok {
		return err
	}
	return nil
}

type fakeProjects struct {
	projects map[uuid.UUID]*project.Project
}

func (p *fakeProjects) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	if proj, ok := p.projects[id]; ok {
		return proj, nil
	}
	return nil, project.ErrProjectNotFound
}

type fakeNotifier struct {
	titles []string
}

func (n *fakeNotifier) NotifyRoles(ctx context.Context, audience []roles.Role, title, content, reference string, referenceID uuid.UUID) error {
	n.titles = append(n.titles, title)
	return nil
}

func (n *fakeNotifier) NotifyUser(ctx context.Context, userID uuid.UUID, title, content, reference string, referenceID uuid.UUID) error {
	n.titles = append(n.titles, title)
	return nil
}

type nopRecorder struct{}

func (nopRecorder) Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, description string) {
}

func (nopRecorder) List(ctx context.Context, entityID uuid.UUID, limit int) ([]audit.Entry, error) {
	return nil, nil
}

type fixture struct {
	repo        *fakeSessionRepo
	coordinator *fakeCoordinator
	projects    *fakeProjects
	notifier    *fakeNotifier
	service     Service
}

func newFixture() *fixture {
	repo := newFakeSessionRepo()
	coordinator := &fakeCoordinator{failFor: make(map[uuid.UUID]error)}
	projects := &fakeProjects{projects: make(map[uuid.UUID]*project.Project)}
	notifier := &fakeNotifier{}
	svc := NewService(repo, coordinator, projects, notifier, nopRecorder{}, nil, zap.NewNop())
	return &fixture{
		repo:        repo,
		coordinator: coordinator,
		projects:    projects,
		notifier:    notifier,
		service:     svc,
	}
}

func (f *fixture) addProject(name string) uuid.UUID {
	id := uuid.New()
	f.projects.projects[id] = &project.Project{ID: id, Name: name}
	return id
}

func TestStartSessionValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.StartSession(ctx, StartSessionInput{ProjectID: uuid.New()})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.service.StartSession(ctx, StartSessionInput{WorkerID: uuid.New()})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestStartSessionOpensSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	worker := uuid.New()
	projectID := f.addProject("Riverside build")

	session, err := f.service.StartSession(ctx, StartSessionInput{
		WorkerID:  worker,
		ProjectID: projectID,
		GPS:       GPSFix{Latitude: 12.97, Longitude: 77.59, Accuracy: 8},
		SelfieURL: "https://cdn/selfie.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, worker, session.WorkerID)
	assert.Equal(t, projectID, session.ProjectID)
	assert.Equal(t, ReviewStatusPending, session.ReviewStatus)
	assert.True(t, session.IsOpen())
	assert.False(t, session.CheckInTime.IsZero())
	assert.NotEmpty(t, session.ArrivalStatus)
	assert.Contains(t, f.notifier.titles, "Worker checked in")
}

func TestStartSessionIdempotentOnSameProject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	worker := uuid.New()
	projectID := f.addProject("Riverside build")

	first, err := f.service.StartSession(ctx, StartSessionInput{WorkerID: worker, ProjectID: projectID})
	require.NoError(t, err)

	second, err := f.service.StartSession(ctx, StartSessionInput{WorkerID: worker, ProjectID: projectID})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.repo.sessions, 1)
}

func TestStartSessionConflictAcrossProjects(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	worker := uuid.New()
	projectA := f.addProject("Project Alpha")
	projectB := f.addProject("Project Beta")

	_, err := f.service.StartSession(ctx, StartSessionInput{WorkerID: worker, ProjectID: projectA})
	require.NoError(t, err)

	_, err = f.service.StartSession(ctx, StartSessionInput{WorkerID: worker, ProjectID: projectB})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	// The conflict names the project holding the open session.
	assert.Contains(t, err.Error(), "Project Alpha")
	assert.Len(t, f.repo.sessions, 1)
}

func TestCheckoutWithoutOpenSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.CheckoutSession(ctx, CheckoutInput{WorkerID: uuid.New(), ProjectID: uuid.New()})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCheckoutClosesSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	worker := uuid.New()
	projectID := f.addProject("Riverside build")

	opened, err := f.service.StartSession(ctx, StartSessionInput{WorkerID: worker, ProjectID: projectID})
	require.NoError(t, err)

	lat, lng := 12.98, 77.60
	result, err := f.service.CheckoutSession(ctx, CheckoutInput{
		WorkerID:  worker,
		ProjectID: projectID,
		GPS:       &GPSFix{Latitude: lat, Longitude: lng},
		Notes:     "wrapped up early section",
	})
	require.NoError(t, err)

	session := result.Session
	assert.Equal(t, opened.ID, session.ID)
	require.NotNil(t, session.CheckOutTime)
	// Check-out is always strictly after check-in, even when both land
	// in the same instant.
	assert.True(t, session.CheckOutTime.After(session.CheckInTime))
	assert.NotEmpty(t, session.DepartureStatus)
	require.NotNil(t, session.CheckOutLat)
	assert.Equal(t, lat, *session.CheckOutLat)
	assert.Equal(t, "wrapped up early section", session.Notes)
	stored := f.repo.sessions[session.ID]
	assert.False(t, stored.IsOpen())
	assert.Contains(t, f.notifier.titles, "Worker checked out")
}

func TestCheckoutBestEffortTaskUpdates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	worker := uuid.New()
	projectID := f.addProject("Riverside build")

	_, err := f.service.StartSession(ctx, StartSessionInput{WorkerID: worker, ProjectID: projectID})
	require.NoError(t, err)

	goodTask := uuid.New()
	badTask := uuid.New()
	f.coordinator.failFor[badTask] = errors.New("task belongs to a different project")

	result, err := f.service.CheckoutSession(ctx, CheckoutInput{
		WorkerID:         worker,
		ProjectID:        projectID,
		CompletedTaskIDs: []uuid.UUID{goodTask, badTask},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.TasksUpdated)
	assert.Equal(t, 1, result.TasksFailed)
	require.Len(t, result.TaskOutcomes, 2)
	assert.Empty(t, result.TaskOutcomes[0].Error)
	assert.NotEmpty(t, result.TaskOutcomes[1].Error)
	assert.Equal(t, []uuid.UUID{goodTask, badTask}, f.coordinator.calls)

	// Session closed regardless of task failures.
	assert.False(t, result.Session.IsOpen())
	assert.Equal(t, UUIDSlice{goodTask, badTask}, result.Session.CompletedTaskIDs)
}

func TestWorkerCanStartAgainAfterCheckout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	worker := uuid.New()
	projectA := f.addProject("Project Alpha")
	projectB := f.addProject("Project Beta")

	_, err := f.service.StartSession(ctx, StartSessionInput{WorkerID: worker, ProjectID: projectA})
	require.NoError(t, err)

	_, err = f.service.CheckoutSession(ctx, CheckoutInput{WorkerID: worker, ProjectID: projectA})
	require.NoError(t, err)

	session, err := f.service.StartSession(ctx, StartSessionInput{WorkerID: worker, ProjectID: projectB})
	require.NoError(t, err)
	assert.Equal(t, projectB, session.ProjectID)
	assert.Len(t, f.repo.sessions, 2)
}

func TestAppendLocationTrack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	worker := uuid.New()
	projectID := f.addProject("Riverside build")

	session, err := f.service.StartSession(ctx, StartSessionInput{WorkerID: worker, ProjectID: projectID})
	require.NoError(t, err)

	err = f.service.AppendLocationTrack(ctx, session.ID, nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	err = f.service.AppendLocationTrack(ctx, uuid.New(), []TrackPoint{{Latitude: 1, Longitude: 2}})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	points := []TrackPoint{
		{Latitude: 12.97, Longitude: 77.59, Timestamp: time.Now().UTC()},
		{Latitude: 12.98, Longitude: 77.60, Timestamp: time.Now().UTC()},
	}
	require.NoError(t, f.service.AppendLocationTrack(ctx, session.ID, points))
	assert.Len(t, f.repo.sessions[session.ID].LocationTrack, 2)
}

func TestClassification(t *testing.T) {
	assert.Equal(t, ArrivalOnTime, ClassifyArrival(time.Date(2026, 8, 29, 8, 45, 0, 0, time.UTC)))
	assert.Equal(t, ArrivalLate, ClassifyArrival(time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, DepartureLeftEarly, ClassifyDeparture(time.Date(2026, 8, 29, 16, 0, 0, 0, time.UTC)))
	assert.Equal(t, DepartureOnTime, ClassifyDeparture(time.Date(2026, 8, 29, 17, 30, 0, 0, time.UTC)))
}

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2026, 8, 30, 1, 30, 0, 0, loc) // still Aug 29 in UTC
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), DayOf(ts))
}
