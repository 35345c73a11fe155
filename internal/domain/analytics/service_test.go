package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/payroll"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/project"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLogSource struct {
	logs []attendance.Log
}

func (f *fakeLogSource) LogsForRange(ctx context.Context, from, to time.Time) ([]attendance.Log, error) {
	return f.logs, nil
}

type fakeTaskSource struct {
	tasks []task.Task
}

func (f *fakeTaskSource) FindAll(ctx context.Context, filter task.TaskFilter) ([]task.Task, int64, error) {
	return f.tasks, int64(len(f.tasks)), nil
}

type fakeProjectSource struct {
	projects map[uuid.UUID]*project.Project
}

func (f *fakeProjectSource) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	if p, ok := f.projects[id]; ok {
		return p, nil
	}
	return nil, project.ErrProjectNotFound
}

type fakePayrollSource struct {
	records []payroll.Record
}

func (f *fakePayrollSource) FindAll(ctx context.Context, filter payroll.Filter) ([]payroll.Record, error) {
	return f.records, nil
}

func newServiceFixture() (*fakeLogSource, *fakeTaskSource, *fakeProjectSource, *fakePayrollSource, Service) {
	logs := &fakeLogSource{}
	tasks := &fakeTaskSource{}
	projects := &fakeProjectSource{projects: make(map[uuid.UUID]*project.Project)}
	payrolls := &fakePayrollSource{}
	svc := NewService(logs, tasks, projects, payrolls, nil, zap.NewNop())
	return logs, tasks, projects, payrolls, svc
}

func TestServiceAttendanceReport(t *testing.T) {
	logs, _, _, _, svc := newServiceFixture()
	ctx := context.Background()
	worker := uuid.New()

	logs.logs = []attendance.Log{
		lateLog(worker, 1),
		lateLog(worker, 2),
	}

	report, err := svc.AttendanceReport(ctx, time.Time{}, time.Time{}, SensitivityHigh)
	require.NoError(t, err)
	assert.Equal(t, 2, report.LateCount)
	assert.Len(t, report.Flagged, 1)
}

func TestServiceAttendanceReportRejectsInvertedRange(t *testing.T) {
	_, _, _, _, svc := newServiceFixture()
	ctx := context.Background()

	from := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.AttendanceReport(ctx, from, to, SensitivityMedium)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestServiceProjectRisk(t *testing.T) {
	_, tasks, projects, _, svc := newServiceFixture()
	ctx := context.Background()

	due := time.Now().UTC().AddDate(0, 0, 3)
	projectID := uuid.New()
	projects.projects[projectID] = &project.Project{ID: projectID, Name: "Depot", DueDate: &due}
	tasks.tasks = tasksWithStatuses(task.TaskStatusPending, task.TaskStatusInProgress)

	prediction, err := svc.ProjectRisk(ctx, projectID, SensitivityMedium)
	require.NoError(t, err)
	assert.Equal(t, RiskAtRisk, prediction.RiskLevel)

	_, err = svc.ProjectRisk(ctx, uuid.New(), SensitivityMedium)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestServicePayrollForecast(t *testing.T) {
	_, _, _, payrolls, svc := newServiceFixture()
	ctx := context.Background()

	end := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	payrolls.records = []payroll.Record{
		{WorkerID: uuid.New(), PeriodEnd: end, NetPay: 1000, Status: payroll.PayrollStatusApproved},
		{WorkerID: uuid.New(), PeriodEnd: end.AddDate(0, 0, -14), NetPay: 1200, Status: payroll.PayrollStatusApproved},
	}

	forecast, err := svc.PayrollForecast(ctx, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, 1100.00, forecast)
}

func TestServiceRecommendations(t *testing.T) {
	logs, tasks, projects, payrolls, svc := newServiceFixture()
	ctx := context.Background()
	worker := uuid.New()

	due := time.Now().UTC().AddDate(0, 0, 3)
	projectID := uuid.New()
	projects.projects[projectID] = &project.Project{ID: projectID, Name: "Depot", DueDate: &due}
	tasks.tasks = tasksWithStatuses(task.TaskStatusPending)
	logs.logs = []attendance.Log{lateLog(worker, 1), lateLog(worker, 2)}
	payrolls.records = []payroll.Record{
		{WorkerID: worker, PeriodEnd: due, NetPay: 1500, Status: payroll.PayrollStatusApproved},
	}

	recommendations, err := svc.Recommendations(ctx, projectID, SensitivityHigh, 0)
	require.NoError(t, err)
	assert.Len(t, recommendations, 3)
}
