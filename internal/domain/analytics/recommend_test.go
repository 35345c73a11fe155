package analytics

import (
	"testing"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/payroll"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRecommendAllCategories(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	worker := uuid.New()

	logs := []attendance.Log{
		lateLog(worker, 1),
		lateLog(worker, 2),
	}
	p := projectDueIn(3, today)
	tasks := tasksWithStatuses(task.TaskStatusPending, task.TaskStatusInProgress)
	records := []payroll.Record{
		{WorkerID: worker, PeriodEnd: today, NetPay: 1500, Status: payroll.PayrollStatusApproved},
	}

	recommendations := Recommend(logs, p, tasks, records, today, SensitivityHigh, 3)

	assert.Len(t, recommendations, 3)
	assert.Equal(t, CategoryAttendance, recommendations[0].Category)
	assert.Equal(t, CategoryTask, recommendations[1].Category)
	assert.Equal(t, CategoryPayroll, recommendations[2].Category)
	assert.Equal(t, 0.7, recommendations[0].Confidence)
	assert.Equal(t, 0.8, recommendations[1].Confidence)
	assert.Equal(t, 0.6, recommendations[2].Confidence)
}

func TestRecommendSilentCategoriesOmitted(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	// Clean attendance, healthy project, no payroll history.
	p := projectDueIn(60, today)
	tasks := tasksWithStatuses(task.TaskStatusVerified)

	recommendations := Recommend(nil, p, tasks, nil, today, SensitivityMedium, 3)
	assert.Empty(t, recommendations)
}

func TestRecommendPayrollOnly(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	p := projectDueIn(60, today)

	records := []payroll.Record{
		{WorkerID: uuid.New(), PeriodEnd: today, NetPay: 2000, Status: payroll.PayrollStatusApproved},
	}

	recommendations := Recommend(nil, p, nil, records, today, SensitivityMedium, 3)

	assert.Len(t, recommendations, 1)
	assert.Equal(t, CategoryPayroll, recommendations[0].Category)
	assert.Contains(t, recommendations[0].Message, "2000.00")
}

func TestRecommendNilProjectSkipsRiskHeuristic(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	recommendations := Recommend(nil, nil, nil, nil, today, SensitivityMedium, 3)
	assert.Empty(t, recommendations)
}
