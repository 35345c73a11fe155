package analytics

import (
	"testing"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/project"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func projectDueIn(days int, today time.Time) *project.Project {
	due := today.AddDate(0, 0, days)
	return &project.Project{ID: uuid.New(), Name: "Site A", DueDate: &due}
}

func tasksWithStatuses(statuses ...task.TaskStatus) []task.Task {
	tasks := make([]task.Task, len(statuses))
	for i, s := range statuses {
		tasks[i] = task.Task{ID: uuid.New(), Status: s}
	}
	return tasks
}

func TestPredictRisk(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		project     *project.Project
		tasks       []task.Task
		sensitivity Sensitivity
		want        RiskLevel
	}{
		{
			name:        "all tasks incomplete with five days left is at risk",
			project:     projectDueIn(5, today),
			tasks:       tasksWithStatuses(task.TaskStatusPending, task.TaskStatusInProgress),
			sensitivity: SensitivityMedium,
			want:        RiskAtRisk,
		},
		{
			name:        "same backlog with ten days left is on track",
			project:     projectDueIn(10, today),
			tasks:       tasksWithStatuses(task.TaskStatusPending, task.TaskStatusInProgress),
			sensitivity: SensitivityMedium,
			want:        RiskOnTrack,
		},
		{
			name:        "mostly verified work stays on track near the deadline",
			project:     projectDueIn(3, today),
			tasks:       tasksWithStatuses(task.TaskStatusVerified, task.TaskStatusVerified, task.TaskStatusVerified, task.TaskStatusCompleted, task.TaskStatusPending),
			sensitivity: SensitivityMedium,
			want:        RiskOnTrack,
		},
		{
			name:        "high sensitivity trips on a small backlog",
			project:     projectDueIn(3, today),
			tasks:       tasksWithStatuses(task.TaskStatusVerified, task.TaskStatusVerified, task.TaskStatusVerified, task.TaskStatusPending),
			sensitivity: SensitivityHigh,
			want:        RiskAtRisk,
		},
		{
			name:        "no tasks means no incomplete work",
			project:     projectDueIn(2, today),
			tasks:       nil,
			sensitivity: SensitivityHigh,
			want:        RiskOnTrack,
		},
		{
			name:        "no due date assumes thirty days out",
			project:     &project.Project{ID: uuid.New(), Name: "Open-ended"},
			tasks:       tasksWithStatuses(task.TaskStatusPending),
			sensitivity: SensitivityHigh,
			want:        RiskOnTrack,
		},
		{
			name:        "needs-review still counts as incomplete",
			project:     projectDueIn(2, today),
			tasks:       tasksWithStatuses(task.TaskStatusNeedsReview, task.TaskStatusNeedsReview),
			sensitivity: SensitivityMedium,
			want:        RiskAtRisk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prediction := PredictRisk(tt.project, tt.tasks, today, tt.sensitivity)
			assert.Equal(t, tt.want, prediction.RiskLevel)
			assert.Equal(t, tt.project.ID, prediction.ProjectID)
			assert.NotEmpty(t, prediction.Reason)
		})
	}
}

func TestPredictRiskOverdueProject(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	p := projectDueIn(-2, today)

	prediction := PredictRisk(p, tasksWithStatuses(task.TaskStatusPending), today, SensitivityMedium)
	assert.Equal(t, RiskAtRisk, prediction.RiskLevel)
}
