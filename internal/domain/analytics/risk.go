package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/project"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/google/uuid"
)

type RiskLevel string

const (
	RiskOnTrack RiskLevel = "on-track"
	RiskAtRisk  RiskLevel = "at-risk"
)

// RiskPrediction is the binary deadline-risk classification for a project.
type RiskPrediction struct {
	ProjectID uuid.UUID `json:"project_id"`
	RiskLevel RiskLevel `json:"risk_level"`
	Reason    string    `json:"reason"`
}

// riskThresholds maps sensitivity to the incomplete-work ratio that
// trips the at-risk classification.
var riskThresholds = map[Sensitivity]float64{
	SensitivityHigh:   0.2,
	SensitivityMedium: 0.3,
	SensitivityLow:    0.5,
}

// DefaultDaysLeft is assumed when a project has no due date.
const DefaultDaysLeft = 30

// PredictRisk classifies a project as at-risk when the share of
// incomplete tasks exceeds the threshold with less than a week left.
func PredictRisk(p *project.Project, tasks []task.Task, today time.Time, sensitivity Sensitivity) RiskPrediction {
	threshold, ok := riskThresholds[sensitivity]
	if !ok {
		threshold = riskThresholds[SensitivityMedium]
	}

	var pctIncomplete float64
	if len(tasks) > 0 {
		incomplete := 0
		for _, t := range tasks {
			if !t.Status.IsTerminalForRisk() {
				incomplete++
			}
		}
		pctIncomplete = float64(incomplete) / float64(len(tasks))
	}

	daysLeft := DefaultDaysLeft
	if p.DueDate != nil {
		daysLeft = int(math.Ceil(p.DueDate.Sub(today).Hours() / 24))
	}

	prediction := RiskPrediction{ProjectID: p.ID, RiskLevel: RiskOnTrack}
	if pctIncomplete > threshold && daysLeft < 7 {
		prediction.RiskLevel = RiskAtRisk
		prediction.Reason = fmt.Sprintf("%.0f%% of tasks incomplete with %d day(s) to the deadline", pctIncomplete*100, daysLeft)
	} else {
		prediction.Reason = fmt.Sprintf("%.0f%% of tasks incomplete, %d day(s) remaining", pctIncomplete*100, daysLeft)
	}
	return prediction
}
