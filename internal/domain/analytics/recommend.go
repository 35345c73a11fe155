package analytics

import (
	"fmt"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/payroll"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/project"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
)

type RecommendationCategory string

const (
	CategoryAttendance RecommendationCategory = "attendance"
	CategoryTask       RecommendationCategory = "task"
	CategoryPayroll    RecommendationCategory = "payroll"
)

// Recommendation is one actionable message for a dashboard.
type Recommendation struct {
	Message    string                 `json:"message"`
	Category   RecommendationCategory `json:"category"`
	Confidence float64                `json:"confidence"`
}

// Confidence values are fixed per category, not computed.
const (
	attendanceConfidence = 0.7
	taskConfidence       = 0.8
	payrollConfidence    = 0.6
)

// Recommend composes the three heuristics into a ranked list. A
// category with no signal produces no entry; the emit order is fixed.
func Recommend(
	logs []attendance.Log,
	p *project.Project,
	tasks []task.Task,
	records []payroll.Record,
	today time.Time,
	sensitivity Sensitivity,
	forecastPeriods int,
) []Recommendation {
	recommendations := []Recommendation{}

	report := AnalyzeAttendance(logs, sensitivity)
	if len(report.Flagged) > 0 {
		first := report.Flagged[0]
		recommendations = append(recommendations, Recommendation{
			Message: fmt.Sprintf("%d worker(s) show repeated attendance issues; the most affected has %d late day(s). Consider a check-in conversation.",
				len(report.Flagged), first.LateDays),
			Category:   CategoryAttendance,
			Confidence: attendanceConfidence,
		})
	}

	if p != nil {
		prediction := PredictRisk(p, tasks, today, sensitivity)
		if prediction.RiskLevel == RiskAtRisk {
			recommendations = append(recommendations, Recommendation{
				Message:    fmt.Sprintf("Project %q is at risk of missing its deadline: %s. Rebalance assignments or adjust scope.", p.Name, prediction.Reason),
				Category:   CategoryTask,
				Confidence: taskConfidence,
			})
		}
	}

	if forecast := payroll.Forecast(records, forecastPeriods); forecast > 0 {
		recommendations = append(recommendations, Recommendation{
			Message:    fmt.Sprintf("Projected payroll for the next period is %.2f based on recent approved periods.", forecast),
			Category:   CategoryPayroll,
			Confidence: payrollConfidence,
		})
	}

	return recommendations
}
