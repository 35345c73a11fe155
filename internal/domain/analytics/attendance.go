package analytics

import (
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/google/uuid"
)

// WorkerFlag marks a worker whose late or early-leave day counts met
// the sensitivity threshold.
type WorkerFlag struct {
	WorkerID       uuid.UUID `json:"worker_id"`
	LateDays       int       `json:"late_days"`
	EarlyLeaveDays int       `json:"early_leave_days"`
}

// AttendanceReport is the full analyzer output.
type AttendanceReport struct {
	LateCount  int          `json:"late_count"`
	EarlyCount int          `json:"early_count"`
	Flagged    []WorkerFlag `json:"flagged"`
}

// attendanceThresholds maps sensitivity to the flagging day count.
var attendanceThresholds = map[Sensitivity]int{
	SensitivityHigh:   2,
	SensitivityMedium: 3,
	SensitivityLow:    5,
}

// AnalyzeAttendance counts late arrivals and early departures across
// the given logs and flags workers meeting the threshold on either
// count. Pure and deterministic; safe for concurrent callers.
func AnalyzeAttendance(logs []attendance.Log, sensitivity Sensitivity) AttendanceReport {
	threshold, ok := attendanceThresholds[sensitivity]
	if !ok {
		threshold = attendanceThresholds[SensitivityMedium]
	}

	report := AttendanceReport{Flagged: []WorkerFlag{}}

	type counts struct {
		late, early int
	}
	perWorker := make(map[uuid.UUID]*counts)
	order := make([]uuid.UUID, 0)

	for _, log := range logs {
		c, seen := perWorker[log.WorkerID]
		if !seen {
			c = &counts{}
			perWorker[log.WorkerID] = c
			order = append(order, log.WorkerID)
		}
		if log.ArrivalStatus == attendance.ArrivalLate {
			report.LateCount++
			c.late++
		}
		if log.DepartureStatus == attendance.DepartureLeftEarly {
			report.EarlyCount++
			c.early++
		}
	}

	// Stable output order: first appearance in the input.
	for _, workerID := range order {
		c := perWorker[workerID]
		if c.late >= threshold || c.early >= threshold {
			report.Flagged = append(report.Flagged, WorkerFlag{
				WorkerID:       workerID,
				LateDays:       c.late,
				EarlyLeaveDays: c.early,
			})
		}
	}

	return report
}
