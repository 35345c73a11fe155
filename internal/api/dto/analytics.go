package dto

// AttendanceReportRequest represents the query parameters for the
// attendance analyzer.
type AttendanceReportRequest struct {
	From        string `form:"from" example:"2026-08-01"`
	To          string `form:"to" example:"2026-08-31"`
	Sensitivity string `form:"sensitivity" example:"medium"`
}

// RiskRequest represents the query parameters for project risk prediction
type RiskRequest struct {
	Sensitivity string `form:"sensitivity" example:"medium"`
}

// ForecastRequest represents the query parameters for payroll forecasting
type ForecastRequest struct {
	WorkerID string `form:"worker_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Periods  int    `form:"periods" example:"3"`
}

// RecommendationsRequest represents the query parameters for recommendations
type RecommendationsRequest struct {
	ProjectID   string `form:"project_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440001"`
	Sensitivity string `form:"sensitivity" example:"medium"`
	Periods     int    `form:"periods" example:"3"`
}

// ForecastResponse represents a payroll forecast in API responses
type ForecastResponse struct {
	Forecast float64 `json:"forecast"`
	Periods  int     `json:"periods"`
}
