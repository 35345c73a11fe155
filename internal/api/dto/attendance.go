package dto

import (
	"time"

	"github.com/google/uuid"
)

// CheckInRequest represents the request body for opening a session
// @Description Request body for checking in on a project
type CheckInRequest struct {
	ProjectID  uuid.UUID `json:"project_id" binding:"required"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy,omitempty"`
	SelfieURL  string    `json:"selfie_url,omitempty"`
	AutoLogged bool      `json:"auto_logged,omitempty"`
}

// CheckOutRequest represents the request body for closing a session
// @Description Request body for checking out, optionally reporting finished tasks
type CheckOutRequest struct {
	ProjectID        uuid.UUID   `json:"project_id" binding:"required"`
	Latitude         *float64    `json:"latitude,omitempty"`
	Longitude        *float64    `json:"longitude,omitempty"`
	Accuracy         *float64    `json:"accuracy,omitempty"`
	SelfieURL        string      `json:"selfie_url,omitempty"`
	CompletedTaskIDs []uuid.UUID `json:"completed_task_ids,omitempty"`
	Notes            string      `json:"notes,omitempty"`
}

// TrackPointRequest is one GPS sample in a location track upload
type TrackPointRequest struct {
	Latitude  float64   `json:"lat" binding:"required"`
	Longitude float64   `json:"lng" binding:"required"`
	Timestamp time.Time `json:"timestamp"`
}

// AppendTrackRequest represents the request body for a track upload
type AppendTrackRequest struct {
	Points []TrackPointRequest `json:"points" binding:"required,min=1,dive"`
}

// SessionResponse represents an attendance session in API responses
// @Description Attendance session details returned in API responses
type SessionResponse struct {
	ID               uuid.UUID   `json:"id"`
	WorkerID         uuid.UUID   `json:"worker_id"`
	ProjectID        uuid.UUID   `json:"project_id"`
	Date             time.Time   `json:"date"`
	CheckInTime      time.Time   `json:"check_in_time"`
	CheckInLat       float64     `json:"check_in_lat"`
	CheckInLng       float64     `json:"check_in_lng"`
	CheckInSelfie    string      `json:"check_in_selfie,omitempty"`
	AutoLogged       bool        `json:"auto_logged"`
	ArrivalStatus    string      `json:"arrival_status"`
	CheckOutTime     *time.Time  `json:"check_out_time,omitempty"`
	CheckOutLat      *float64    `json:"check_out_lat,omitempty"`
	CheckOutLng      *float64    `json:"check_out_lng,omitempty"`
	CheckOutSelfie   string      `json:"check_out_selfie,omitempty"`
	DepartureStatus  string      `json:"departure_status,omitempty"`
	CompletedTaskIDs []uuid.UUID `json:"completed_task_ids"`
	Notes            string      `json:"notes,omitempty"`
	ReviewStatus     string      `json:"review_status"`
	ReviewedBy       *uuid.UUID  `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time  `json:"reviewed_at,omitempty"`
	ReviewNotes      string      `json:"review_notes,omitempty"`
	TrackLength      int         `json:"track_length"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// TaskOutcomeResponse is the per-task result of a checkout
type TaskOutcomeResponse struct {
	TaskID uuid.UUID `json:"task_id"`
	Error  string    `json:"error,omitempty"`
}

// CheckOutResponse represents the checkout result including per-task outcomes
type CheckOutResponse struct {
	Session      *SessionResponse      `json:"session"`
	TaskOutcomes []TaskOutcomeResponse `json:"task_outcomes"`
	TasksUpdated int                   `json:"tasks_updated"`
	TasksFailed  int                   `json:"tasks_failed"`
}

// SessionListResponse represents a paginated list of sessions
type SessionListResponse struct {
	Sessions   []SessionResponse `json:"sessions"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

// SessionFilterRequest represents the query parameters for session history
type SessionFilterRequest struct {
	WorkerID     string `form:"worker_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ProjectID    string `form:"project_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	ReviewStatus string `form:"review_status" example:"pending"`
	DateStart    string `form:"date_start" example:"2026-08-01"`
	DateEnd      string `form:"date_end" example:"2026-08-31"`
	OnlyOpen     bool   `form:"only_open"`
	Page         int    `form:"page" example:"0"`
	PageSize     int    `form:"page_size" example:"20"`
}
