package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTaskRequest represents the request body for creating a task
// @Description Request body for creating a new task in the system
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ProjectID   uuid.UUID  `json:"project_id" binding:"required"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// AssignTaskRequest represents the request body for assigning a task to a worker
type AssignTaskRequest struct {
	AssigneeID uuid.UUID `json:"assignee_id" binding:"required"`
}

// TaskResponse represents a task in API responses
// @Description Detailed task information returned in API responses
type TaskResponse struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	ProjectID         uuid.UUID  `json:"project_id"`
	AssigneeID        *uuid.UUID `json:"assignee_id,omitempty"`
	CreatorID         uuid.UUID  `json:"creator_id"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	StartTime         *time.Time `json:"start_time,omitempty"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	ElapsedSeconds    int64      `json:"elapsed_seconds"`
	EmployeeNotes     string     `json:"employee_notes,omitempty"`
	SubmittedMediaURL string     `json:"submitted_media_url,omitempty"`
	ReviewerID        *uuid.UUID `json:"reviewer_id,omitempty"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes       string     `json:"review_notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks with metadata
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}

// TaskFilterRequest represents the query parameters for filtering tasks
type TaskFilterRequest struct {
	ProjectID  string `form:"project_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Status     string `form:"status" example:"in-progress"`
	AssigneeID string `form:"assignee_id" example:"550e8400-e29b-41d4-a716-446655440002"`
	Page       int    `form:"page" example:"0"`
	PageSize   int    `form:"page_size" example:"20"`
}
