package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "pending"
	TaskStatusInProgress  TaskStatus = "in-progress"
	TaskStatusPaused      TaskStatus = "paused"
	TaskStatusNeedsReview TaskStatus = "needs-review"
	TaskStatusCompleted   TaskStatus = "completed"
	TaskStatusVerified    TaskStatus = "verified"
	TaskStatusRejected    TaskStatus = "rejected"
)

// IsValid validates the task status
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusPaused,
		TaskStatusNeedsReview, TaskStatusCompleted, TaskStatusVerified,
		TaskStatusRejected:
		return true
	}
	return false
}

// IsTerminalForRisk reports whether the status counts as done for
// project risk purposes.
func (s TaskStatus) IsTerminalForRisk() bool {
	return s == TaskStatusCompleted || s == TaskStatusVerified
}

// Task is a unit of field work tied to exactly one project and at most
// one assignee. ElapsedSeconds is cumulative and only ever grows.
type Task struct {
	ID                uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Title             string         `json:"title" gorm:"type:varchar(255);not null"`
	Description       string         `json:"description" gorm:"type:text"`
	Status            TaskStatus     `json:"status" gorm:"type:varchar(24);not null;default:'pending';index:idx_task_status"`
	ProjectID         uuid.UUID      `json:"project_id" gorm:"type:uuid;not null;index:idx_task_project"`
	AssigneeID        *uuid.UUID     `json:"assignee_id,omitempty" gorm:"type:uuid;index:idx_task_assignee"`
	CreatorID         uuid.UUID      `json:"creator_id" gorm:"type:uuid;not null"`
	StartTime         *time.Time     `json:"start_time,omitempty"`
	EndTime           *time.Time     `json:"end_time,omitempty"`
	ElapsedSeconds    int64          `json:"elapsed_seconds" gorm:"not null;default:0"`
	DueDate           *time.Time     `json:"due_date,omitempty" gorm:"index:idx_task_due"`
	EmployeeNotes     string         `json:"employee_notes" gorm:"type:text"`
	SubmittedMediaURL string         `json:"submitted_media_url" gorm:"type:text"`
	ReviewerID        *uuid.UUID     `json:"reviewer_id,omitempty" gorm:"type:uuid"`
	ReviewedAt        *time.Time     `json:"reviewed_at,omitempty"`
	ReviewNotes       string         `json:"review_notes" gorm:"type:text"`
	CreatedAt         time.Time      `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt         time.Time      `json:"updated_at" gorm:"not null;default:current_timestamp"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// Validate checks if the task data is valid
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrInvalidInput
	}
	if !t.Status.IsValid() {
		return ErrInvalidInput
	}
	if t.ProjectID == uuid.Nil {
		return ErrInvalidInput
	}
	if t.CreatorID == uuid.Nil {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before creating a new task record
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	return t.Validate()
}

// BeforeUpdate is called before updating a task record
func (t *Task) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now().UTC()
	return t.Validate()
}

// taskTransitions is the closed transition table. rejected -> pending
// covers manual reassignment after a failed compliance review.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusPending:     {TaskStatusInProgress},
	TaskStatusInProgress:  {TaskStatusPaused, TaskStatusNeedsReview},
	TaskStatusPaused:      {TaskStatusInProgress},
	TaskStatusNeedsReview: {TaskStatusVerified, TaskStatusRejected},
	TaskStatusCompleted:   {},
	TaskStatusVerified:    {},
	TaskStatusRejected:    {TaskStatusPending},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(current, next TaskStatus) bool {
	allowed, exists := taskTransitions[current]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}
