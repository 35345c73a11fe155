package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidInput    = errors.New("invalid input")
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// IsValid validates the project status
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	}
	return false
}

// Project is a work site that sessions and tasks attach to. Project
// administration lives outside this backend; the core only reads
// name and due date by id.
type Project struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Status      ProjectStatus  `json:"status" gorm:"not null;default:'active';index:idx_project_status"`
	CreatorID   uuid.UUID      `json:"creator_id" gorm:"type:uuid;not null;index:idx_project_creator"`
	StartDate   time.Time      `json:"start_date" gorm:"not null"`
	DueDate     *time.Time     `json:"due_date,omitempty" gorm:"index:idx_project_due"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeCreate is called before inserting a new project
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	if !p.Status.IsValid() {
		return errors.New("invalid project status")
	}
	return nil
}
