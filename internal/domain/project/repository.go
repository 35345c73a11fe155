package project

import (
	"context"
	"errors"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for project lookups
type Repository interface {
	Create(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindAll(ctx context.Context, status *ProjectStatus) ([]Project, error)
}

type projectRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var p Project
	result := r.db.WithContext(ctx).First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *projectRepository) FindAll(ctx context.Context, status *ProjectStatus) ([]Project, error) {
	var projects []Project
	query := r.db.WithContext(ctx)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
