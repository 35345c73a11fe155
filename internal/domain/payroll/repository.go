package payroll

import (
	"context"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
)

// Filter narrows payroll record queries.
type Filter struct {
	WorkerID *uuid.UUID
	Status   *PayrollStatus
}

// Repository defines the interface for payroll record persistence
type Repository interface {
	Create(ctx context.Context, record *Record) error
	FindAll(ctx context.Context, filter Filter) ([]Record, error)
}

type payrollRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) Create(ctx context.Context, record *Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *payrollRepository) FindAll(ctx context.Context, filter Filter) ([]Record, error) {
	var records []Record
	query := r.db.WithContext(ctx)
	if filter.WorkerID != nil {
		query = query.Where("worker_id = ?", *filter.WorkerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if err := query.Order("period_end DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
