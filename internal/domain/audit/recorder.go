package audit

import (
	"context"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder writes audit entries as a side channel of mutating actions.
type Recorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, description string)
	List(ctx context.Context, entityID uuid.UUID, limit int) ([]Entry, error)
}

type gormRecorder struct {
	db     *connection.Database
	logger *logger.Logger
}

func NewRecorder(db *connection.Database, log *logger.Logger) Recorder {
	return &gormRecorder{db: db, logger: log}
}

// Record inserts an entry and only logs on failure.
func (r *gormRecorder) Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, description string) {
	entry := &Entry{
		ActorID:     actorID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		r.logger.Warn("Failed to write audit entry",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.Error(err),
		)
	}
}

func (r *gormRecorder) List(ctx context.Context, entityID uuid.UUID, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
