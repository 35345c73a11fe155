package migrations

import (
	"errors"
	"fmt"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/attendance"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/audit"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/notification"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/payroll"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/project"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/task"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/user"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/persistence/postgres/connection"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrationRecord tracks the migration history
type MigrationRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;unique"`
	Version   int       `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for migration records
func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *connection.Database, logger *zap.Logger) error {
	logger.Info("Starting automatic database migration...")

	// Enable UUID extension for PostgreSQL
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		logger.Error("Failed to create UUID extension", zap.Error(err))
		return fmt.Errorf("failed to create UUID extension: %v", err)
	}

	// Create migrations table if it doesn't exist
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		logger.Error("Failed to create migrations table", zap.Error(err))
		return fmt.Errorf("failed to create migrations table: %v", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		txDB := &connection.Database{DB: tx}

		var lastVersion int
		if err := txDB.Model(&MigrationRecord{}).Select("COALESCE(MAX(version), 0)").Scan(&lastVersion).Error; err != nil {
			return fmt.Errorf("failed to get last version: %v", err)
		}

		// Models in dependency order.
		models := []interface{}{
			&user.User{},
			&project.Project{},
			&task.Task{},
			&attendance.AttendanceSession{},
			&payroll.Record{},
			&notification.Notification{},
			&audit.Entry{},
		}

		for i, model := range models {
			version := i + 1
			name := fmt.Sprintf("%T", model)

			var existing MigrationRecord
			err := txDB.Where("name = ?", name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to check migration %s: %v", name, err)
			}

			if err := txDB.AutoMigrate(model); err != nil {
				logger.Error("Migration failed", zap.String("model", name), zap.Error(err))
				return fmt.Errorf("failed to migrate %s: %v", name, err)
			}

			record := MigrationRecord{
				Name:      name,
				Version:   version,
				AppliedAt: time.Now().UTC(),
			}
			if err := txDB.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %v", name, err)
			}
			logger.Info("Migrated model", zap.String("model", name), zap.Int("version", version))
		}

		// Partial unique index backing the one-open-session invariant:
		// the locked transactional scan is the primary guard, this is
		// the database-level backstop.
		if err := txDB.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_open_session_per_worker
			 ON attendance_sessions (worker_id)
			 WHERE check_out_time IS NULL`,
		).Error; err != nil {
			return fmt.Errorf("failed to create open-session index: %v", err)
		}

		logger.Info("Database migration completed")
		return nil
	})
}
