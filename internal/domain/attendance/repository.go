package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionFilter defines filtering options for session history queries.
type SessionFilter struct {
	WorkerID     *uuid.UUID
	ProjectID    *uuid.UUID
	ReviewStatus *ReviewStatus
	DateStart    *time.Time
	DateEnd      *time.Time
	OnlyOpen     bool
	Page         int
	PageSize     int
}

// SessionRepository defines the interface for session persistence.
// Transaction returns a repository bound to one database transaction
// so the start-session check-then-act runs atomically.
type SessionRepository interface {
	Create(ctx context.Context, session *AttendanceSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*AttendanceSession, error)
	Update(ctx context.Context, session *AttendanceSession) error
	FindAll(ctx context.Context, filter SessionFilter) ([]AttendanceSession, int64, error)

	// FindOpenForWorker returns all open sessions for a worker on a day,
	// across projects. With lock=true the rows are read FOR UPDATE so a
	// concurrent start for the same worker serializes behind us.
	FindOpenForWorker(ctx context.Context, workerID uuid.UUID, date time.Time, lock bool) ([]AttendanceSession, error)

	// FindLatestOpen returns the most recent open session for
	// worker+project+day, ordered by check-in time descending.
	FindLatestOpen(ctx context.Context, workerID, projectID uuid.UUID, date time.Time) (*AttendanceSession, error)

	// AppendTrack appends points to the session's location track.
	AppendTrack(ctx context.Context, sessionID uuid.UUID, points []TrackPoint) error

	// LogsForRange flattens closed sessions in [from, to) into analyzer logs.
	LogsForRange(ctx context.Context, from, to time.Time) ([]Log, error)

	Transaction(ctx context.Context, fn func(SessionRepository) error) error
}

type sessionRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *AttendanceSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*AttendanceSession, error) {
	var session AttendanceSession
	result := r.db.WithContext(ctx).First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, result.Error
	}
	return &session, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *AttendanceSession) error {
	result := r.db.WithContext(ctx).Save(session)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) FindAll(ctx context.Context, filter SessionFilter) ([]AttendanceSession, int64, error) {
	var sessions []AttendanceSession
	var total int64

	query := r.db.WithContext(ctx)

	if filter.WorkerID != nil {
		query = query.Where("worker_id = ?", filter.WorkerID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.ReviewStatus != nil {
		query = query.Where("review_status = ?", filter.ReviewStatus)
	}
	if filter.DateStart != nil {
		query = query.Where("date >= ?", *filter.DateStart)
	}
	if filter.DateEnd != nil {
		query = query.Where("date < ?", *filter.DateEnd)
	}
	if filter.OnlyOpen {
		query = query.Where("check_out_time IS NULL")
	}

	if err := query.Model(&AttendanceSession{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 10000
	}
	query = query.Order("check_in_time DESC").
		Offset(filter.Page * filter.PageSize).
		Limit(filter.PageSize)

	if err := query.Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *sessionRepository) FindOpenForWorker(ctx context.Context, workerID uuid.UUID, date time.Time, lock bool) ([]AttendanceSession, error) {
	var sessions []AttendanceSession
	query := r.db.WithContext(ctx).
		Where("worker_id = ? AND date = ? AND check_out_time IS NULL", workerID, DayOf(date))
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindLatestOpen(ctx context.Context, workerID, projectID uuid.UUID, date time.Time) (*AttendanceSession, error) {
	var session AttendanceSession
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND project_id = ? AND date = ? AND check_out_time IS NULL",
			workerID, projectID, DayOf(date)).
		Order("check_in_time DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) AppendTrack(ctx context.Context, sessionID uuid.UUID, points []TrackPoint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session AttendanceSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		session.LocationTrack = append(session.LocationTrack, points...)
		return tx.Model(&session).Update("location_track", session.LocationTrack).Error
	})
}

func (r *sessionRepository) LogsForRange(ctx context.Context, from, to time.Time) ([]Log, error) {
	var sessions []AttendanceSession
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ? AND check_out_time IS NOT NULL", DayOf(from), DayOf(to)).
		Order("date ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	logs := make([]Log, 0, len(sessions))
	for _, s := range sessions {
		logs = append(logs, Log{
			WorkerID:        s.WorkerID,
			Date:            s.Date,
			ArrivalStatus:   s.ArrivalStatus,
			DepartureStatus: s.DepartureStatus,
		})
	}
	return logs, nil
}

func (r *sessionRepository) Transaction(ctx context.Context, fn func(SessionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&sessionRepository{db: &connection.Database{DB: tx}})
	})
}
