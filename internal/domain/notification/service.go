package notification

import (
	"context"
	"fmt"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/user"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/broker"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DeliveryQueueName is the Redis list notifications are pushed onto.
const DeliveryQueueName = "fieldops:notifications"

// Notifier is the narrow interface domains use to fan out messages.
// Callers treat failures as downstream errors: log and continue.
type Notifier interface {
	// NotifyRoles creates one notification per user holding any of the
	// given roles and enqueues each for delivery.
	NotifyRoles(ctx context.Context, audience []roles.Role, title, content, reference string, referenceID uuid.UUID) error

	// NotifyUser targets a single user.
	NotifyUser(ctx context.Context, userID uuid.UUID, title, content, reference string, referenceID uuid.UUID) error
}

type service struct {
	db     *connection.Database
	users  user.Repository
	queue  *broker.Queue
	logger *logrus.Logger
}

// NewService creates the gorm-backed notifier. queue may be nil, in
// which case notifications are stored but not enqueued.
func NewService(db *connection.Database, users user.Repository, queue *broker.Queue, logger *logrus.Logger) Notifier {
	return &service{db: db, users: users, queue: queue, logger: logger}
}

func (s *service) NotifyRoles(ctx context.Context, audience []roles.Role, title, content, reference string, referenceID uuid.UUID) error {
	recipients, err := s.users.FindByRoles(ctx, audience)
	if err != nil {
		return fmt.Errorf("failed to resolve notification audience: %w", err)
	}

	var firstErr error
	for _, u := range recipients {
		if err := s.NotifyUser(ctx, u.ID, title, content, reference, referenceID); err != nil {
			s.logger.WithError(err).WithField("user_id", u.ID).Error("Failed to notify user")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *service) NotifyUser(ctx context.Context, userID uuid.UUID, title, content, reference string, referenceID uuid.UUID) error {
	n := &Notification{
		UserID:      userID,
		Title:       title,
		Content:     content,
		Status:      Unread,
		Reference:   reference,
		ReferenceID: referenceID,
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if s.queue == nil {
		return nil
	}

	job := DeliveryJob{
		NotificationID: n.ID,
		UserID:         userID,
		Title:          title,
		Content:        content,
	}
	if _, err := s.queue.Enqueue(ctx, "notification.deliver", job); err != nil {
		// The record exists; delivery can be retried by a later sweep.
		s.logger.WithError(err).Warn("Failed to enqueue notification delivery")
	}
	return nil
}
