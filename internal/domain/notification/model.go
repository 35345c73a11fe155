package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status of a notification record
type Status string

const (
	Unread Status = "unread"
	Read   Status = "read"
)

// Notification is an in-app message for a single user. Delivery to
// external channels (push, email) is handled by a worker consuming the
// delivery queue; this backend only records and enqueues.
type Notification struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_notification_user"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Content     string    `json:"content" gorm:"type:text"`
	Status      Status    `json:"status" gorm:"type:varchar(16);not null;default:'unread'"`
	Reference   string    `json:"reference" gorm:"type:varchar(64)"`
	ReferenceID uuid.UUID `json:"reference_id" gorm:"type:uuid"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for notifications
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate is called before inserting a new notification
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Status == "" {
		n.Status = Unread
	}
	return nil
}

// DeliveryJob is the payload enqueued for the delivery worker.
type DeliveryJob struct {
	NotificationID uuid.UUID `json:"notification_id"`
	UserID         uuid.UUID `json:"user_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
}
