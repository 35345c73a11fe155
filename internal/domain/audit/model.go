package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is a human-readable record of one mutating action. Writes are
// best-effort: a failed audit write never fails the primary operation.
type Entry struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ActorID     uuid.UUID `json:"actor_id" gorm:"type:uuid;not null;index:idx_audit_actor"`
	Action      string    `json:"action" gorm:"type:varchar(64);not null;index:idx_audit_action"`
	EntityType  string    `json:"entity_type" gorm:"type:varchar(64);not null"`
	EntityID    uuid.UUID `json:"entity_id" gorm:"type:uuid;index:idx_audit_entity"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;index:idx_audit_created"`
}

// TableName specifies the table name for audit entries
func (Entry) TableName() string {
	return "audit_entries"
}

// BeforeCreate is called before inserting a new audit entry
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return nil
}
