package user

import (
	"errors"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
)

// User is a field worker, supervisor or admin account. Account
// management itself happens elsewhere; this backend only reads users
// for role gating and notification fan-out.
type User struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Email     string         `json:"email" gorm:"type:varchar(255);unique;not null"`
	Role      roles.Role     `json:"role" gorm:"type:varchar(32);not null;default:'worker';index:idx_user_role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is called before inserting a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = roles.RoleWorker
	}
	if !u.Role.IsValid() {
		return errors.New("invalid user role")
	}
	return nil
}
