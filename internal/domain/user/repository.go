package user

import (
	"context"
	"errors"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/roles"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for user lookups
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByRoles(ctx context.Context, wanted []roles.Role) ([]User, error)
}

type userRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	result := r.db.WithContext(ctx).First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &u, nil
}

func (r *userRepository) FindByRoles(ctx context.Context, wanted []roles.Role) ([]User, error) {
	var users []User
	if err := r.db.WithContext(ctx).Where("role IN ?", wanted).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
