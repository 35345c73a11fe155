package roles

import (
	"context"
	"errors"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// Resolver looks up the role held by a user.
type Resolver interface {
	ResolveRole(ctx context.Context, userID uuid.UUID) (Role, error)
}

type gormResolver struct {
	db *connection.Database
}

func NewResolver(db *connection.Database) Resolver {
	return &gormResolver{db: db}
}

func (r *gormResolver) ResolveRole(ctx context.Context, userID uuid.UUID) (Role, error) {
	var role Role
	err := r.db.WithContext(ctx).
		Table("users").
		Select("role").
		Where("id = ?", userID).
		Scan(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if role == "" {
		return "", ErrUserNotFound
	}
	return role, nil
}
