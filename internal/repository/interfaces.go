package repository

import (
	"context"

	"github.com/devconnect/devconnect-api/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error)
}

type ProfileRepository interface {
	// Upsert atomically creates the profile or applies the given column
	// assignments when a row for the same user already exists.
	Upsert(ctx context.Context, profile *domain.Profile, updates map[string]interface{}) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	GetAll(ctx context.Context) ([]*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	// DeleteWithUser removes the profile and its owning user in one
	// transaction. Deleting an already-deleted account is not an error.
	DeleteWithUser(ctx context.Context, userID uuid.UUID) error
}

type Repositories struct {
	User    UserRepository
	Profile ProfileRepository
}
