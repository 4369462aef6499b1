package repository

import (
	"context"

	"party-paradise/internal/domain/aggregate"
)

// UserRepository persists accounts; email is unique
type UserRepository interface {
	Save(ctx context.Context, user *aggregate.User) error
	GetByID(ctx context.Context, id string) (*aggregate.User, error)
	GetByEmail(ctx context.Context, email string) (*aggregate.User, error)
	// List returns users with the role, or all users when role is empty
	List(ctx context.Context, role aggregate.UserRole) ([]*aggregate.User, error)
	Delete(ctx context.Context, id string) error
}
