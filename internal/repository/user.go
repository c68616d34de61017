package repository

import (
	"context"

	"arm-servicedesk/internal/domain"
)

// UserRepository defines persistence operations for User entities. Accounts
// are written only by the first-run seeding routine; the API never mutates
// them.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
