package repository

import (
	"context"

	"arm-servicedesk/internal/domain"
)

// ARMRepository exposes persistence operations for workstation records.
// Create assigns the public ARM id from a durable counter inside the same
// transaction that stores the record.
type ARMRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, arm *domain.ARM) error
	Get(ctx context.Context, id string) (*domain.ARM, error)
	List(ctx context.Context) ([]domain.ARM, error)
	Update(ctx context.Context, arm *domain.ARM) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}
