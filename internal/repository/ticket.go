package repository

import (
	"context"

	"arm-servicedesk/internal/domain"
)

// TicketRepository exposes persistence operations for support tickets.
// Tickets are never deleted; Create assigns the date-stamped public id from
// a durable counter inside the insert transaction.
type TicketRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, ticket *domain.Ticket) error
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	ListByCreator(ctx context.Context, username string) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id, status, updatedBy string) (*domain.Ticket, error)
	CountActiveByARM(ctx context.Context, armID string) (int64, error)
	Count(ctx context.Context, createdBy string) (int64, error)
	CountByStatus(ctx context.Context, status, createdBy string) (int64, error)
}
