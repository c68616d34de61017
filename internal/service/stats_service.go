package service

import (
	"context"

	"arm-servicedesk/internal/domain"
	"arm-servicedesk/internal/repository"
)

// StatsService derives role-scoped counts from the two registries. Pure
// read, no mutation.
type StatsService interface {
	Admin(ctx context.Context) (*domain.Stats, error)
	ForUser(ctx context.Context, username string) (*domain.UserStats, error)
}

type statsService struct {
	arms    repository.ARMRepository
	tickets repository.TicketRepository
}

func NewStatsService(arms repository.ARMRepository, tickets repository.TicketRepository) StatsService {
	return &statsService{
		arms:    arms,
		tickets: tickets,
	}
}

func (s *statsService) Admin(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{}

	var err error
	if stats.TotalARMs, err = s.arms.Count(ctx); err != nil {
		return nil, err
	}
	if stats.OperationalARMs, err = s.arms.CountByStatus(ctx, domain.ARMStatusOperational); err != nil {
		return nil, err
	}
	if stats.TotalTickets, err = s.tickets.Count(ctx, ""); err != nil {
		return nil, err
	}
	if stats.NewTickets, err = s.tickets.CountByStatus(ctx, domain.TicketStatusNew, ""); err != nil {
		return nil, err
	}
	if stats.InProgressTickets, err = s.tickets.CountByStatus(ctx, domain.TicketStatusInProgress, ""); err != nil {
		return nil, err
	}
	if stats.ResolvedTickets, err = s.tickets.CountByStatus(ctx, domain.TicketStatusResolved, ""); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *statsService) ForUser(ctx context.Context, username string) (*domain.UserStats, error) {
	stats := &domain.UserStats{}

	var err error
	if stats.MyTickets, err = s.tickets.Count(ctx, username); err != nil {
		return nil, err
	}
	if stats.MyNewTickets, err = s.tickets.CountByStatus(ctx, domain.TicketStatusNew, username); err != nil {
		return nil, err
	}
	if stats.MyInProgressTickets, err = s.tickets.CountByStatus(ctx, domain.TicketStatusInProgress, username); err != nil {
		return nil, err
	}
	if stats.MyResolvedTickets, err = s.tickets.CountByStatus(ctx, domain.TicketStatusResolved, username); err != nil {
		return nil, err
	}

	return stats, nil
}
