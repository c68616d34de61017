package service

import (
	"context"
	"errors"

	"arm-servicedesk/internal/domain"
	"arm-servicedesk/internal/repository"
)

// CreateTicketInput carries the caller-supplied fields for a new ticket.
type CreateTicketInput struct {
	ARMID       string
	ProblemType string
	Priority    string
	Description string
}

// TicketService coordinates ticket registry operations. Tickets are never
// deleted; triage happens through status updates only.
type TicketService interface {
	Create(ctx context.Context, input CreateTicketInput, createdBy string) (*domain.Ticket, error)
	ListFor(ctx context.Context, username string, isAdmin bool) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id, status, updatedBy string) (*domain.Ticket, error)
}

type ticketService struct {
	tickets repository.TicketRepository
	arms    repository.ARMRepository
}

func NewTicketService(tickets repository.TicketRepository, arms repository.ARMRepository) TicketService {
	return &ticketService{
		tickets: tickets,
		arms:    arms,
	}
}

func (s *ticketService) Create(ctx context.Context, input CreateTicketInput, createdBy string) (*domain.Ticket, error) {
	// Referenced workstation must exist at creation time; the reference is
	// not re-validated afterwards.
	if _, err := s.arms.Get(ctx, input.ARMID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrARMNotFound
		}
		return nil, err
	}

	ticket := &domain.Ticket{
		ARMID:       input.ARMID,
		ProblemType: input.ProblemType,
		Priority:    input.Priority,
		Description: input.Description,
		Status:      domain.TicketStatusNew,
		CreatedBy:   createdBy,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ListFor returns the full collection for the administrator and only the
// caller's own tickets otherwise.
func (s *ticketService) ListFor(ctx context.Context, username string, isAdmin bool) ([]domain.Ticket, error) {
	if isAdmin {
		return s.tickets.List(ctx)
	}
	return s.tickets.ListByCreator(ctx, username)
}

// UpdateStatus sets the caller-supplied status verbatim. The known workflow
// values are not enforced; clients may move a ticket to any state.
func (s *ticketService) UpdateStatus(ctx context.Context, id, status, updatedBy string) (*domain.Ticket, error) {
	ticket, err := s.tickets.UpdateStatus(ctx, id, status, updatedBy)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}
