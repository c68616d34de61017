package service

import (
	"context"
	"errors"

	"arm-servicedesk/internal/domain"
	"arm-servicedesk/internal/repository"
)

// CreateARMInput carries the caller-supplied fields for a new workstation.
type CreateARMInput struct {
	InventoryNumber string
	Name            string
	Location        string
	User            string
	Department      string
	Characteristics map[string]string
}

// UpdateARMInput is a partial update: nil pointers leave the stored field
// untouched, and Characteristics merges into the existing map key by key.
type UpdateARMInput struct {
	InventoryNumber *string
	Name            *string
	Location        *string
	User            *string
	Department      *string
	Status          *string
	Characteristics map[string]string
}

// ARMService coordinates workstation registry operations.
type ARMService interface {
	List(ctx context.Context) ([]domain.ARM, error)
	Get(ctx context.Context, id string) (*domain.ARM, error)
	Create(ctx context.Context, input CreateARMInput) (*domain.ARM, error)
	Update(ctx context.Context, id string, input UpdateARMInput) (*domain.ARM, error)
	Delete(ctx context.Context, id string) error
}

type armService struct {
	arms    repository.ARMRepository
	tickets repository.TicketRepository
}

func NewARMService(arms repository.ARMRepository, tickets repository.TicketRepository) ARMService {
	return &armService{
		arms:    arms,
		tickets: tickets,
	}
}

func (s *armService) List(ctx context.Context) ([]domain.ARM, error) {
	return s.arms.List(ctx)
}

func (s *armService) Get(ctx context.Context, id string) (*domain.ARM, error) {
	arm, err := s.arms.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrARMNotFound
		}
		return nil, err
	}
	return arm, nil
}

func (s *armService) Create(ctx context.Context, input CreateARMInput) (*domain.ARM, error) {
	characteristics := map[string]string{}
	for key, value := range input.Characteristics {
		characteristics[key] = value
	}

	arm := &domain.ARM{
		InventoryNumber: input.InventoryNumber,
		Name:            input.Name,
		Location:        input.Location,
		User:            input.User,
		Department:      input.Department,
		Status:          domain.ARMStatusOperational,
		Characteristics: characteristics,
	}

	if err := s.arms.Create(ctx, arm); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateInventoryNumber
		}
		return nil, err
	}
	return arm, nil
}

func (s *armService) Update(ctx context.Context, id string, input UpdateARMInput) (*domain.ARM, error) {
	arm, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.InventoryNumber != nil {
		arm.InventoryNumber = *input.InventoryNumber
	}
	if input.Name != nil {
		arm.Name = *input.Name
	}
	if input.Location != nil {
		arm.Location = *input.Location
	}
	if input.User != nil {
		arm.User = *input.User
	}
	if input.Department != nil {
		arm.Department = *input.Department
	}
	if input.Status != nil {
		arm.Status = *input.Status
	}
	if input.Characteristics != nil {
		if arm.Characteristics == nil {
			arm.Characteristics = map[string]string{}
		}
		for key, value := range input.Characteristics {
			arm.Characteristics[key] = value
		}
	}

	if err := s.arms.Update(ctx, arm); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrARMNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateInventoryNumber
		}
		return nil, err
	}
	return arm, nil
}

func (s *armService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	active, err := s.tickets.CountActiveByARM(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return &ActiveTicketsError{Count: active}
	}

	if err := s.arms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrARMNotFound
		}
		return err
	}
	return nil
}
