package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrARMNotFound is returned when a workstation id matches no record.
	ErrARMNotFound = errors.New("arm not found")
	// ErrTicketNotFound is returned when a ticket id matches no record.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrDuplicateInventoryNumber is returned when the inventory number is already registered.
	ErrDuplicateInventoryNumber = errors.New("arm with this inventory number already exists")
)

// ActiveTicketsError blocks workstation deletion while tickets against it
// are still open; Count is reported to the caller.
type ActiveTicketsError struct {
	Count int64
}

func (e *ActiveTicketsError) Error() string {
	return fmt.Sprintf("cannot delete arm with active tickets (%d)", e.Count)
}
