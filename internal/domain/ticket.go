package domain

import "time"

const (
	TicketStatusNew        = "new"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
)

// Ticket represents a support request filed against one workstation.
// Status starts at "new"; administrators may set it to any string, the
// constants above are the values the workflow understands.
type Ticket struct {
	ID          string
	ARMID       string
	ProblemType string
	Priority    string
	Description string
	Status      string
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ActiveTicketStatuses are the statuses that block deletion of the
// referenced workstation.
var ActiveTicketStatuses = []string{TicketStatusNew, TicketStatusInProgress}
