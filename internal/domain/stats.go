package domain

// Stats holds system-wide counts visible to the administrator.
type Stats struct {
	TotalARMs         int64
	OperationalARMs   int64
	TotalTickets      int64
	NewTickets        int64
	InProgressTickets int64
	ResolvedTickets   int64
}

// UserStats holds ticket counts scoped to a single creator.
type UserStats struct {
	MyTickets           int64
	MyNewTickets        int64
	MyInProgressTickets int64
	MyResolvedTickets   int64
}
