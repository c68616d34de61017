package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"arm-servicedesk/internal/domain"
	"arm-servicedesk/internal/repository"
)

const createTicketsTable = `
CREATE TABLE IF NOT EXISTS tickets (
	id TEXT PRIMARY KEY,
	arm_id TEXT NOT NULL,
	problem_type TEXT NOT NULL,
	priority TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	created_by TEXT NOT NULL,
	updated_by TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tickets_arm_id ON tickets(arm_id);
CREATE INDEX IF NOT EXISTS idx_tickets_created_by ON tickets(created_by);
`

// ticketCounter feeds the TICKET-YYYYMMDD-%03d id format. The counter is
// global and monotonic; the date stamp reflects creation time only.
const ticketCounter = "ticket"

type TicketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) repository.TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTicketsTable); err != nil {
		return fmt.Errorf("create tickets table: %w", err)
	}
	return nil
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	now := time.Now().UTC()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextCounter(ctx, tx, ticketCounter)
	if err != nil {
		return err
	}
	ticket.ID = fmt.Sprintf("TICKET-%s-%03d", now.Format("20060102"), seq)

	if _, err := tx.ExecContext(ctx, `
INSERT INTO tickets (id, arm_id, problem_type, priority, description, status, created_by, updated_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ticket.ID,
		ticket.ARMID,
		ticket.ProblemType,
		ticket.Priority,
		ticket.Description,
		ticket.Status,
		ticket.CreatedBy,
		ticket.UpdatedBy,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ticket insert: %w", err)
	}
	return nil
}

func (r *TicketRepository) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, arm_id, problem_type, priority, description, status, created_by, updated_by, created_at, updated_at
FROM tickets
WHERE id = ?`,
		id,
	)
	return scanTicket(row)
}

func (r *TicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	return r.queryTickets(ctx, `
SELECT id, arm_id, problem_type, priority, description, status, created_by, updated_by, created_at, updated_at
FROM tickets
ORDER BY created_at ASC, id ASC`)
}

func (r *TicketRepository) ListByCreator(ctx context.Context, username string) ([]domain.Ticket, error) {
	return r.queryTickets(ctx, `
SELECT id, arm_id, problem_type, priority, description, status, created_by, updated_by, created_at, updated_at
FROM tickets
WHERE created_by = ?
ORDER BY created_at ASC, id ASC`, username)
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id, status, updatedBy string) (*domain.Ticket, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE tickets
SET status=?, updated_by=?, updated_at=?
WHERE id=?`,
		status,
		updatedBy,
		now,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update ticket status: %w", err)
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("ticket update rows affected: %w", err)
	}
	if aff == 0 {
		return nil, fmt.Errorf("ticket %s: %w", id, repository.ErrNotFound)
	}

	return r.Get(ctx, id)
}

func (r *TicketRepository) CountActiveByARM(ctx context.Context, armID string) (int64, error) {
	placeholders := make([]string, len(domain.ActiveTicketStatuses))
	args := []any{armID}
	for i, status := range domain.ActiveTicketStatuses {
		placeholders[i] = "?"
		args = append(args, status)
	}

	query := fmt.Sprintf(`
SELECT COUNT(*) FROM tickets
WHERE arm_id = ? AND status IN (%s)`, strings.Join(placeholders, ","))

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active tickets: %w", err)
	}
	return count, nil
}

// Count returns the total ticket count, optionally scoped to a creator
// when createdBy is non-empty.
func (r *TicketRepository) Count(ctx context.Context, createdBy string) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets`
	args := []any{}
	if createdBy != "" {
		query += ` WHERE created_by = ?`
		args = append(args, createdBy)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, status, createdBy string) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE status = ?`
	args := []any{status}
	if createdBy != "" {
		query += ` AND created_by = ?`
		args = append(args, createdBy)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tickets by status: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) queryTickets(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	tickets := []domain.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}

	return tickets, rows.Err()
}

func scanTicket(scanner interface {
	Scan(dest ...any) error
}) (*domain.Ticket, error) {
	var (
		ticket    domain.Ticket
		createdAt time.Time
		updatedAt time.Time
	)

	if err := scanner.Scan(
		&ticket.ID,
		&ticket.ARMID,
		&ticket.ProblemType,
		&ticket.Priority,
		&ticket.Description,
		&ticket.Status,
		&ticket.CreatedBy,
		&ticket.UpdatedBy,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ticket: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan ticket: %w", err)
	}

	ticket.CreatedAt = createdAt.UTC()
	ticket.UpdatedAt = updatedAt.UTC()

	return &ticket, nil
}
