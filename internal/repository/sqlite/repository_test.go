package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arm-servicedesk/internal/domain"
	"arm-servicedesk/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func newTestRepos(t *testing.T) (repository.ARMRepository, repository.TicketRepository, repository.UserRepository) {
	t.Helper()

	db := openTestDB(t)
	ctx := context.Background()

	arms := NewARMRepository(db)
	tickets := NewTicketRepository(db)
	users := NewUserRepository(db)
	require.NoError(t, arms.Init(ctx))
	require.NoError(t, tickets.Init(ctx))
	require.NoError(t, users.Init(ctx))

	return arms, tickets, users
}

func newARM(inventoryNumber string) *domain.ARM {
	return &domain.ARM{
		InventoryNumber: inventoryNumber,
		Name:            "Workstation",
		Location:        "Room 101",
		User:            "I. Petrov",
		Department:      "IT",
		Status:          domain.ARMStatusOperational,
		Characteristics: map[string]string{"cpu": "i5", "ram": "16GB"},
	}
}

func TestARMRepository_CreateAssignsSequentialIDs(t *testing.T) {
	arms, _, _ := newTestRepos(t)
	ctx := context.Background()

	first := newARM("INV-1")
	require.NoError(t, arms.Create(ctx, first))
	assert.Equal(t, "ARM-001", first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := newARM("INV-2")
	require.NoError(t, arms.Create(ctx, second))
	assert.Equal(t, "ARM-002", second.ID)
}

func TestARMRepository_CounterSurvivesDelete(t *testing.T) {
	arms, _, _ := newTestRepos(t)
	ctx := context.Background()

	first := newARM("INV-1")
	require.NoError(t, arms.Create(ctx, first))
	require.NoError(t, arms.Delete(ctx, first.ID))

	// The durable counter keeps moving forward; ids are never reused after
	// a delete shrinks the collection.
	second := newARM("INV-2")
	require.NoError(t, arms.Create(ctx, second))
	assert.Equal(t, "ARM-002", second.ID)
}

func TestARMRepository_DuplicateInventoryNumber(t *testing.T) {
	arms, _, _ := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, arms.Create(ctx, newARM("INV-1")))

	err := arms.Create(ctx, newARM("INV-1"))
	require.ErrorIs(t, err, repository.ErrDuplicate)

	count, err := arms.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestARMRepository_GetRoundTripsCharacteristics(t *testing.T) {
	arms, _, _ := newTestRepos(t)
	ctx := context.Background()

	arm := newARM("INV-1")
	require.NoError(t, arms.Create(ctx, arm))

	got, err := arms.Get(ctx, arm.ID)
	require.NoError(t, err)
	assert.Equal(t, arm.InventoryNumber, got.InventoryNumber)
	assert.Equal(t, map[string]string{"cpu": "i5", "ram": "16GB"}, got.Characteristics)
}

func TestARMRepository_GetNotFound(t *testing.T) {
	arms, _, _ := newTestRepos(t)

	_, err := arms.Get(context.Background(), "ARM-999")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestARMRepository_UpdateNotFound(t *testing.T) {
	arms, _, _ := newTestRepos(t)

	err := arms.Update(context.Background(), &domain.ARM{ID: "ARM-999", InventoryNumber: "INV-X"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestARMRepository_DeleteNotFound(t *testing.T) {
	arms, _, _ := newTestRepos(t)

	err := arms.Delete(context.Background(), "ARM-999")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestARMRepository_CountByStatus(t *testing.T) {
	arms, _, _ := newTestRepos(t)
	ctx := context.Background()

	operational := newARM("INV-1")
	require.NoError(t, arms.Create(ctx, operational))

	broken := newARM("INV-2")
	broken.Status = "broken"
	require.NoError(t, arms.Create(ctx, broken))

	count, err := arms.CountByStatus(ctx, domain.ARMStatusOperational)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func newTicket(armID, createdBy string) *domain.Ticket {
	return &domain.Ticket{
		ARMID:       armID,
		ProblemType: "hardware",
		Priority:    "high",
		Description: "does not boot",
		Status:      domain.TicketStatusNew,
		CreatedBy:   createdBy,
	}
}

func TestTicketRepository_CreateAssignsDateStampedID(t *testing.T) {
	_, tickets, _ := newTestRepos(t)
	ctx := context.Background()

	ticket := newTicket("ARM-001", "user")
	require.NoError(t, tickets.Create(ctx, ticket))

	today := time.Now().UTC().Format("20060102")
	assert.Equal(t, fmt.Sprintf("TICKET-%s-001", today), ticket.ID)

	second := newTicket("ARM-001", "user")
	require.NoError(t, tickets.Create(ctx, second))
	assert.Equal(t, fmt.Sprintf("TICKET-%s-002", today), second.ID)
}

func TestTicketRepository_ListByCreator(t *testing.T) {
	_, tickets, _ := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, tickets.Create(ctx, newTicket("ARM-001", "user")))
	require.NoError(t, tickets.Create(ctx, newTicket("ARM-001", "someone-else")))

	mine, err := tickets.ListByCreator(ctx, "user")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "user", mine[0].CreatedBy)

	all, err := tickets.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTicketRepository_UpdateStatus(t *testing.T) {
	_, tickets, _ := newTestRepos(t)
	ctx := context.Background()

	ticket := newTicket("ARM-001", "user")
	require.NoError(t, tickets.Create(ctx, ticket))

	updated, err := tickets.UpdateStatus(ctx, ticket.ID, domain.TicketStatusResolved, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, updated.Status)
	assert.Equal(t, "admin", updated.UpdatedBy)

	_, err = tickets.UpdateStatus(ctx, "TICKET-19700101-001", domain.TicketStatusResolved, "admin")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepository_CountActiveByARM(t *testing.T) {
	_, tickets, _ := newTestRepos(t)
	ctx := context.Background()

	open := newTicket("ARM-001", "user")
	require.NoError(t, tickets.Create(ctx, open))

	resolved := newTicket("ARM-001", "user")
	require.NoError(t, tickets.Create(ctx, resolved))
	_, err := tickets.UpdateStatus(ctx, resolved.ID, domain.TicketStatusResolved, "admin")
	require.NoError(t, err)

	other := newTicket("ARM-002", "user")
	require.NoError(t, tickets.Create(ctx, other))

	count, err := tickets.CountActiveByARM(ctx, "ARM-001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTicketRepository_Counts(t *testing.T) {
	_, tickets, _ := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, tickets.Create(ctx, newTicket("ARM-001", "user")))
	require.NoError(t, tickets.Create(ctx, newTicket("ARM-001", "admin")))

	total, err := tickets.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	mine, err := tickets.Count(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine)

	newCount, err := tickets.CountByStatus(ctx, domain.TicketStatusNew, "user")
	require.NoError(t, err)
	assert.Equal(t, int64(1), newCount)
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	_, _, users := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{Username: "admin", Password: "admin123"}))

	got, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin123", got.Password)

	exists, err := users.Exists(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = users.Exists(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, exists)

	err = users.Create(ctx, &domain.User{Username: "admin", Password: "other"})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = users.GetByUsername(ctx, "ghost")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
