package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"arm-servicedesk/internal/repository"
	"arm-servicedesk/internal/repository/sqlite"
)

type testEnv struct {
	arms    repository.ARMRepository
	tickets repository.TicketRepository
	users   repository.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	env := &testEnv{
		arms:    sqlite.NewARMRepository(db),
		tickets: sqlite.NewTicketRepository(db),
		users:   sqlite.NewUserRepository(db),
	}
	require.NoError(t, env.arms.Init(ctx))
	require.NoError(t, env.tickets.Init(ctx))
	require.NoError(t, env.users.Init(ctx))

	return env
}

func (e *testEnv) armService() ARMService {
	return NewARMService(e.arms, e.tickets)
}

func (e *testEnv) ticketService() TicketService {
	return NewTicketService(e.tickets, e.arms)
}

func (e *testEnv) userService() UserService {
	return NewUserService(e.users, "admin")
}

func (e *testEnv) statsService() StatsService {
	return NewStatsService(e.arms, e.tickets)
}

func strptr(s string) *string {
	return &s
}
