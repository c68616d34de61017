package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"arm-servicedesk/internal/domain"
	"arm-servicedesk/internal/repository"
)

// defaultAccounts are the two fixed accounts created by first-run
// initialization; the API never creates, mutates or deletes accounts.
var defaultAccounts = []domain.User{
	{Username: "user", Password: "user123"},
	{Username: "admin", Password: "admin123"},
}

// UserService describes identity operations: login, per-request token
// resolution and the one-time seeding bootstrap.
type UserService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	IsAdmin(username string) bool
	EnsureDefaults(ctx context.Context) error
}

type userService struct {
	users         repository.UserRepository
	adminUsername string
}

func NewUserService(users repository.UserRepository, adminUsername string) UserService {
	return &userService{
		users:         users,
		adminUsername: strings.TrimSpace(adminUsername),
	}
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) Exists(ctx context.Context, username string) (bool, error) {
	return s.users.Exists(ctx, username)
}

// IsAdmin reports whether the identity is the single fixed administrator.
func (s *userService) IsAdmin(username string) bool {
	return username != "" && username == s.adminUsername
}

// EnsureDefaults seeds the fixed accounts when they are absent. Safe to run
// on every startup.
func (s *userService) EnsureDefaults(ctx context.Context) error {
	for _, account := range defaultAccounts {
		exists, err := s.users.Exists(ctx, account.Username)
		if err != nil {
			return fmt.Errorf("check default user %s: %w", account.Username, err)
		}
		if exists {
			continue
		}

		user := account
		if err := s.users.Create(ctx, &user); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("seed default user %s: %w", account.Username, err)
		}
	}
	return nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
