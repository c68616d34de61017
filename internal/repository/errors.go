package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique constraint (inventory number, username) was violated.
	ErrDuplicate = errors.New("already exists")
)
