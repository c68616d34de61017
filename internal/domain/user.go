package domain

import "time"

// User represents an account that may authenticate against the API.
type User struct {
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
