package repository

import (
	"context"

	"user-management/internal/domain/user"
)

// UserRepository abstracts persistence for user records.
type UserRepository interface {
	// Create inserts a new user and fills in the generated ID.
	// Returns um_errors.ErrConflict when the email is already taken.
	Create(ctx context.Context, u *user.User) error

	// GetUserByEmail returns the user with the exact email, or
	// um_errors.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (user.User, error)

	// GetUserByID returns the user with the given ID, or
	// um_errors.ErrNotFound.
	GetUserByID(ctx context.Context, id int64) (user.User, error)
}
