package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"user-management/internal/domain/user"
	um_errors "user-management/pkg/errors"
)

type PostgresUserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (first_name, last_name, email, password)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		u.FirstName, u.LastName, u.Email, u.PasswordHash).Scan(&u.ID)
	if err != nil {
		// The unique index on email is the final arbiter for duplicate
		// registrations, including the precheck/insert race.
		if isUniqueViolation(err) {
			return um_errors.ErrConflict
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	query := `SELECT id, first_name, last_name, email, password
	          FROM users
	          WHERE email = $1`

	var u user.User
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, um_errors.ErrNotFound
		}
		return user.User{}, fmt.Errorf("failed to query user by email: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id int64) (user.User, error) {
	query := `SELECT id, first_name, last_name, email, password
	          FROM users
	          WHERE id = $1`

	var u user.User
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, um_errors.ErrNotFound
		}
		return user.User{}, fmt.Errorf("failed to query user by id: %w", err)
	}
	return u, nil
}
