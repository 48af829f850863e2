package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/bookswap/data"
)

type users interface {
	RegisterUser(ctx context.Context, user *data.User) error
	GetUserByID(ctx context.Context, ID int64) (*data.User, error)
	UpdateUser(ctx context.Context, user *data.User) error
	DeleteUser(ctx context.Context, ID int64) error
}

func uniqueUserViolation(err error) bool {
	return isUniqueViolation(err, "users_email_key") || isUniqueViolation(err, "users_username_key")
}

// RegisterUser registers a new user.
func (r *repository) RegisterUser(ctx context.Context, user *data.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, is_superuser)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version`
	args := []any{user.Username, user.Email, user.Password.Hash, user.IsSuperuser}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Version,
	)
	if err != nil {
		switch {
		case uniqueUserViolation(err):
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetUserByID retrieves a user record by its ID.
func (r *repository) GetUserByID(ctx context.Context, ID int64) (*data.User, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, username, email, password_hash, is_superuser, version
		FROM users
		WHERE id = $1`
	var user data.User
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, ID).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Username,
		&user.Email,
		&user.Password.Hash,
		&user.IsSuperuser,
		&user.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// UpdateUser updates a user record.
func (r *repository) UpdateUser(ctx context.Context, user *data.User) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version`
	args := []any{
		user.Username,
		user.Email,
		user.Password.Hash,
		user.ID,
		user.Version,
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.Version)
	if err != nil {
		switch {
		case uniqueUserViolation(err):
			return ErrDuplicateRecord
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteUser deletes a user record. Ownership records, photos and exchange
// requests of the user go with it.
func (r *repository) DeleteUser(ctx context.Context, ID int64) error {
	if ID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM users
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, ID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
