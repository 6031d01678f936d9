package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yufj-331/ordershare/internal/user"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (username, hashed_password, user_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, u.Username, u.HashedPassword, string(u.Role), u.IsActive).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrUsernameTaken
		}

		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

// GetUserByUsername normalizes the stored role so legacy spellings load cleanly.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
		SELECT id, username, hashed_password, user_type, is_active, created_at, updated_at
		FROM users WHERE username = $1
	`

	var (
		u    user.User
		role string
	)

	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.HashedPassword, &role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	u.Role, err = user.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("user %s has role %q: %w", username, role, err)
	}

	return &u, nil
}

func (s *Store) DeleteUser(ctx context.Context, username string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return user.ErrNotFound
	}

	return nil
}
