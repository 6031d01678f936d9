package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	DeleteUser(ctx context.Context, username string) error
}

type Service struct {
	repo Repository
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

type CreateParams struct {
	Username string
	Password string
	Role     string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	if params.Password == "" {
		return nil, ErrEmptyPassword
	}

	role, err := ParseRole(params.Role)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", params.Role, err)
	}

	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Username:       username,
		HashedPassword: string(hash),
		Role:           role,
		IsActive:       true,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate checks the password against the stored hash. Unknown users
// and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, ErrInactive
	}

	return u, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

func (s *Service) Delete(ctx context.Context, username string) error {
	return s.repo.DeleteUser(ctx, username)
}

// EnsureAdmin creates an admin account unless the username already exists.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := s.Create(ctx, CreateParams{Username: username, Password: password, Role: string(RoleAdmin)})
	if errors.Is(err, ErrUsernameTaken) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("Created bootstrap admin user", "username", username)

	return nil
}
