package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidRole        = errors.New("invalid user type")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInactive           = errors.New("inactive user")
	ErrEmptyUsername      = errors.New("username must not be empty")
	ErrEmptyPassword      = errors.New("password must not be empty")
)

type Role string

const (
	RoleSaler    Role = "saler"
	RoleIncomer  Role = "incomer"
	RoleInvoicer Role = "invoicer"
	RoleAdmin    Role = "admin"
)

// legacyInvoicer is a misspelling still present in older user records.
const legacyInvoicer = "ivoicer"

// ParseRole accepts the known role names case-insensitively and maps the
// legacy "ivoicer" spelling to RoleInvoicer.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == legacyInvoicer {
		return RoleInvoicer, nil
	}

	switch r := Role(s); r {
	case RoleSaler, RoleIncomer, RoleInvoicer, RoleAdmin:
		return r, nil
	}

	return "", ErrInvalidRole
}

type User struct {
	ID             int64
	Username       string
	HashedPassword string
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
