package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

type Role string

const (
	RoleUser     Role = "user"
	RoleAdmin    Role = "admin"
	RoleAgent    Role = "agent"
	RoleReferrer Role = "referrer"
)

// ParseRole maps free text to a Role. Empty input means RoleUser.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RoleUser, true
	case RoleUser, RoleAdmin, RoleAgent, RoleReferrer:
		return r, true
	default:
		return "", false
	}
}

// SelfAssignable reports whether r may be chosen at public registration.
// Admin and agent accounts are provisioned by an administrator.
func (r Role) SelfAssignable() bool {
	return r == RoleUser || r == RoleReferrer
}

// User is a referrer/admin account. PasswordHash never leaves the service.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
