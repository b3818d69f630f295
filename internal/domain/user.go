package domain

import (
	"context"
	"time"
)

// User represents a registered account.
type User struct {
	ID           int64
	FirstName    string
	MiddleName   string
	LastName     string
	DateOfBirth  *time.Time
	Gender       string
	Email        string
	PasswordHash string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch carries a partial user update. Nil fields are left unchanged.
type UserPatch struct {
	FirstName    *string
	MiddleName   *string
	LastName     *string
	DateOfBirth  *time.Time
	Gender       *string
	Email        *string
	PasswordHash *string
	Phone        *string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*User, error)
	Delete(ctx context.Context, id int64) error
}
