// Package user persists user records behind a small store interface.
//
// GormStore is the source of truth and enforces username uniqueness with a
// unique index. CachedStore puts a Redis read-through cache in front of any
// Store for username lookups.
package user

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no user has the requested username.
	ErrNotFound = errors.New("user: not found")

	// ErrDuplicate is returned when the username is already taken.
	ErrDuplicate = errors.New("user: already exists")
)

// Record is a stored user. HashedPassword never leaves the server.
type Record struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:255;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"hashed_password"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName pins the table name.
func (Record) TableName() string { return "users" }

// Public returns the client-visible projection.
func (r *Record) Public() Public {
	return Public{Username: r.Username, Email: r.Email}
}

// Public is what the API returns about a user.
type Public struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Store looks users up and creates them.
type Store interface {
	// FindByUsername returns ErrNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*Record, error)
	// Create returns ErrDuplicate when the username is taken.
	Create(ctx context.Context, rec *Record) (*Record, error)
}
