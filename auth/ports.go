package auth

import (
	"context"

	"github.com/kbukum/authgate/auth/jwt"
	"github.com/kbukum/authgate/user"
)

// UserStore persists users. FindByUsername returns user.ErrNotFound when the
// user is absent and Create returns user.ErrDuplicate when the name is taken.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*user.Record, error)
	Create(ctx context.Context, rec *user.Record) (*user.Record, error)
}

// PasswordHasher hashes and verifies passwords. Verify returns nil on match
// and password.ErrMismatch on a wrong password.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) error
}

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(username, email string) (string, *jwt.Claims, error)
	Parse(token string) (*jwt.Claims, error)
}

// Metrics receives protocol outcomes.
type Metrics interface {
	RecordLogin(ctx context.Context, outcome string)
	RecordRegister(ctx context.Context, outcome string)
	RecordTokenRejected(ctx context.Context, reason string)
	RecordGuardDenied(ctx context.Context)
}

type nopMetrics struct{}

func (nopMetrics) RecordLogin(context.Context, string)         {}
func (nopMetrics) RecordRegister(context.Context, string)      {}
func (nopMetrics) RecordTokenRejected(context.Context, string) {}
func (nopMetrics) RecordGuardDenied(context.Context)           {}
