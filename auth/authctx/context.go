// Package authctx carries the session Payload through a request context.
//
// The payload middleware stores the result of auth.Service.ExtractPayload;
// handlers read it back:
//
//	ctx = authctx.Set(ctx, payload)
//	payload := authctx.Payload(ctx) // Absent when nothing was stored
package authctx

import (
	"context"
	"errors"

	"github.com/kbukum/authgate/auth"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var payloadKey = contextKey{}

// ErrNoPayload is returned when no payload was stored in the context.
var ErrNoPayload = errors.New("authctx: no payload in context")

// Set stores the payload in the context.
func Set(ctx context.Context, p auth.Payload) context.Context {
	return context.WithValue(ctx, payloadKey, p)
}

// Get retrieves the payload. The boolean is false when none was stored.
func Get(ctx context.Context) (auth.Payload, bool) {
	p, ok := ctx.Value(payloadKey).(auth.Payload)
	return p, ok
}

// Payload returns the stored payload, or an Absent payload when none was stored.
func Payload(ctx context.Context) auth.Payload {
	p, _ := Get(ctx)
	return p
}

// GetOrError returns ErrNoPayload when no payload was stored.
func GetOrError(ctx context.Context) (auth.Payload, error) {
	p, ok := Get(ctx)
	if !ok {
		return auth.Payload{}, ErrNoPayload
	}
	return p, nil
}
