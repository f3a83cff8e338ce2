package authctx

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/authgate/auth"
	"github.com/kbukum/authgate/auth/jwt"
)

func TestSetAndGet(t *testing.T) {
	p := auth.Payload{Kind: auth.PayloadPresent, Claims: &jwt.Claims{Username: "alice"}}
	ctx := Set(context.Background(), p)

	got, ok := Get(ctx)
	if !ok {
		t.Fatal("expected payload in context")
	}
	if got.Username() != "alice" {
		t.Errorf("expected alice, got %q", got.Username())
	}
	if Payload(ctx).Kind != auth.PayloadPresent {
		t.Error("Payload() should return the stored payload")
	}
}

func TestMissingPayload(t *testing.T) {
	ctx := context.Background()

	if _, ok := Get(ctx); ok {
		t.Error("expected no payload")
	}
	if Payload(ctx).Kind != auth.PayloadAbsent {
		t.Error("expected Absent for an empty context")
	}
	if _, err := GetOrError(ctx); !errors.Is(err, ErrNoPayload) {
		t.Errorf("expected ErrNoPayload, got %v", err)
	}
}

func TestInvalidPayloadRoundTrip(t *testing.T) {
	p := auth.Payload{Kind: auth.PayloadInvalid, Reason: jwt.ReasonExpired, Message: "invalid token error: expired"}
	got, err := GetOrError(Set(context.Background(), p))
	if err != nil {
		t.Fatalf("GetOrError() error: %v", err)
	}
	if got.Reason != jwt.ReasonExpired || got.Authenticated() {
		t.Errorf("unexpected payload %+v", got)
	}
}
