package jwt

import (
	"errors"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Reason classifies why a token was rejected.
type Reason string

const (
	ReasonMalformed   Reason = "malformed"
	ReasonSignature   Reason = "signature"
	ReasonAlgorithm   Reason = "algorithm"
	ReasonExpired     Reason = "expired"
	ReasonNotYetValid Reason = "not_yet_valid"
	ReasonClaims      Reason = "claims"
)

var errUnexpectedAlgorithm = errors.New("unexpected signing method")

// InvalidTokenError is the only error Parse returns.
type InvalidTokenError struct {
	Reason Reason
	Err    error
}

func (e *InvalidTokenError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("jwt: invalid token: %s", e.Reason)
	}
	return fmt.Sprintf("jwt: invalid token: %s: %v", e.Reason, e.Err)
}

func (e *InvalidTokenError) Unwrap() error {
	return e.Err
}

// IsInvalidToken reports whether err is an *InvalidTokenError and returns it.
func IsInvalidToken(err error) (*InvalidTokenError, bool) {
	var ite *InvalidTokenError
	if errors.As(err, &ite) {
		return ite, true
	}
	return nil, false
}

// invalid classifies a golang-jwt parse error.
func invalid(err error) *InvalidTokenError {
	var reason Reason
	switch {
	case errors.Is(err, errUnexpectedAlgorithm), errors.Is(err, gojwt.ErrTokenUnverifiable):
		reason = ReasonAlgorithm
	case errors.Is(err, gojwt.ErrTokenMalformed):
		reason = ReasonMalformed
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		reason = ReasonSignature
	case errors.Is(err, gojwt.ErrTokenExpired):
		reason = ReasonExpired
	case errors.Is(err, gojwt.ErrTokenNotValidYet), errors.Is(err, gojwt.ErrTokenUsedBeforeIssued):
		reason = ReasonNotYetValid
	default:
		reason = ReasonClaims
	}
	return &InvalidTokenError{Reason: reason, Err: err}
}
