// Package jwt issues and verifies RSA-signed session tokens.
//
// A Service owns one immutable KeyPair. Tokens carry Claims (username,
// email, iat, exp) and are valid only when the signature verifies under the
// configured public key with the configured algorithm and exp lies in the
// future.
//
//	keys, err := jwt.LoadKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath)
//	svc, err := jwt.NewService(cfg, keys)
//	token, claims, err := svc.Issue("alice", "alice@example.com")
//	claims, err = svc.Parse(token)
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Service signs and parses access tokens. It is safe for concurrent use.
type Service struct {
	cfg  Config
	keys *KeyPair
	now  func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a token service from a config and a loaded key pair.
func NewService(cfg *Config, keys *KeyPair, opts ...Option) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	if keys == nil {
		return nil, errors.New("jwt: key pair is required")
	}
	s := &Service{cfg: *cfg, keys: keys, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewServiceFromFiles loads the key pair from the configured PEM paths.
func NewServiceFromFiles(cfg *Config, opts ...Option) (*Service, error) {
	cfg.ApplyDefaults()
	keys, err := LoadKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath)
	if err != nil {
		return nil, err
	}
	return NewService(cfg, keys, opts...)
}

// Algorithm returns the configured signing algorithm.
func (s *Service) Algorithm() SigningMethod {
	return s.cfg.Algorithm
}

// Lifetime returns the access token lifetime.
func (s *Service) Lifetime() time.Duration {
	return s.cfg.Lifetime()
}

// Issue signs a token for the given identity. iat is now and exp is
// now plus the configured lifetime.
func (s *Service) Issue(username, email string) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		Username: username,
		Email:    email,
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.Lifetime())),
		},
	}

	token := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := token.SignedString(s.keys.private)
	if err != nil {
		return "", nil, fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies the signature, algorithm and expiry of a token and returns
// its claims. Every failure is an *InvalidTokenError.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return nil, invalid(err)
	}
	if !token.Valid {
		return nil, &InvalidTokenError{Reason: ReasonClaims, Err: errors.New("token not valid")}
	}
	return claims, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(token *gojwt.Token) (interface{}, error) {
	expected := s.cfg.signingMethod()
	if token.Method == nil || token.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("%w: %v", errUnexpectedAlgorithm, token.Header["alg"])
	}
	return s.keys.public, nil
}

// parserOptions returns the jwt.ParserOption set for this service.
func (s *Service) parserOptions() []gojwt.ParserOption {
	return []gojwt.ParserOption{
		gojwt.WithExpirationRequired(),
		gojwt.WithIssuedAt(),
		gojwt.WithStrictDecoding(),
		gojwt.WithTimeFunc(s.now),
	}
}
