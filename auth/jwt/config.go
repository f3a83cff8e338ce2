package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod names a supported JWT signing algorithm.
type SigningMethod string

// Only asymmetric RSA methods are accepted.
const (
	RS256 SigningMethod = "RS256"
	RS384 SigningMethod = "RS384"
	RS512 SigningMethod = "RS512"
)

const (
	defaultPrivateKeyPath = "jwt-private.pem"
	defaultPublicKeyPath  = "jwt-public.pem"
	defaultExpireMinutes  = 1440
)

// Config configures the token service.
type Config struct {
	// PrivateKeyPath is the PEM file holding the RSA private key (PKCS#1 or PKCS#8).
	PrivateKeyPath string `yaml:"private_key_path" mapstructure:"private_key_path"`

	// PublicKeyPath is the PEM file holding the matching RSA public key.
	PublicKeyPath string `yaml:"public_key_path" mapstructure:"public_key_path"`

	// Algorithm is the signing method (default: RS256).
	Algorithm SigningMethod `yaml:"algorithm" mapstructure:"algorithm"`

	// AccessTokenExpireMinutes is the token lifetime (default: 1440, one day).
	AccessTokenExpireMinutes int `yaml:"access_token_expire_minutes" mapstructure:"access_token_expire_minutes"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.PrivateKeyPath == "" {
		c.PrivateKeyPath = defaultPrivateKeyPath
	}
	if c.PublicKeyPath == "" {
		c.PublicKeyPath = defaultPublicKeyPath
	}
	if c.Algorithm == "" {
		c.Algorithm = RS256
	}
	if c.AccessTokenExpireMinutes == 0 {
		c.AccessTokenExpireMinutes = defaultExpireMinutes
	}
}

// Validate checks the algorithm and lifetime.
func (c *Config) Validate() error {
	switch c.Algorithm {
	case RS256, RS384, RS512:
	default:
		return fmt.Errorf("unsupported signing algorithm %q (want RS256, RS384 or RS512)", c.Algorithm)
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return errors.New("access_token_expire_minutes must be positive")
	}
	if c.PrivateKeyPath == "" || c.PublicKeyPath == "" {
		return errors.New("private_key_path and public_key_path are required")
	}
	return nil
}

// Lifetime returns the access token lifetime.
func (c *Config) Lifetime() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Algorithm {
	case RS384:
		return gojwt.SigningMethodRS384
	case RS512:
		return gojwt.SigningMethodRS512
	default:
		return gojwt.SigningMethodRS256
	}
}
