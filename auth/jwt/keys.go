package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// KeyPair is the RSA key pair used to sign and verify tokens.
// It is immutable once built and safe to share between goroutines.
type KeyPair struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
}

// NewKeyPair builds a KeyPair and checks that the public key belongs to
// the private key.
func NewKeyPair(private *rsa.PrivateKey, public *rsa.PublicKey) (*KeyPair, error) {
	if private == nil || public == nil {
		return nil, errors.New("jwt: both private and public keys are required")
	}
	if !private.PublicKey.Equal(public) {
		return nil, errors.New("jwt: public key does not match private key")
	}
	return &KeyPair{private: private, public: public}, nil
}

// LoadKeyPair reads PEM-encoded RSA keys from disk.
func LoadKeyPair(privatePath, publicPath string) (*KeyPair, error) {
	privPEM, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("jwt: read private key: %w", err)
	}
	pubPEM, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("jwt: read public key: %w", err)
	}
	return ParseKeyPair(privPEM, pubPEM)
}

// ParseKeyPair parses PEM-encoded RSA keys.
func ParseKeyPair(privatePEM, publicPEM []byte) (*KeyPair, error) {
	private, err := gojwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("jwt: parse private key: %w", err)
	}
	public, err := gojwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("jwt: parse public key: %w", err)
	}
	return NewKeyPair(private, public)
}

// PublicKey returns the verification key.
func (k *KeyPair) PublicKey() *rsa.PublicKey {
	return k.public
}
