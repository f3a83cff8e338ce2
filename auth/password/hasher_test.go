package password

import (
	"errors"
	"strings"
	"testing"
)

func TestHashers(t *testing.T) {
	hashers := map[string]Hasher{
		"bcrypt":   NewBcryptHasher(WithCost(4)),
		"argon2id": NewArgon2Hasher(WithArgon2Memory(8*1024), WithArgon2Threads(1)),
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("s3cret")
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}
			if hash == "s3cret" {
				t.Fatal("hash must not equal plaintext")
			}
			if err := h.Verify("s3cret", hash); err != nil {
				t.Errorf("Verify() with correct password: %v", err)
			}
			if err := h.Verify("wrong-password", hash); !errors.Is(err, ErrMismatch) {
				t.Errorf("expected ErrMismatch, got %v", err)
			}

			again, err := h.Hash("s3cret")
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}
			if again == hash {
				t.Error("expected salted hashes to differ")
			}
		})
	}
}

func TestHashMinLength(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	if _, err := h.Hash("abcd"); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, err := h.Hash("abcde"); err != nil {
		t.Errorf("five characters should be accepted: %v", err)
	}
	a := NewArgon2Hasher(WithArgon2MinLength(10))
	if _, err := a.Hash("short-pw"); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort from argon2, got %v", err)
	}
}

func TestBcryptMaxLength(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	if _, err := h.Hash(strings.Repeat("x", 73)); !errors.Is(err, ErrTooLong) {
		t.Errorf("expected ErrTooLong, got %v", err)
	}
}

func TestVerifyCorruptHash(t *testing.T) {
	tests := []struct {
		name string
		h    Hasher
		hash string
	}{
		{"bcrypt garbage", NewBcryptHasher(), "not-a-hash"},
		{"argon2 wrong prefix", NewArgon2Hasher(), "$bcrypt$x$y$z$w"},
		{"argon2 bad params", NewArgon2Hasher(), "$argon2id$v=19$bogus$c2FsdA$aGFzaA"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.h.Verify("whatever", tc.hash)
			if err == nil {
				t.Fatal("expected error for corrupt hash")
			}
			if errors.Is(err, ErrMismatch) {
				t.Error("a corrupt hash should not be reported as a mismatch")
			}
		})
	}
}

func TestConfigAndNewHasher(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Algorithm != AlgorithmBcrypt || cfg.BcryptCost != 12 || cfg.MinLength != 5 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	if _, ok := NewHasher(Config{}).(*BcryptHasher); !ok {
		t.Error("expected bcrypt hasher by default")
	}
	if _, ok := NewHasher(Config{Algorithm: AlgorithmArgon2id}).(*Argon2Hasher); !ok {
		t.Error("expected argon2 hasher")
	}

	bad := Config{Algorithm: "md5", BcryptCost: 12, MinLength: 5}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
	bad = Config{Algorithm: AlgorithmBcrypt, BcryptCost: 99, MinLength: 5}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for out-of-range cost")
	}
}
