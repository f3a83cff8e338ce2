// Command keygen writes an RSA key pair for signing session tokens.
//
//	keygen -private jwt-private.pem -public jwt-public.pem -bits 2048
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/kbukum/authgate/auth/jwt"
	"github.com/kbukum/authgate/logger"
)

func main() {
	privatePath := flag.String("private", "jwt-private.pem", "output path of the PKCS#8 private key")
	publicPath := flag.String("public", "jwt-public.pem", "output path of the PKIX public key")
	bits := flag.Int("bits", 2048, "RSA modulus size")
	force := flag.Bool("force", false, "overwrite existing files")
	flag.Parse()

	log := logger.New(&logger.Config{Level: "info", Format: logger.FormatConsole}, "keygen")
	if err := generate(*privatePath, *publicPath, *bits, *force); err != nil {
		log.Error("key generation failed", logger.ErrorFields("generate", err))
		os.Exit(1)
	}
	log.Info("key pair written", map[string]interface{}{
		"private": *privatePath,
		"public":  *publicPath,
		"bits":    *bits,
	})
}

func generate(privatePath, publicPath string, bits int, force bool) error {
	if bits < 2048 {
		return fmt.Errorf("bits must be at least 2048 (got: %d)", bits)
	}
	if !force {
		for _, p := range []string{privatePath, publicPath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s exists; use -force to overwrite", p)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("marshal private key: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return fmt.Errorf("marshal public key: %w", err)
	}

	if err := os.WriteFile(privatePath, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}), 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}
	if err := os.WriteFile(publicPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}), 0o644); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}

	// The pair must load the same way the service loads it.
	if _, err := jwt.LoadKeyPair(privatePath, publicPath); err != nil {
		return fmt.Errorf("verify written pair: %w", err)
	}
	return nil
}
