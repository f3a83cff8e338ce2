package auth

import (
	"fmt"

	"github.com/kbukum/authgate/auth/cookie"
	"github.com/kbukum/authgate/auth/jwt"
	"github.com/kbukum/authgate/auth/password"
)

// Config holds all authentication configuration.
// It composes subpackage configs for loading from YAML/env via mapstructure.
type Config struct {
	JWT      jwt.Config      `yaml:"jwt" mapstructure:"jwt"`
	Cookie   cookie.Config   `yaml:"cookie" mapstructure:"cookie"`
	Password password.Config `yaml:"password" mapstructure:"password"`
	Messages MessagesConfig  `yaml:"messages" mapstructure:"messages"`
}

// ApplyDefaults sets defaults on every sub-configuration.
func (c *Config) ApplyDefaults() {
	c.JWT.ApplyDefaults()
	c.Cookie.ApplyDefaults()
	c.Password.ApplyDefaults()
	c.Messages.ApplyDefaults()
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if err := c.JWT.Validate(); err != nil {
		return fmt.Errorf("auth.jwt: %w", err)
	}
	if err := c.Cookie.Validate(); err != nil {
		return fmt.Errorf("auth.cookie: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	if err := c.Messages.Validate(); err != nil {
		return fmt.Errorf("auth.messages: %w", err)
	}
	return nil
}

// Describe returns a human-readable one-liner for the startup log.
// Example: "JWT(RS256) TTL=24h0m0s cookie=JWT-ACCESS-TOKEN password=bcrypt locale=en"
func (c *Config) Describe() string {
	return fmt.Sprintf("JWT(%s) TTL=%s cookie=%s password=%s locale=%s",
		c.JWT.Algorithm, c.JWT.Lifetime(), c.Cookie.Alias, c.Password.Algorithm, c.Messages.Locale)
}
