package authapi

import (
	"github.com/kbukum/authgate/validation"
)

// Config holds the route prefixes.
type Config struct {
	V1Prefix    string `yaml:"v1_prefix" mapstructure:"v1_prefix"`
	UsersPrefix string `yaml:"users_prefix" mapstructure:"users_prefix"`
}

// ApplyDefaults sets /v1 and /users.
func (c *Config) ApplyDefaults() {
	if c.V1Prefix == "" {
		c.V1Prefix = "/v1"
	}
	if c.UsersPrefix == "" {
		c.UsersPrefix = "/users"
	}
}

// Validate requires both prefixes to be absolute paths without a trailing slash.
func (c *Config) Validate() error {
	v := validation.New().
		Required("api.v1_prefix", c.V1Prefix).
		Pattern("api.v1_prefix", c.V1Prefix, `^/[A-Za-z0-9_\-/]*[A-Za-z0-9_\-]$`).
		Required("api.users_prefix", c.UsersPrefix).
		Pattern("api.users_prefix", c.UsersPrefix, `^/[A-Za-z0-9_\-/]*[A-Za-z0-9_\-]$`)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// BasePath returns the prefix every auth route hangs off.
func (c *Config) BasePath() string {
	return c.V1Prefix + c.UsersPrefix + "/auth"
}
