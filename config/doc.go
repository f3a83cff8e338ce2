// Package config loads service configuration.
//
// Values are layered: config.yml (searched under ./cmd/<service>/, ./config/
// and ./), then .env loaded into the process environment, then environment
// variables mapped onto nested keys (AUTH_JWT_ALGORITHM -> auth.jwt.algorithm).
// With WithEnvPrefix only PREFIX_* variables are considered.
//
//	var cfg MyConfig
//	err := config.LoadConfig("authgate", &cfg, config.WithEnvPrefix("AUTHGATE"))
package config
