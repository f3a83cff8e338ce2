// Package security builds client TLS settings for outbound connections,
// such as the Redis user cache.
//
//	cfg := security.TLSConfig{Enabled: true, CAFile: "/etc/authgate/redis-ca.pem"}
//	tlsConfig, err := cfg.Build()
package security
