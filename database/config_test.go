package database

import (
	"strings"
	"testing"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Driver != DriverSQLite || cfg.DSN != "authgate.db" {
		t.Errorf("unexpected driver defaults: %s %s", cfg.Driver, cfg.DSN)
	}
	if cfg.MaxOpenConns != 25 || cfg.MaxIdleConns != 5 {
		t.Errorf("unexpected pool defaults: %d/%d", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != "1h" || cfg.ConnMaxIdleTime != "5m" || cfg.SlowQueryThreshold != "200ms" {
		t.Errorf("unexpected duration defaults: %+v", cfg)
	}
	if cfg.MaxRetries != 5 || cfg.LogLevel != "warn" || !cfg.ShouldAutoMigrate() {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigPostgresKeepsEmptyDSN(t *testing.T) {
	cfg := Config{Driver: DriverPostgres}
	cfg.ApplyDefaults()
	if cfg.DSN != "" {
		t.Errorf("postgres must not inherit the sqlite file default, got %q", cfg.DSN)
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "DSN") {
		t.Errorf("expected DSN error, got %v", err)
	}
}

func TestConfigAutoMigrateOff(t *testing.T) {
	off := false
	cfg := Config{AutoMigrate: &off}
	cfg.ApplyDefaults()
	if cfg.ShouldAutoMigrate() {
		t.Error("explicit auto_migrate=false must survive defaults")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad driver", func(c *Config) { c.Driver = "mysql" }, "driver must be"},
		{"idle above open", func(c *Config) { c.MaxIdleConns = 50 }, "max_idle_conns"},
		{"bad lifetime", func(c *Config) { c.ConnMaxLifetime = "forever" }, "conn_max_lifetime"},
		{"bad idle time", func(c *Config) { c.ConnMaxIdleTime = "x" }, "conn_max_idle_time"},
		{"bad slow threshold", func(c *Config) { c.SlowQueryThreshold = "fast" }, "slow_query_threshold"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{}
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("silent") >= parseLogLevel("error") {
		t.Error("silent must be below error")
	}
	if parseLogLevel("unknown") != parseLogLevel("warn") {
		t.Error("unknown levels fall back to warn")
	}
}
