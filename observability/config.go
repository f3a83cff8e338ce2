package observability

import (
	"fmt"
	"time"
)

// Config configures OpenTelemetry export. Loadable from YAML/env.
type Config struct {
	// Enabled turns on OTLP export of traces and metrics.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Endpoint is the OTLP HTTP endpoint host:port (default: localhost:4318).
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`

	// SampleRate is the trace sampling ratio, 0.0 to 1.0 (default: 1.0).
	SampleRate *float64 `yaml:"sample_rate" mapstructure:"sample_rate"`

	// MetricInterval is the metric export period (default: 15s).
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == nil {
		rate := 1.0
		c.SampleRate = &rate
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
}

// Validate checks the sampling ratio.
func (c *Config) Validate() error {
	if c.SampleRate != nil && (*c.SampleRate < 0 || *c.SampleRate > 1) {
		return fmt.Errorf("sample_rate must be between 0 and 1 (got: %v)", *c.SampleRate)
	}
	if c.MetricInterval < 0 {
		return fmt.Errorf("metric_interval must not be negative")
	}
	return nil
}

// TracerConfig derives the tracer settings for a service.
func (c *Config) TracerConfig(serviceName, version, environment string) TracerConfig {
	tc := DefaultTracerConfig(serviceName)
	tc.ServiceVersion = version
	tc.Environment = environment
	tc.Endpoint = c.Endpoint
	tc.Insecure = c.Insecure
	if c.SampleRate != nil {
		tc.SampleRate = *c.SampleRate
	}
	return tc
}

// MeterConfig derives the meter settings for a service.
func (c *Config) MeterConfig(serviceName, version, environment string) MeterConfig {
	mc := DefaultMeterConfig(serviceName)
	mc.ServiceVersion = version
	mc.Environment = environment
	mc.Endpoint = c.Endpoint
	mc.Insecure = c.Insecure
	mc.Interval = c.MetricInterval
	return mc
}
