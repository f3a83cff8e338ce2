package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/authgate/component"
)

func useInMemoryTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("authgate")
	if cfg.ServiceName != "authgate" {
		t.Errorf("expected ServiceName 'authgate', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 || !cfg.Insecure {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigDefaultsAndDerivation(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || *cfg.SampleRate != 1.0 || cfg.MetricInterval != 15*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	rate := 0.25
	cfg = Config{Endpoint: "otel:4318", SampleRate: &rate, MetricInterval: time.Minute}
	tc := cfg.TracerConfig("authgate", "2.0.0", "production")
	if tc.Endpoint != "otel:4318" || tc.SampleRate != 0.25 || tc.ServiceVersion != "2.0.0" || tc.Environment != "production" {
		t.Errorf("unexpected tracer config: %+v", tc)
	}
	mc := cfg.MeterConfig("authgate", "2.0.0", "production")
	if mc.Interval != time.Minute || mc.Insecure {
		t.Errorf("unexpected meter config: %+v", mc)
	}

	bad := 1.5
	if err := (&Config{SampleRate: &bad}).Validate(); err == nil {
		t.Error("expected error for sample rate above 1")
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "ParentBased"},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.rate), func(t *testing.T) {
			got := sampler(tc.rate).Description()
			if len(got) < len(tc.want) || got[:len(tc.want)] != tc.want {
				t.Errorf("sampler(%v) = %q, want prefix %q", tc.rate, got, tc.want)
			}
		})
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("authgate", "1.2.3", "test")
	if err != nil {
		t.Fatalf("newResource() error: %v", err)
	}
	found := false
	for _, kv := range res.Attributes() {
		if kv.Key == "service.name" && kv.Value.AsString() == "authgate" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected service.name attribute, got %v", res.Attributes())
	}
}

func TestStartSpanRecordsAttributesAndErrors(t *testing.T) {
	exporter := useInMemoryTracer(t)

	ctx, span := StartSpan(context.Background(), SpanAuthLogin)
	SetSpanAttribute(ctx, AttrUsername, "alice")
	SetSpanAttribute(ctx, "attempt", 2)
	SetSpanAttribute(ctx, "ignored", struct{}{})
	SetSpanError(ctx, fmt.Errorf("wrong password"))
	if TraceIDFromContext(ctx) == "" {
		t.Error("expected trace id inside a recording span")
	}
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name != SpanAuthLogin {
		t.Errorf("expected span %q, got %q", SpanAuthLogin, s.Name)
	}
	if s.Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status)
	}
	var hasUser bool
	for _, a := range s.Attributes {
		if a.Key == attribute.Key(AttrUsername) && a.Value.AsString() == "alice" {
			hasUser = true
		}
	}
	if !hasUser {
		t.Errorf("expected username attribute, got %v", s.Attributes)
	}
}

func TestSpanHelpersWithoutSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span"))
	if TraceIDFromContext(ctx) != "" {
		t.Error("expected empty trace id without a span")
	}
	if Tracer("x") == nil || Meter("x") == nil {
		t.Error("expected global tracer and meter")
	}
}

func TestAuthMetricsNoop(t *testing.T) {
	metrics, err := NewAuthMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordLogin(ctx, OutcomeSuccess)
	metrics.RecordRegister(ctx, OutcomeDuplicate)
	metrics.RecordTokenRejected(ctx, "expired")
	metrics.RecordGuardDenied(ctx)
	metrics.RecordRequest(ctx, "POST", "/v1/users/auth/login", 200, 10*time.Millisecond)
}

func TestAuthMetricsCollect(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewAuthMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewAuthMetrics() error: %v", err)
	}
	ctx := context.Background()
	metrics.RecordLogin(ctx, OutcomeSuccess)
	metrics.RecordLogin(ctx, OutcomeWrongPass)
	metrics.RecordLogin(ctx, OutcomeWrongPass)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "auth.login.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("expected int64 sum, got %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				outcome, _ := dp.Attributes.Value("outcome")
				counts[outcome.AsString()] = dp.Value
			}
		}
	}
	if counts[OutcomeSuccess] != 1 || counts[OutcomeWrongPass] != 2 {
		t.Errorf("unexpected login counts: %v", counts)
	}
}

func TestComponentDisabled(t *testing.T) {
	c := NewComponent(Config{}, "authgate", "1.0.0", "test")
	var _ component.Component = c

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	h := c.Health(context.Background())
	if h.Status != component.StatusHealthy || h.Message != "disabled" {
		t.Errorf("unexpected health: %+v", h)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Errorf("Stop() error: %v", err)
	}
}

func TestComponentEnabledNotStarted(t *testing.T) {
	c := NewComponent(Config{Enabled: true}, "authgate", "1.0.0", "test")
	if h := c.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %+v", h)
	}
}
