package bootstrap

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/authgate/component"
	"github.com/kbukum/authgate/config"
	"github.com/kbukum/authgate/logger"
)

type testConfig struct {
	config.ServiceConfig
}

// recorder collects lifecycle events in order.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.events, ",")
}

type mockComponent struct {
	name     string
	rec      *recorder
	startErr error
	stopErr  error
	status   component.HealthStatus
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(context.Context) error {
	m.rec.add("start:" + m.name)
	return m.startErr
}

func (m *mockComponent) Stop(context.Context) error {
	m.rec.add("stop:" + m.name)
	return m.stopErr
}

func (m *mockComponent) Health(context.Context) component.Health {
	status := m.status
	if status == "" {
		status = component.StatusHealthy
	}
	return component.Health{Name: m.name, Status: status}
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "authgate", Version: "1.0.0"}}
	opts = append([]Option{WithLogger(logger.NewNop())}, opts...)
	app, err := NewApp(cfg, opts...)
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	return app
}

// canceledCtx returns a context that is already done, so Run returns right
// after startup.
func canceledCtx() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "authgate" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity %s/%s", app.Name, app.Version)
	}
	if app.Components == nil || app.Logger == nil {
		t.Fatal("expected registry and logger")
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected defaults applied, got environment %q", app.Cfg.Environment)
	}
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("expected 15s default timeout, got %s", app.gracefulTimeout)
	}
}

func TestNewAppValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  *testConfig
	}{
		{"missing name", &testConfig{}},
		{"bad environment", &testConfig{ServiceConfig: config.ServiceConfig{Name: "x", Environment: "qa"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewApp(tc.cfg, WithLogger(logger.NewNop())); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWithGracefulTimeout(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(3*time.Second))
	if app.gracefulTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %s", app.gracefulTimeout)
	}
}

func TestRunLifecycleOrder(t *testing.T) {
	app := newTestApp(t)
	rec := &recorder{}

	_ = app.RegisterComponent(&mockComponent{name: "database", rec: rec})
	_ = app.RegisterComponent(&mockComponent{name: "redis", rec: rec})
	app.OnStart(func(context.Context) error { rec.add("onStart"); return nil })
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		rec.add("configure")
		// Components registered late are started by a second StartAll.
		if err := a.RegisterComponent(&mockComponent{name: "http-server", rec: rec}); err != nil {
			return err
		}
		return a.Components.StartAll(ctx)
	})
	app.OnReady(func(context.Context) error { rec.add("onReady"); return nil })
	app.OnStop(func(context.Context) error { rec.add("onStop"); return nil })

	if err := app.Run(canceledCtx()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := "start:database,start:redis,onStart,configure,start:http-server,onReady," +
		"onStop,stop:http-server,stop:redis,stop:database"
	if got := rec.String(); got != want {
		t.Errorf("lifecycle order\n got: %s\nwant: %s", got, want)
	}
}

func TestRunStartupFailureStopsStarted(t *testing.T) {
	app := newTestApp(t)
	rec := &recorder{}
	_ = app.RegisterComponent(&mockComponent{name: "database", rec: rec})
	_ = app.RegisterComponent(&mockComponent{name: "redis", rec: rec, startErr: errors.New("refused")})

	err := app.Run(canceledCtx())
	if err == nil || !strings.Contains(err.Error(), "refused") {
		t.Fatalf("expected startup error, got %v", err)
	}
	if got := rec.String(); got != "start:database,start:redis,stop:database" {
		t.Errorf("unexpected events %s", got)
	}
}

func TestRunConfigureFailure(t *testing.T) {
	app := newTestApp(t)
	rec := &recorder{}
	_ = app.RegisterComponent(&mockComponent{name: "database", rec: rec})
	app.OnConfigure(func(context.Context, *App[*testConfig]) error { return errors.New("no keys") })

	err := app.Run(canceledCtx())
	if err == nil || !strings.Contains(err.Error(), "configuration failed") {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(rec.String(), "stop:database") {
		t.Error("expected started components to be stopped")
	}
}

func TestShutdownErrors(t *testing.T) {
	app := newTestApp(t)
	rec := &recorder{}
	_ = app.RegisterComponent(&mockComponent{name: "database", rec: rec, stopErr: errors.New("close failed")})
	app.OnStop(func(context.Context) error { return errors.New("drain failed") })

	err := app.Run(canceledCtx())
	if err == nil || !strings.Contains(err.Error(), "drain failed") {
		t.Fatalf("expected the first shutdown error, got %v", err)
	}
	if !strings.Contains(rec.String(), "stop:database") {
		t.Error("components must stop even when a hook fails")
	}
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  component.HealthStatus
		wantErr bool
	}{
		{"healthy", component.StatusHealthy, false},
		{"degraded cache", component.StatusDegraded, false},
		{"unhealthy", component.StatusUnhealthy, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			_ = app.RegisterComponent(&mockComponent{name: "redis", rec: &recorder{}, status: tc.status})
			err := app.ReadyCheck(context.Background())
			if (err != nil) != tc.wantErr {
				t.Errorf("ReadyCheck() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestHookErrorIsWrapped(t *testing.T) {
	err := runHooks(context.Background(), []Hook{
		func(context.Context) error { return nil },
		func(context.Context) error { return errors.New("boom") },
	})
	if err == nil || !strings.Contains(err.Error(), "hook 1 failed") {
		t.Errorf("unexpected error %v", err)
	}
}
