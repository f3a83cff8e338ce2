package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authgate/component"
	apperrors "github.com/kbukum/authgate/errors"
	"github.com/kbukum/authgate/logger"
	"github.com/kbukum/authgate/server/middleware"
)

func newTestServer(t *testing.T, checker func(context.Context) []component.Health) *Server {
	t.Helper()
	s := New(Config{}, logger.NewNop())
	gin.SetMode(gin.TestMode)
	s.ApplyMiddleware()
	s.RegisterDefaultEndpoints("authgate", checker)
	return s
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Addr() != "localhost:8000" {
		t.Errorf("expected localhost:8000, got %s", cfg.Addr())
	}
	if cfg.MaxBodySize != "64KB" {
		t.Errorf("unexpected body size %q", cfg.MaxBodySize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	cfg.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected port validation error")
	}
}

func TestConfigValidateTrustedProxies(t *testing.T) {
	tests := []struct {
		name    string
		proxies []string
		wantErr bool
	}{
		{"none", nil, false},
		{"ip and cidr", []string{"10.0.0.1", "172.16.0.0/12", "::1"}, false},
		{"hostname", []string{"proxy.local"}, true},
		{"bad cidr", []string{"10.0.0.0/40"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{TrustedProxies: tc.proxies}
			cfg.ApplyDefaults()
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRateLimitKeysOnPeerUnlessProxyTrusted(t *testing.T) {
	tests := []struct {
		name        string
		proxies     []string
		wantLimited int
	}{
		{"forwarded header ignored by default", nil, 8},
		{"forwarded header honored from trusted proxy", []string{"192.0.2.0/24"}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			s := New(Config{TrustedProxies: tc.proxies}, logger.NewNop())
			s.GinEngine().POST("/login", middleware.RateLimit(middleware.RateLimitConfig{RequestsPerMinute: 2}), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			limited := 0
			for i := 0; i < 10; i++ {
				req := httptest.NewRequest(http.MethodPost, "/login", nil)
				req.RemoteAddr = "192.0.2.10:40000"
				req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
				rr := httptest.NewRecorder()
				s.GinEngine().ServeHTTP(rr, req)
				if rr.Code == http.StatusTooManyRequests {
					limited++
				}
			}
			if limited != tc.wantLimited {
				t.Errorf("expected %d limited requests, got %d", tc.wantLimited, limited)
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		results    []component.Health
		wantStatus int
		wantBody   component.HealthStatus
	}{
		{"healthy", []component.Health{{Name: "database", Status: component.StatusHealthy}}, http.StatusOK, component.StatusHealthy},
		{"degraded cache", []component.Health{
			{Name: "database", Status: component.StatusHealthy},
			{Name: "redis", Status: component.StatusDegraded},
		}, http.StatusOK, component.StatusDegraded},
		{"database down", []component.Health{{Name: "database", Status: component.StatusUnhealthy}}, http.StatusServiceUnavailable, component.StatusUnhealthy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, func(context.Context) []component.Health { return tc.results })
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rr.Code)
			}
			var body struct {
				Status     component.HealthStatus `json:"status"`
				Service    string                 `json:"service"`
				Components []component.Health     `json:"components"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Status != tc.wantBody || body.Service != "authgate" || len(body.Components) != len(tc.results) {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}

func TestLivenessAndRequestID(t *testing.T) {
	s := newTestServer(t, nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/alive", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get(middleware.HeaderRequestID) == "" {
		t.Error("expected the request-wide stack to set X-Request-Id")
	}
}

func TestRespondWithError(t *testing.T) {
	s := newTestServer(t, nil)
	s.GinEngine().GET("/app", func(c *gin.Context) { RespondWithError(c, apperrors.NotAcceptable("")) })
	s.GinEngine().GET("/plain", func(c *gin.Context) { RespondWithError(c, errors.New("secret detail")) })
	s.GinEngine().GET("/panic", func(c *gin.Context) { panic("boom") })

	tests := []struct {
		path   string
		status int
		code   apperrors.ErrorCode
	}{
		{"/app", http.StatusNotAcceptable, apperrors.ErrCodeNotAcceptable},
		{"/plain", http.StatusInternalServerError, apperrors.ErrCodeInternal},
		{"/panic", http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, http.NoBody))
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			var body apperrors.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Error.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, body.Error.Code)
			}
		})
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	return port
}

func TestComponentLifecycle(t *testing.T) {
	s := New(Config{Host: "127.0.0.1", Port: freePort(t)}, logger.NewNop())
	s.RegisterDefaultEndpoints("authgate", nil)
	comp := NewComponent(s)
	ctx := context.Background()

	if h := comp.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	t.Cleanup(func() { _ = comp.Stop(ctx) })

	resp, err := http.Get(fmt.Sprintf("http://%s/alive", s.Addr()))
	if err != nil {
		t.Fatalf("GET /alive: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if h := comp.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy while running, got %s", h.Status)
	}
	if d := comp.Describe(); d.Type != "server" {
		t.Errorf("unexpected description %+v", d)
	}

	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if s.Running() {
		t.Error("expected server to be stopped")
	}
}

func TestStartBindFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()

	s := New(Config{Host: "127.0.0.1", Port: l.Addr().(*net.TCPAddr).Port}, logger.NewNop())
	if err := s.Start(context.Background()); err == nil {
		t.Error("expected bind error on a taken port")
	}
}
