// Package cookie carries session tokens in an HTTP cookie.
package cookie

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/authgate/auth/jwt"
)

const defaultAlias = "JWT-ACCESS-TOKEN"

// Config configures the session cookie.
type Config struct {
	// Alias is the cookie name (default: JWT-ACCESS-TOKEN).
	Alias string `yaml:"alias" mapstructure:"alias"`

	Path     string `yaml:"path" mapstructure:"path"`
	Domain   string `yaml:"domain" mapstructure:"domain"`
	Secure   bool   `yaml:"secure" mapstructure:"secure"`
	HTTPOnly *bool  `yaml:"http_only" mapstructure:"http_only"`

	// SameSite is one of lax, strict, none or default (default: lax).
	SameSite string `yaml:"same_site" mapstructure:"same_site"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Alias == "" {
		c.Alias = defaultAlias
	}
	if c.Path == "" {
		c.Path = "/"
	}
	if c.HTTPOnly == nil {
		on := true
		c.HTTPOnly = &on
	}
	if c.SameSite == "" {
		c.SameSite = "lax"
	}
}

// Validate checks the SameSite value and the Secure requirement of SameSite=None.
func (c *Config) Validate() error {
	mode, ok := sameSiteModes[strings.ToLower(c.SameSite)]
	if !ok {
		return fmt.Errorf("same_site must be one of lax, strict, none, default (got: %s)", c.SameSite)
	}
	if mode == http.SameSiteNoneMode && !c.Secure {
		return fmt.Errorf("same_site=none requires secure=true")
	}
	return nil
}

var sameSiteModes = map[string]http.SameSite{
	"default": http.SameSiteDefaultMode,
	"lax":     http.SameSiteLaxMode,
	"strict":  http.SameSiteStrictMode,
	"none":    http.SameSiteNoneMode,
}

// Transport writes, clears and reads the session cookie.
type Transport struct {
	cfg      Config
	sameSite http.SameSite
	now      func() time.Time
}

// New creates a Transport.
func New(cfg Config) *Transport {
	cfg.ApplyDefaults()
	mode, ok := sameSiteModes[strings.ToLower(cfg.SameSite)]
	if !ok {
		mode = http.SameSiteLaxMode
	}
	return &Transport{cfg: cfg, sameSite: mode, now: time.Now}
}

// Name returns the cookie name.
func (t *Transport) Name() string {
	return t.cfg.Alias
}

// Set writes the token cookie. Expires and Max-Age follow the claims' exp;
// without exp the cookie lives for the browser session.
func (t *Transport) Set(w http.ResponseWriter, token string, claims *jwt.Claims) {
	c := t.base()
	c.Value = token
	if claims != nil && claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		c.Expires = exp.UTC()
		c.MaxAge = int(exp.Sub(t.now()).Seconds())
		if c.MaxAge <= 0 {
			c.MaxAge = -1
		}
	}
	http.SetCookie(w, c)
}

// Clear expires the cookie on the client.
func (t *Transport) Clear(w http.ResponseWriter) {
	c := t.base()
	c.Value = ""
	c.Expires = time.Unix(0, 0).UTC()
	c.MaxAge = -1
	http.SetCookie(w, c)
}

// Read returns the cookie value. An empty value counts as absent.
func (t *Transport) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(t.cfg.Alias)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (t *Transport) base() *http.Cookie {
	return &http.Cookie{
		Name:     t.cfg.Alias,
		Path:     t.cfg.Path,
		Domain:   t.cfg.Domain,
		Secure:   t.cfg.Secure,
		HttpOnly: *t.cfg.HTTPOnly,
		SameSite: t.sameSite,
	}
}
