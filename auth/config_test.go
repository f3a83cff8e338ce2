package auth

import (
	"strings"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.JWT.Algorithm != "RS256" {
		t.Errorf("expected RS256, got %s", cfg.JWT.Algorithm)
	}
	if cfg.Cookie.Alias != "JWT-ACCESS-TOKEN" {
		t.Errorf("expected JWT-ACCESS-TOKEN, got %s", cfg.Cookie.Alias)
	}
	if cfg.Password.Algorithm != "bcrypt" || cfg.Password.BcryptCost != 12 {
		t.Errorf("unexpected password defaults: %+v", cfg.Password)
	}
	if cfg.Messages.Locale != LocaleEN {
		t.Errorf("expected en locale, got %s", cfg.Messages.Locale)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
	if d := cfg.Describe(); !strings.Contains(d, "JWT(RS256)") || !strings.Contains(d, "cookie=JWT-ACCESS-TOKEN") {
		t.Errorf("unexpected description %q", d)
	}
}

func TestConfigValidatePrefixesSubsection(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.Messages.Locale = "de"

	err := cfg.Validate()
	if err == nil || !strings.HasPrefix(err.Error(), "auth.messages:") {
		t.Errorf("expected auth.messages error, got %v", err)
	}
}

func TestMessagesResolve(t *testing.T) {
	cfg := MessagesConfig{
		Locale:    LocaleRU,
		Overrides: Messages{WrongPassword: "Пароль неверный"},
	}
	m := cfg.Resolve()
	if m.WrongPassword != "Пароль неверный" {
		t.Errorf("override not applied: %q", m.WrongPassword)
	}
	if m.UserNotRegistered != "Пользователь {username} не зарегистрирован" {
		t.Errorf("preset not kept: %q", m.UserNotRegistered)
	}
	if got := render(m.UserNotRegistered, "lena", ""); got != "Пользователь lena не зарегистрирован" {
		t.Errorf("render() = %q", got)
	}
}

func TestPresets(t *testing.T) {
	for _, locale := range []string{LocaleEN, LocaleRU} {
		m, ok := Preset(locale)
		if !ok {
			t.Fatalf("missing preset %s", locale)
		}
		if m.InvalidToken != "invalid token error: {reason}" {
			t.Errorf("%s: unexpected invalid token template %q", locale, m.InvalidToken)
		}
	}
	if _, ok := Preset("fr"); ok {
		t.Error("unexpected fr preset")
	}
}
