package auth

import (
	"fmt"
	"strings"
)

// Supported message locales.
const (
	LocaleEN = "en"
	LocaleRU = "ru"
)

// Messages are the client-facing texts of the protocol. {username} and
// {reason} are substituted where they appear.
type Messages struct {
	UserNotRegistered  string `yaml:"user_not_registered" mapstructure:"user_not_registered"`
	WrongPassword      string `yaml:"wrong_password" mapstructure:"wrong_password"`
	InvalidCredentials string `yaml:"invalid_credentials" mapstructure:"invalid_credentials"`
	UserExists         string `yaml:"user_exists" mapstructure:"user_exists"`
	SomethingWentWrong string `yaml:"something_went_wrong" mapstructure:"something_went_wrong"`
	ReloginRequired    string `yaml:"relogin_required" mapstructure:"relogin_required"`
	InvalidToken       string `yaml:"invalid_token" mapstructure:"invalid_token"`
}

var presets = map[string]Messages{
	LocaleEN: {
		UserNotRegistered:  "User {username} is not registered",
		WrongPassword:      "Wrong password!",
		InvalidCredentials: "Invalid username or password!",
		UserExists:         "User {username} already exists!",
		SomethingWentWrong: "Something went wrong, please try again later.",
		ReloginRequired:    "We could not verify you, please log in again.",
		InvalidToken:       "invalid token error: {reason}",
	},
	LocaleRU: {
		UserNotRegistered:  "Пользователь {username} не зарегистрирован",
		WrongPassword:      "Вы не правильно ввели пароль!",
		InvalidCredentials: "Неверное имя пользователя или пароль!",
		UserExists:         "Пользователь {username} уже существует!",
		SomethingWentWrong: "Что то пошло не так, проверьте подключение к интернету!",
		ReloginRequired:    "Мы не смогли верифицировать вас, пожалуйста, зайдите в систему заного!",
		InvalidToken:       "invalid token error: {reason}",
	},
}

// Preset returns the built-in messages for a locale.
func Preset(locale string) (Messages, bool) {
	m, ok := presets[locale]
	return m, ok
}

// MessagesConfig selects a preset and optional per-message overrides.
type MessagesConfig struct {
	// Locale picks the preset (default: "en").
	Locale string `yaml:"locale" mapstructure:"locale"`

	// UniformLoginFailure answers both unknown user and wrong password with
	// InvalidCredentials so login cannot be used to probe usernames.
	UniformLoginFailure bool `yaml:"uniform_login_failure" mapstructure:"uniform_login_failure"`

	// Overrides replaces individual preset messages when non-empty.
	Overrides Messages `yaml:"overrides" mapstructure:"overrides"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *MessagesConfig) ApplyDefaults() {
	if c.Locale == "" {
		c.Locale = LocaleEN
	}
}

// Validate checks the locale.
func (c *MessagesConfig) Validate() error {
	if _, ok := presets[c.Locale]; !ok {
		return fmt.Errorf("unsupported locale %q (supported: %s, %s)", c.Locale, LocaleEN, LocaleRU)
	}
	return nil
}

// Resolve returns the preset with overrides applied.
func (c *MessagesConfig) Resolve() Messages {
	m, ok := presets[c.Locale]
	if !ok {
		m = presets[LocaleEN]
	}
	o := c.Overrides
	override(&m.UserNotRegistered, o.UserNotRegistered)
	override(&m.WrongPassword, o.WrongPassword)
	override(&m.InvalidCredentials, o.InvalidCredentials)
	override(&m.UserExists, o.UserExists)
	override(&m.SomethingWentWrong, o.SomethingWentWrong)
	override(&m.ReloginRequired, o.ReloginRequired)
	override(&m.InvalidToken, o.InvalidToken)
	return m
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func render(tmpl, username, reason string) string {
	return strings.NewReplacer("{username}", username, "{reason}", reason).Replace(tmpl)
}
