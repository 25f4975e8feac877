package config

import "time"

type Session struct {
	CookieSecret   string        `env:"COOKIE_SECRET"`
	RememberMaxAge time.Duration `env:"REMEMBER_MAX_AGE" envDefault:"720h"` // 30 days
	SecureCookies  bool          `env:"SECURE_COOKIES" envDefault:"false"`
}

var _ SessionConfig = Session{}

// GetCookieSecret returns the key material used to seal credential cookies.
// An empty secret makes the server generate a per-process key.
func (s Session) GetCookieSecret() string {
	return s.CookieSecret
}

func (s Session) GetRememberMaxAge() time.Duration {
	if s.RememberMaxAge <= 0 {
		return 30 * 24 * time.Hour
	}
	return s.RememberMaxAge
}

func (s Session) GetSecureCookies() bool {
	return s.SecureCookies
}
