package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsDev() bool
}

// APIConfig describes the remote wallet API the console talks to.
type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
	GetAPIContentType() string
	GetAPIWithCredentials() bool
}

// SessionConfig controls the credential cookies held by each browser.
type SessionConfig interface {
	GetCookieSecret() string
	GetRememberMaxAge() time.Duration
	GetSecureCookies() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	API
	Session
	Cors
}

// New reads the configuration from the environment.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("[config New] parse env: %w", err)
	}
	return c, nil
}
