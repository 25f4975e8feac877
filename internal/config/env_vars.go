package config

import (
	"strings"
)

type EnvVars struct {
	Port    string `env:"PORT" envDefault:"3000"`
	AppName string `env:"APP_NAME" envDefault:"Wallet Admin"`
	Env     string `env:"ENV" envDefault:"DEV"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "3000"
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return e.Env
}

// IsDev is true for non-production builds, which get request diagnostics and route logging.
func (e EnvVars) IsDev() bool {
	return strings.EqualFold(e.GetEnv(), "DEV")
}
