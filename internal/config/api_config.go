package config

import "time"

const (
	DefaultAPITimeout     = 2 * time.Minute // report generation is slow
	DefaultAPIContentType = "application/json"
)

type API struct {
	BaseURL         string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	Timeout         time.Duration `env:"API_TIMEOUT" envDefault:"2m"`
	ContentType     string        `env:"API_CONTENT_TYPE" envDefault:"application/json"`
	WithCredentials bool          `env:"API_WITH_CREDENTIALS" envDefault:"false"`
}

var _ APIConfig = API{}

func (a API) GetAPIBaseURL() string {
	return a.BaseURL
}

func (a API) GetAPITimeout() time.Duration {
	if a.Timeout <= 0 {
		return DefaultAPITimeout
	}
	return a.Timeout
}

func (a API) GetAPIContentType() string {
	if a.ContentType == "" {
		return DefaultAPIContentType
	}
	return a.ContentType
}

func (a API) GetAPIWithCredentials() bool {
	return a.WithCredentials
}
