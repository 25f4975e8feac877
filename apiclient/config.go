package apiclient

import (
	"net/url"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/wallet-admin-console/internal/errors"
)

const (
	DefaultTimeout     = 2 * time.Minute
	DefaultContentType = "application/json"
)

// Config is fixed when the client is built. Changing it means building a new
// client.
type Config struct {
	BaseURL         string        // Root of the wallet API, e.g. http://localhost:8080
	Timeout         time.Duration // Per request, 0 means DefaultTimeout
	ContentType     string        // Sent on requests carrying a body
	WithCredentials bool          // Keep cookies the API sets in a client-side jar
	Debug           bool          // Log every request and response
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if strings.TrimSpace(c.ContentType) == "" {
		c.ContentType = DefaultContentType
	}
	return c
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(raw), "/"))
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrBadBaseURL, "%q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, apperrors.Wrapf(apperrors.ErrBadBaseURL, "%q", raw)
	}
	return u, nil
}
