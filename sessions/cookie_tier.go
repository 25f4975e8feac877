package sessions

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	// EphemeralCookieName holds the session-scoped tier; it has no Max-Age so
	// the browser drops it when the browsing context closes.
	EphemeralCookieName = "wac_session"
	// RememberedCookieName holds the opt-in tier that survives restarts.
	RememberedCookieName = "wac_remember"
)

// CookieOptions describes the cookie backing a tier.
type CookieOptions struct {
	Name   string
	MaxAge time.Duration // zero for a browser-session cookie
	Secure bool
	Path   string
}

var _ Tier = (*CookieTier)(nil)

// CookieTier stores a tier in a sealed cookie of the current request. It is
// bound to one request/response pair and reflects its own writes, so a value
// saved earlier in the request is visible to later reads.
type CookieTier struct {
	w      http.ResponseWriter
	r      *http.Request
	sealer *Sealer
	opts   CookieOptions

	mu      sync.Mutex
	written bool
	value   string
}

func NewCookieTier(w http.ResponseWriter, r *http.Request, sealer *Sealer, opts CookieOptions) *CookieTier {
	if opts.Path == "" {
		opts.Path = "/"
	}
	return &CookieTier{w: w, r: r, sealer: sealer, opts: opts}
}

// Ephemeral and Remembered build the two standard tiers for a request.
func Ephemeral(w http.ResponseWriter, r *http.Request, sealer *Sealer, secure bool) *CookieTier {
	return NewCookieTier(w, r, sealer, CookieOptions{Name: EphemeralCookieName, Secure: secure})
}

func Remembered(w http.ResponseWriter, r *http.Request, sealer *Sealer, secure bool, maxAge time.Duration) *CookieTier {
	return NewCookieTier(w, r, sealer, CookieOptions{Name: RememberedCookieName, Secure: secure, MaxAge: maxAge})
}

func (c *CookieTier) Load(_ context.Context) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.written {
		return c.value, c.value != "", nil
	}
	cookie, err := c.r.Cookie(c.opts.Name)
	if err != nil || cookie.Value == "" {
		return "", false, nil
	}
	plain, err := c.sealer.Open(c.opts.Name, cookie.Value)
	if err != nil {
		return "", false, fmt.Errorf("[sessions CookieTier] open %s: %w", c.opts.Name, err)
	}
	return string(plain), true, nil
}

func (c *CookieTier) Save(_ context.Context, value string) error {
	sealed, err := c.sealer.Seal(c.opts.Name, []byte(value))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	http.SetCookie(c.w, c.cookie(sealed, int(c.opts.MaxAge/time.Second)))
	c.written = true
	c.value = value
	return nil
}

func (c *CookieTier) Erase(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.written && c.value == "" {
		return nil // already erased during this request
	}
	if !c.written && !c.presentInRequest() {
		return nil
	}
	http.SetCookie(c.w, c.cookie("", -1))
	c.written = true
	c.value = ""
	return nil
}

func (c *CookieTier) presentInRequest() bool {
	_, err := c.r.Cookie(c.opts.Name)
	return err == nil
}

func (c *CookieTier) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.opts.Name,
		Value:    value,
		Path:     c.opts.Path,
		HttpOnly: true,
		Secure:   c.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
