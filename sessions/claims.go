package sessions

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the display-only facts readable from a JWT bearer token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenClaims decodes the token without verifying it. The console never
// enforces expiry; the wallet API answers 401 when a token is no longer good.
// Opaque (non-JWT) tokens report false.
func TokenClaims(token string) (Claims, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, false
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, false
	}

	var c Claims
	c.Subject, _ = mc.GetSubject()
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, true
}

// Expired reports whether the token's exp claim is in the past.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
