package sessions

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/wallet-admin-console/internal/errors"
	"github.com/jrsteele09/wallet-admin-console/users"
)

var (
	ErrEmptyToken       = apperrors.ErrEmptyToken
	ErrInvalidProfile   = apperrors.ErrInvalidProfile
	ErrMalformedSession = apperrors.ErrMalformedSession
)

// PersistenceTier says which storage lifetime holds a session.
type PersistenceTier int

const (
	// TierEphemeral is cleared when the browser context closes
	TierEphemeral PersistenceTier = iota
	// TierRemembered survives browser restarts ("remember this device")
	TierRemembered
)

func (t PersistenceTier) String() string {
	switch t {
	case TierEphemeral:
		return "ephemeral"
	case TierRemembered:
		return "remembered"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Session is the logged-in admin as seen by the console.
type Session struct {
	Token    string          // Opaque bearer credential issued by the wallet API
	User     users.Profile   // Profile returned alongside the token
	IssuedAt time.Time       // Recorded at login, display only
	Tier     PersistenceTier // Tier the session was read from
}

// record is the single value written to a tier. Token, user and login time
// always travel together so a tier never holds half a session.
type record struct {
	Token    string        `json:"token"`
	User     users.Profile `json:"user"`
	IssuedAt int64         `json:"issuedAt"` // unix milliseconds
}

func encodeRecord(token string, user users.Profile, issuedAt time.Time) (string, error) {
	b, err := json.Marshal(record{
		Token:    token,
		User:     user,
		IssuedAt: issuedAt.UnixMilli(),
	})
	if err != nil {
		return "", fmt.Errorf("[sessions encodeRecord] marshal: %w", err)
	}
	return string(b), nil
}

func decodeRecord(value string) (Session, error) {
	var rec record
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if strings.TrimSpace(rec.Token) == "" || !rec.User.Valid() {
		return Session{}, ErrMalformedSession
	}
	s := Session{Token: rec.Token, User: rec.User}
	if rec.IssuedAt > 0 {
		s.IssuedAt = time.UnixMilli(rec.IssuedAt)
	}
	return s, nil
}
