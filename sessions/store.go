package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/wallet-admin-console/users"
	"github.com/rs/zerolog/log"
)

// Store is the single source of truth for "is there a logged-in admin, and
// who are they" within one browser context. Reads prefer the ephemeral tier
// and fall back to the remembered tier.
type Store struct {
	mu         sync.Mutex
	ephemeral  Tier
	remembered Tier
	now        func() time.Time
}

type Option func(*Store)

// WithClock overrides the clock used to stamp IssuedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(ephemeral, remembered Tier, opts ...Option) *Store {
	s := &Store{
		ephemeral:  ephemeral,
		remembered: remembered,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Persist writes the session to the remembered tier when remember is set,
// otherwise to the ephemeral tier. The other tier is left untouched.
func (s *Store) Persist(ctx context.Context, token string, user users.Profile, remember bool) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}
	if !user.Valid() {
		return ErrInvalidProfile
	}

	tier, target := TierEphemeral, s.ephemeral
	if remember {
		tier, target = TierRemembered, s.remembered
	}

	value, err := encodeRecord(token, user, s.now())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := target.Save(ctx, value); err != nil {
		return fmt.Errorf("[sessions Persist] save %s tier: %w", tier, err)
	}
	return nil
}

// Current returns the authoritative session, if any.
func (s *Store) Current(ctx context.Context) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx)
}

func (s *Store) current(ctx context.Context) (Session, bool) {
	tiers := []struct {
		tier  PersistenceTier
		store Tier
	}{
		{TierEphemeral, s.ephemeral},
		{TierRemembered, s.remembered},
	}

	for _, t := range tiers {
		value, ok, err := t.store.Load(ctx)
		if err != nil {
			log.Debug().Err(err).Str("tier", t.tier.String()).Msg("Unreadable credential tier treated as empty")
			continue
		}
		if !ok {
			continue
		}
		sess, err := decodeRecord(value)
		if err != nil {
			log.Debug().Err(err).Str("tier", t.tier.String()).Msg("Malformed credential record treated as empty")
			continue
		}
		sess.Tier = t.tier
		return sess, true
	}
	return Session{}, false
}

// CurrentToken returns the bearer token; absence is the normal state for
// visitors who have not logged in.
func (s *Store) CurrentToken(ctx context.Context) (string, bool) {
	sess, ok := s.Current(ctx)
	if !ok {
		return "", false
	}
	return sess.Token, true
}

func (s *Store) CurrentUser(ctx context.Context) (users.Profile, bool) {
	sess, ok := s.Current(ctx)
	if !ok {
		return users.Profile{}, false
	}
	return sess.User, true
}

// LoginTime returns when the current session was created.
func (s *Store) LoginTime(ctx context.Context) (time.Time, bool) {
	sess, ok := s.Current(ctx)
	if !ok || sess.IssuedAt.IsZero() {
		return time.Time{}, false
	}
	return sess.IssuedAt, true
}

// IsAuthenticated is derived from CurrentToken and never stored separately.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.CurrentToken(ctx)
	return ok
}

// Clear erases both tiers. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if err := s.ephemeral.Erase(ctx); err != nil {
		errs = append(errs, fmt.Errorf("erase %s tier: %w", TierEphemeral, err))
	}
	if err := s.remembered.Erase(ctx); err != nil {
		errs = append(errs, fmt.Errorf("erase %s tier: %w", TierRemembered, err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("[sessions Clear] %w", errors.Join(errs...))
	}
	return nil
}
