package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/wallet-admin-console/apiclient"
	apperrors "github.com/jrsteele09/wallet-admin-console/internal/errors"
	"github.com/jrsteele09/wallet-admin-console/users"
	"github.com/jrsteele09/wallet-admin-console/walletapi"
	"github.com/rs/zerolog/log"
)

// LoginAPI is the remote call that exchanges credentials for a token.
type LoginAPI interface {
	Login(ctx context.Context, req walletapi.LoginRequest) (walletapi.LoginResponse, error)
}

// SessionStore is where a successful login is recorded.
type SessionStore interface {
	Persist(ctx context.Context, token string, user users.Profile, remember bool) error
	Clear(ctx context.Context) error
}

// Service runs the console login and logout flows.
type Service struct {
	api LoginAPI
}

func NewService(api LoginAPI) *Service {
	return &Service{api: api}
}

// Login validates the form, asks the API for a token and stores the result.
// Nothing is written to the store unless the API returned both a token and a
// profile.
func (s *Service) Login(ctx context.Context, store SessionStore, mobile, mpin string, remember bool) (users.Profile, error) {
	mobile = strings.TrimSpace(mobile)
	if err := ValidateCredentials(mobile, mpin); err != nil {
		return users.Profile{}, err
	}

	resp, err := s.api.Login(ctx, walletapi.LoginRequest{Mobile: mobile, MPIN: mpin})
	if err != nil {
		var apiErr *apiclient.APIError
		if apperrors.As(err, &apiErr) && apiErr.Message != "" {
			return users.Profile{}, fmt.Errorf("%w: %s", ErrLoginRejected, apiErr.Message)
		}
		return users.Profile{}, fmt.Errorf("[auth Login] %w", err)
	}
	if msg := strings.TrimSpace(resp.Error); msg != "" {
		return users.Profile{}, fmt.Errorf("%w: %s", ErrLoginRejected, msg)
	}
	if strings.TrimSpace(resp.Token) == "" || resp.User == nil || !resp.User.Valid() {
		return users.Profile{}, ErrInvalidLoginResponse
	}

	if err := store.Persist(ctx, resp.Token, *resp.User, remember); err != nil {
		return users.Profile{}, fmt.Errorf("[auth Login] persist session: %w", err)
	}
	log.Info().Str("mobile", maskMobile(mobile)).Bool("remember", remember).Msg("admin logged in")
	return *resp.User, nil
}

// Logout forgets the session in this browser. The wallet API has no
// revocation endpoint so nothing is sent upstream.
func (s *Service) Logout(ctx context.Context, store SessionStore) error {
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("[auth Logout] %w", err)
	}
	return nil
}

func maskMobile(m string) string {
	if len(m) < 4 {
		return "****"
	}
	return strings.Repeat("*", len(m)-4) + m[len(m)-4:]
}
