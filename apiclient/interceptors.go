package apiclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/wallet-admin-console/internal/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const HeaderRequestID = "X-Request-ID"

// CredentialSource supplies the bearer token for the request's browser
// context and forgets it when the API rejects it.
type CredentialSource interface {
	CurrentToken(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

// Navigator receives the "go to the login screen" event raised after a 401.
type Navigator interface {
	NavigateToLogin(ctx context.Context)
}

type NavigatorFunc func(ctx context.Context)

func (f NavigatorFunc) NavigateToLogin(ctx context.Context) { f(ctx) }

// RequestInterceptor may modify a request before it is sent. Returning an
// error aborts the call.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor sees every outcome before the caller does. resp is nil
// whenever err is not.
type ResponseInterceptor func(ctx context.Context, resp *Response, err error) (*Response, error)

type noCredentials struct{}

func (noCredentials) CurrentToken(context.Context) (string, bool) { return "", false }
func (noCredentials) Clear(context.Context) error                 { return nil }

func bearerInterceptor(source CredentialSource) RequestInterceptor {
	return func(req *http.Request) error {
		token, ok := source.CurrentToken(req.Context())
		if !ok || token == "" {
			return nil
		}
		(&oauth2.Token{AccessToken: token}).SetAuthHeader(req)
		return nil
	}
}

func requestIDInterceptor(req *http.Request) error {
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}
	return nil
}

func debugRequestInterceptor(logger zerolog.Logger) RequestInterceptor {
	return func(req *http.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("request_id", req.Header.Get(HeaderRequestID)).
			Str("authorization", maskAuthorization(req.Header.Get("Authorization"))).
			Msg("api request")
		return nil
	}
}

func maskAuthorization(v string) string {
	if v == "" {
		return ""
	}
	return "Bearer ***"
}

// unauthorizedInterceptor forgets the session and asks for the login screen
// whenever the API answers 401. Everything else passes through.
func unauthorizedInterceptor(source CredentialSource, nav Navigator, logger zerolog.Logger) ResponseInterceptor {
	return func(ctx context.Context, resp *Response, err error) (*Response, error) {
		if !apperrors.Is(err, ErrUnauthorized) {
			return resp, err
		}
		if clearErr := source.Clear(ctx); clearErr != nil {
			logger.Error().Err(clearErr).Msg("clear credentials after 401")
		}
		nav.NavigateToLogin(ctx)
		return resp, err
	}
}
