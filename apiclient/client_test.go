package apiclient_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/wallet-admin-console/apiclient"
	"github.com/jrsteele09/wallet-admin-console/sessions"
	"github.com/jrsteele09/wallet-admin-console/users"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testAdmin = users.Profile{ID: 1, Name: "Admin", Mobile: "9876543210"}

type navRecorder struct {
	mu    sync.Mutex
	count int
}

func (n *navRecorder) NavigateToLogin(context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
}

func (n *navRecorder) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

type clientFixture struct {
	server *httptest.Server
	client *apiclient.Client
	store  *sessions.Store
	ctx    context.Context
	nav    *navRecorder
}

func setupClient(t *testing.T, handler http.HandlerFunc, cfg apiclient.Config, opts ...apiclient.Option) *clientFixture {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	f := &clientFixture{
		server: srv,
		store:  sessions.NewStore(sessions.NewMemoryTier(), sessions.NewMemoryTier()),
		nav:    &navRecorder{},
	}
	f.ctx = sessions.NewContext(context.Background(), f.store)

	cfg.BaseURL = srv.URL
	opts = append([]apiclient.Option{
		apiclient.WithCredentialSource(sessions.ContextSource{}),
		apiclient.WithNavigator(f.nav),
	}, opts...)
	c, err := apiclient.New(cfg, opts...)
	require.NoError(t, err)
	f.client = c
	return f
}

func TestNew_BaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "ftp://example.com", "http://"} {
		_, err := apiclient.New(apiclient.Config{BaseURL: raw})
		require.Error(t, err, raw)
	}

	c, err := apiclient.New(apiclient.Config{BaseURL: "http://localhost:8080/api/"})
	require.NoError(t, err)
	require.Equal(t, apiclient.DefaultTimeout, c.Config().Timeout)
	require.Equal(t, apiclient.DefaultContentType, c.Config().ContentType)
}

func TestClient_BearerAttachment(t *testing.T) {
	var gotAuth atomic.Value
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}, apiclient.Config{})

	t.Run("no token sends no header", func(t *testing.T) {
		_, err := f.client.Get(f.ctx, "/admin/users/stats", nil)
		require.NoError(t, err)
		require.Equal(t, "", gotAuth.Load())
	})

	t.Run("token attached as bearer", func(t *testing.T) {
		require.NoError(t, f.store.Persist(f.ctx, "abc123", testAdmin, false))
		_, err := f.client.Get(f.ctx, "/admin/users/stats", nil)
		require.NoError(t, err)
		require.Equal(t, "Bearer abc123", gotAuth.Load())
	})

	t.Run("request without a store is unauthenticated", func(t *testing.T) {
		_, err := f.client.Get(context.Background(), "/admin/users/stats", nil)
		require.NoError(t, err)
		require.Equal(t, "", gotAuth.Load())
	})
}

func TestClient_RequestShape(t *testing.T) {
	var got *http.Request
	var gotBody bytes.Buffer
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = gotBody.ReadFrom(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}, apiclient.Config{})

	t.Run("query and request id", func(t *testing.T) {
		resp, err := f.client.Get(f.ctx, "/admin/kyc", url.Values{"page": {"0"}, "status": {"PENDING"}})
		require.NoError(t, err)
		require.Equal(t, "/admin/kyc", got.URL.Path)
		require.Equal(t, "PENDING", got.URL.Query().Get("status"))
		require.NotEmpty(t, got.Header.Get(apiclient.HeaderRequestID))

		var out struct{ OK bool }
		require.NoError(t, resp.Decode(&out))
		require.True(t, out.OK)
	})

	t.Run("json body and caller request id kept", func(t *testing.T) {
		gotBody.Reset()
		_, err := f.client.Do(f.ctx, apiclient.Request{
			Method: http.MethodPost,
			Path:   "/admin/login",
			Header: http.Header{apiclient.HeaderRequestID: {"req-1"}},
			Body:   map[string]string{"mobile": "9876543210"},
		})
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, got.Method)
		require.Equal(t, apiclient.DefaultContentType, got.Header.Get("Content-Type"))
		require.Equal(t, "req-1", got.Header.Get(apiclient.HeaderRequestID))
		require.JSONEq(t, `{"mobile":"9876543210"}`, gotBody.String())
	})
}

func TestClient_UnauthorizedFromAnyScreen(t *testing.T) {
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	}, apiclient.Config{})

	for i, path := range []string{"/admin/users/stats", "/admin/kyc/stats"} {
		require.NoError(t, f.store.Persist(f.ctx, "abc123", testAdmin, i%2 == 0))

		resp, err := f.client.Get(f.ctx, path, nil)
		require.Nil(t, resp)
		require.ErrorIs(t, err, apiclient.ErrUnauthorized)
		require.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))

		var apiErr *apiclient.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "token expired", apiErr.Message)

		require.False(t, f.store.IsAuthenticated(f.ctx), path)
		_, ok := f.store.CurrentUser(f.ctx)
		require.False(t, ok)
		require.Equal(t, i+1, f.nav.calls())
	}
}

func TestClient_OtherFailuresPassThrough(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"boom"}`))
		}, apiclient.Config{})
		require.NoError(t, f.store.Persist(f.ctx, "abc123", testAdmin, false))

		_, err := f.client.Get(f.ctx, "/admin/transactions", nil)
		require.Error(t, err)
		require.NotErrorIs(t, err, apiclient.ErrUnauthorized)
		require.Equal(t, http.StatusInternalServerError, apiclient.StatusCode(err))
		require.Contains(t, err.Error(), "boom")
		require.True(t, f.store.IsAuthenticated(f.ctx))
		require.Zero(t, f.nav.calls())
	})

	t.Run("network failure", func(t *testing.T) {
		f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {}, apiclient.Config{})
		require.NoError(t, f.store.Persist(f.ctx, "abc123", testAdmin, false))
		f.server.Close()

		_, err := f.client.Get(f.ctx, "/admin/transactions", nil)
		require.Error(t, err)
		require.Zero(t, apiclient.StatusCode(err))
		require.True(t, f.store.IsAuthenticated(f.ctx))
		require.Zero(t, f.nav.calls())
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}, apiclient.Config{Timeout: 50 * time.Millisecond})
		defer close(release)
		require.NoError(t, f.store.Persist(f.ctx, "abc123", testAdmin, false))

		_, err := f.client.Get(f.ctx, "/admin/reports/generate", nil)
		require.Error(t, err)
		var netErr interface{ Timeout() bool }
		require.True(t, errors.As(err, &netErr))
		require.True(t, netErr.Timeout())
		require.True(t, f.store.IsAuthenticated(f.ctx))
		require.Zero(t, f.nav.calls())
	})
}

func TestClient_ResponseInterceptorSeesFailures(t *testing.T) {
	var seen []int
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}, apiclient.Config{}, apiclient.WithResponseInterceptor(func(ctx context.Context, resp *apiclient.Response, err error) (*apiclient.Response, error) {
		if err != nil {
			require.Nil(t, resp)
			seen = append(seen, apiclient.StatusCode(err))
		} else {
			seen = append(seen, resp.StatusCode)
		}
		return resp, err
	}))

	_, err := f.client.Get(f.ctx, "/ok", nil)
	require.NoError(t, err)
	_, err = f.client.Get(f.ctx, "/fail", nil)
	require.Error(t, err)
	_, err = f.client.Post(f.ctx, "/ok", func() {})
	require.Error(t, err)

	require.Equal(t, []int{http.StatusOK, http.StatusBadRequest, 0}, seen)
}

func TestClient_DebugLogMasksToken(t *testing.T) {
	var buf bytes.Buffer
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, apiclient.Config{Debug: true}, apiclient.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, f.store.Persist(f.ctx, "abc123", testAdmin, false))

	_, err := f.client.Get(f.ctx, "/admin/wallet-management/overview", nil)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "/admin/wallet-management/overview")
	require.Contains(t, buf.String(), "Bearer ***")
	require.NotContains(t, buf.String(), "abc123")
}

func TestClient_WithCredentialsKeepsAPICookies(t *testing.T) {
	var sawCookie atomic.Bool
	f := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("api_affinity"); err == nil {
			sawCookie.Store(true)
		}
		http.SetCookie(w, &http.Cookie{Name: "api_affinity", Value: "node-1", Path: "/"})
	}, apiclient.Config{WithCredentials: true})

	_, err := f.client.Get(f.ctx, "/one", nil)
	require.NoError(t, err)
	_, err = f.client.Get(f.ctx, "/two", nil)
	require.NoError(t, err)
	require.True(t, sawCookie.Load())
}
