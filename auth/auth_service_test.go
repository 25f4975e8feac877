package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/wallet-admin-console/apiclient"
	"github.com/jrsteele09/wallet-admin-console/auth"
	"github.com/jrsteele09/wallet-admin-console/sessions"
	"github.com/jrsteele09/wallet-admin-console/users"
	"github.com/jrsteele09/wallet-admin-console/walletapi"
	"github.com/jrsteele09/wallet-admin-console/walletapi/walletfake"
	"github.com/stretchr/testify/require"
)

type stubLoginAPI struct {
	resp  walletapi.LoginResponse
	err   error
	calls int
}

func (s *stubLoginAPI) Login(context.Context, walletapi.LoginRequest) (walletapi.LoginResponse, error) {
	s.calls++
	return s.resp, s.err
}

func newMemoryStore() *sessions.Store {
	return sessions.NewStore(sessions.NewMemoryTier(), sessions.NewMemoryTier())
}

func TestService_LoginEndToEnd(t *testing.T) {
	fake := walletfake.New()
	t.Cleanup(fake.Close)
	client, err := apiclient.New(apiclient.Config{BaseURL: fake.URL}, apiclient.WithCredentialSource(sessions.ContextSource{}))
	require.NoError(t, err)
	api := walletapi.New(client)
	svc := auth.NewService(api)

	for _, remember := range []bool{false, true} {
		ephemeral, remembered := sessions.NewMemoryTier(), sessions.NewMemoryTier()
		store := sessions.NewStore(ephemeral, remembered)
		ctx := sessions.NewContext(context.Background(), store)

		user, err := svc.Login(ctx, store, walletfake.Mobile, walletfake.MPIN, remember)
		require.NoError(t, err)
		require.Equal(t, walletfake.Admin.Name, user.Name)

		token, ok := store.CurrentToken(ctx)
		require.True(t, ok)
		require.Equal(t, "abc123", token)

		_, err = api.UserStats(ctx)
		require.NoError(t, err)
		require.Equal(t, "Bearer abc123", fake.LastAuthorization())

		// A new browser context keeps the remembered tier only.
		reopened := sessions.NewStore(sessions.NewMemoryTier(), remembered)
		require.Equal(t, remember, reopened.IsAuthenticated(ctx), "remember=%v", remember)
	}
}

func TestService_LoginRejections(t *testing.T) {
	ctx := context.Background()
	admin := &users.Profile{ID: 1, Name: "Admin"}

	tests := []struct {
		name    string
		mobile  string
		mpin    string
		api     *stubLoginAPI
		wantErr error
		calls   int
	}{
		{name: "bad mobile", mobile: "12345", mpin: "1234", api: &stubLoginAPI{}, wantErr: auth.ErrInvalidMobile},
		{name: "bad mpin", mobile: "9876543210", mpin: "12", api: &stubLoginAPI{}, wantErr: auth.ErrInvalidMPIN},
		{name: "error field", mobile: "9876543210", mpin: "1234", api: &stubLoginAPI{resp: walletapi.LoginResponse{Error: "Invalid MPIN"}}, wantErr: auth.ErrLoginRejected, calls: 1},
		{name: "error field wins over token", mobile: "9876543210", mpin: "1234", api: &stubLoginAPI{resp: walletapi.LoginResponse{Error: "locked", Token: "t", User: admin}}, wantErr: auth.ErrLoginRejected, calls: 1},
		{name: "missing token", mobile: "9876543210", mpin: "1234", api: &stubLoginAPI{resp: walletapi.LoginResponse{User: admin}}, wantErr: auth.ErrInvalidLoginResponse, calls: 1},
		{name: "missing user", mobile: "9876543210", mpin: "1234", api: &stubLoginAPI{resp: walletapi.LoginResponse{Token: "t"}}, wantErr: auth.ErrInvalidLoginResponse, calls: 1},
		{name: "empty user", mobile: "9876543210", mpin: "1234", api: &stubLoginAPI{resp: walletapi.LoginResponse{Token: "t", User: &users.Profile{}}}, wantErr: auth.ErrInvalidLoginResponse, calls: 1},
		{name: "api error message", mobile: "9876543210", mpin: "1234", api: &stubLoginAPI{err: &apiclient.APIError{StatusCode: 400, Message: "Account locked"}}, wantErr: auth.ErrLoginRejected, calls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			_, err := auth.NewService(tt.api).Login(ctx, store, tt.mobile, tt.mpin, true)
			require.ErrorIs(t, err, tt.wantErr)
			require.Equal(t, tt.calls, tt.api.calls)
			require.False(t, store.IsAuthenticated(ctx))
		})
	}

	t.Run("transport error passes through", func(t *testing.T) {
		boom := errors.New("connection refused")
		_, err := auth.NewService(&stubLoginAPI{err: boom}).Login(ctx, newMemoryStore(), "9876543210", "1234", false)
		require.ErrorIs(t, err, boom)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := auth.NewService(&stubLoginAPI{resp: walletapi.LoginResponse{Token: "abc123", User: &users.Profile{ID: 1}}})

	_, err := svc.Login(ctx, store, "9876543210", "1234", true)
	require.NoError(t, err)
	require.True(t, store.IsAuthenticated(ctx))

	require.NoError(t, svc.Logout(ctx, store))
	require.NoError(t, svc.Logout(ctx, store))
	require.False(t, store.IsAuthenticated(ctx))
}
