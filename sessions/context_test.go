package sessions_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/wallet-admin-console/sessions"
	"github.com/stretchr/testify/require"
)

func TestContextSource(t *testing.T) {
	var src sessions.ContextSource

	t.Run("no store in context", func(t *testing.T) {
		ctx := context.Background()
		_, ok := src.CurrentToken(ctx)
		require.False(t, ok)
		require.NoError(t, src.Clear(ctx))
	})

	t.Run("store in context", func(t *testing.T) {
		f := setupStore(t)
		ctx := sessions.NewContext(context.Background(), f.store)
		require.NoError(t, f.store.Persist(ctx, "abc123", testAdmin, false))

		got, ok := sessions.FromContext(ctx)
		require.True(t, ok)
		require.Same(t, f.store, got)

		token, ok := src.CurrentToken(ctx)
		require.True(t, ok)
		require.Equal(t, "abc123", token)

		require.NoError(t, src.Clear(ctx))
		require.False(t, f.store.IsAuthenticated(ctx))
	})
}
