package users_test

import (
	"testing"

	"github.com/jrsteele09/wallet-admin-console/users"
	"github.com/stretchr/testify/require"
)

func TestProfile_Valid(t *testing.T) {
	require.False(t, users.Profile{}.Valid())
	require.False(t, users.Profile{Name: "   "}.Valid())
	require.True(t, users.Profile{Name: "Admin"}.Valid())
	require.True(t, users.Profile{ID: 7}.Valid())
	require.True(t, users.Profile{Mobile: "9876543210"}.Valid())
}

func TestProfile_DisplayName(t *testing.T) {
	require.Equal(t, "Jane Doe", users.Profile{Name: " Jane Doe "}.DisplayName())
	require.Equal(t, "9876543210", users.Profile{Mobile: "9876543210"}.DisplayName())
	require.Equal(t, "Admin", users.Profile{}.DisplayName())
}

func TestProfile_Initials(t *testing.T) {
	require.Equal(t, "JD", users.Profile{Name: "jane doe smith"}.Initials())
	require.Equal(t, "A", users.Profile{Name: "Admin"}.Initials())
}
