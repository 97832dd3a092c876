package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLastFMConnectionRoundTrip(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetLastFMConnection("u1")
	require.ErrorIs(t, err, ErrNotConnected)

	require.NoError(t, store.SetLastFMConnection("u1", &LastFMConnection{
		Username:          "meatbag",
		SessionKey:        "sk123",
		ScrobblingEnabled: true,
	}))

	conn, err := store.GetLastFMConnection("u1")
	require.NoError(t, err)
	require.Equal(t, "meatbag", conn.Username)
	require.Equal(t, "sk123", conn.SessionKey)
	require.True(t, conn.ScrobblingEnabled)

	store.DeleteLastFMConnection("u1")
	_, err = store.GetLastFMConnection("u1")
	require.ErrorIs(t, err, ErrNotConnected)
}

func TestSetLastFMPendingTokenKeepsSession(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.SetLastFMConnection("u1", &LastFMConnection{
		Username:          "meatbag",
		SessionKey:        "sk123",
		ScrobblingEnabled: true,
	}))

	require.NoError(t, store.SetLastFMPendingToken("u1", "tok42"))

	conn, err := store.GetLastFMConnection("u1")
	require.NoError(t, err)
	require.Equal(t, "tok42", conn.PendingToken)
	require.Equal(t, "sk123", conn.SessionKey)
}

func TestToggleLastFMScrobbling(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.ToggleLastFMScrobbling("nobody")
	require.ErrorIs(t, err, ErrNotConnected)

	require.NoError(t, store.SetLastFMConnection("u1", &LastFMConnection{
		SessionKey:        "sk123",
		ScrobblingEnabled: true,
	}))

	enabled, err := store.ToggleLastFMScrobbling("u1")
	require.NoError(t, err)
	require.False(t, enabled)

	enabled, err = store.ToggleLastFMScrobbling("u1")
	require.NoError(t, err)
	require.True(t, enabled)
}

func TestDisabledGroups(t *testing.T) {
	store := newTestStorage(t)

	disabled, err := store.IsGroupDisabled("g1", "music")
	require.NoError(t, err)
	require.False(t, disabled)

	require.NoError(t, store.DisableGroup("g1", "music"))

	disabled, err = store.IsGroupDisabled("g1", "music")
	require.NoError(t, err)
	require.True(t, disabled)

	groups, err := store.GetDisabledGroups("g1")
	require.NoError(t, err)
	require.Equal(t, []string{"music"}, groups)

	require.NoError(t, store.EnableGroup("g1", "music"))
	disabled, err = store.IsGroupDisabled("g1", "music")
	require.NoError(t, err)
	require.False(t, disabled)
}
