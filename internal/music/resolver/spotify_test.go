package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSpotifyTrackLink(t *testing.T) {
	t.Parallel()

	require.True(t, IsSpotifyTrackLink("spotify:track:6rqhFgbbKwnb9MLmUQDhG6"))
	require.True(t, IsSpotifyTrackLink("https://open.spotify.com/track/6rqhFgbbKwnb9MLmUQDhG6"))
	require.False(t, IsSpotifyTrackLink("https://open.spotify.com/album/abc"))
	require.False(t, IsSpotifyTrackLink("https://youtu.be/dQw4w9WgXcQ"))
}

func TestExtractSpotifyTrackID(t *testing.T) {
	t.Parallel()

	id, err := ExtractSpotifyTrackID("spotify:track:6rqhFgbbKwnb9MLmUQDhG6")
	require.NoError(t, err)
	require.Equal(t, "6rqhFgbbKwnb9MLmUQDhG6", id)

	id, err = ExtractSpotifyTrackID("https://open.spotify.com/track/6rqhFgbbKwnb9MLmUQDhG6?si=xyz")
	require.NoError(t, err)
	require.Equal(t, "6rqhFgbbKwnb9MLmUQDhG6", id)

	_, err = ExtractSpotifyTrackID("https://open.spotify.com/playlist/whatever")
	require.ErrorIs(t, err, ErrInvalidSpotifyLink)

	_, err = ExtractSpotifyTrackID("spotify:track:")
	require.ErrorIs(t, err, ErrInvalidSpotifyLink)
}
