package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExtractYouTubeID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		id    string
		ok    bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://music.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://example.com/watch?v=dQw4w9WgXcQ", "", false},
		{"not a url", "", false},
		{"darude sandstorm", "", false},
	}

	for _, tc := range cases {
		id, ok := extractYouTubeID(tc.input)
		require.Equal(t, tc.ok, ok, tc.input)
		require.Equal(t, tc.id, id, tc.input)
	}
}

func TestResolveSpotifyLinkErrors(t *testing.T) {
	t.Parallel()

	// Spotify link without a configured client.
	r := New(nil)
	_, err := r.Resolve(context.Background(), "spotify:track:6rqhFgbbKwnb9MLmUQDhG6")
	require.ErrorIs(t, err, ErrSpotifyNotConfigured)

	// Malformed track link fails before any lookup.
	r = New(NewSpotifyClient("id", "secret"))
	_, err = r.Resolve(context.Background(), "https://open.spotify.com/track/")
	require.ErrorIs(t, err, ErrInvalidSpotifyLink)
}

func TestResolveEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := New(nil).Resolve(context.Background(), "   ")
	require.ErrorIs(t, err, ErrNoResults)
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0:05", FormatDuration(5*time.Second))
	require.Equal(t, "3:42", FormatDuration(3*time.Minute+42*time.Second))
	require.Equal(t, "1:02:03", FormatDuration(time.Hour+2*time.Minute+3*time.Second))
}
