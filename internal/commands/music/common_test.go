package music

import (
	"errors"
	"fmt"
	"testing"

	"fermata/internal/music/resolver"

	"github.com/stretchr/testify/require"
)

func TestResolveErrorReply(t *testing.T) {
	t.Parallel()

	require.Equal(t, "🎵 No results found.", resolveErrorReply(resolver.ErrNoResults))

	// Wrapped errors map to the same replies as bare ones.
	wrapped := fmt.Errorf("search %q: %w", "darude", resolver.ErrNoResults)
	require.Equal(t, "🎵 No results found.", resolveErrorReply(wrapped))

	require.Equal(t, "🎵 Spotify links are not supported on this bot.",
		resolveErrorReply(fmt.Errorf("normalize spotify link: %w", resolver.ErrSpotifyNotConfigured)))
	require.Equal(t, "🎵 That doesn't look like a Spotify track link.",
		resolveErrorReply(fmt.Errorf("normalize spotify link: %w", resolver.ErrInvalidSpotifyLink)))

	reply := resolveErrorReply(errors.New("kaboom"))
	require.Contains(t, reply, "failed to resolve track")
}
