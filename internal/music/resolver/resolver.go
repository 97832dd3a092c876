package resolver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	youtube "github.com/kkdai/youtube/v2"
)

var (
	ErrNoResults            = errors.New("no results found")
	ErrSpotifyNotConfigured = errors.New("spotify is not configured")
)

// Resolver turns a free-text query or a music-service link into a single
// best-match Track (first result policy). Spotify links are normalized to a
// "title artist" search string first, never streamed directly.
type Resolver struct {
	yt      *youtube.Client
	search  *SearchClient
	spotify *SpotifyClient
}

// New creates a Resolver. spotify may be nil, in which case Spotify links
// are rejected with ErrSpotifyNotConfigured.
func New(spotify *SpotifyClient) *Resolver {
	return &Resolver{
		yt:      &youtube.Client{},
		search:  NewSearchClient(),
		spotify: spotify,
	}
}

// Resolve returns the best-match track for the input, or ErrNoResults.
func (r *Resolver) Resolve(ctx context.Context, input string) (*Track, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrNoResults
	}

	if IsSpotifyTrackLink(input) {
		if r.spotify == nil {
			return nil, ErrSpotifyNotConfigured
		}
		query, err := r.spotify.SearchQuery(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("normalize spotify link: %w", err)
		}
		log.Printf("[Resolver] Spotify link normalized to search: %q", query)
		return r.resolveSearch(ctx, query)
	}

	if videoID, ok := extractYouTubeID(input); ok {
		return r.resolveVideo(ctx, videoID)
	}

	return r.resolveSearch(ctx, input)
}

func (r *Resolver) resolveSearch(ctx context.Context, query string) (*Track, error) {
	videoID, err := r.search.FirstVideoID(ctx, query)
	if err != nil {
		if errors.Is(err, ErrNoResults) {
			return nil, ErrNoResults
		}
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return r.resolveVideo(ctx, videoID)
}

func (r *Resolver) resolveVideo(ctx context.Context, videoID string) (*Track, error) {
	video, err := r.yt.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch video %s: %w", videoID, err)
	}

	return &Track{
		ID:       video.ID,
		Title:    video.Title,
		Author:   video.Author,
		Duration: video.Duration,
		URL:      "https://www.youtube.com/watch?v=" + video.ID,
	}, nil
}

// StreamURL returns a direct audio stream URL for a previously resolved track.
func (r *Resolver) StreamURL(ctx context.Context, track *Track) (string, error) {
	video, err := r.yt.GetVideoContext(ctx, track.ID)
	if err != nil {
		return "", fmt.Errorf("fetch video %s: %w", track.ID, err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return "", fmt.Errorf("no audio formats for video %s", track.ID)
	}

	link, err := r.yt.GetStreamURLContext(ctx, video, &formats[0])
	if err != nil {
		return "", fmt.Errorf("get stream URL: %w", err)
	}
	return link, nil
}

// extractYouTubeID recognizes watch links, short links and shorts.
func extractYouTubeID(input string) (string, bool) {
	u, err := url.Parse(input)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return id, true
		}
		if rest, ok := strings.CutPrefix(u.Path, "/shorts/"); ok && rest != "" {
			return rest, true
		}
	case "youtu.be":
		if id := strings.TrimPrefix(u.Path, "/"); id != "" {
			return id, true
		}
	}
	return "", false
}

// FormatDuration renders a track length as m:ss or h:mm:ss.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
