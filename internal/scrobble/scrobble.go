// Package scrobble turns playback lifecycle events into Last.fm profile
// updates for everyone listening in the voice channel.
package scrobble

import (
	"context"
	"time"
)

// maxScrobbleDelay caps how long after track start the scrobble fires.
const maxScrobbleDelay = 30 * time.Second

// Submission carries the track metadata sent to the profile service.
type Submission struct {
	Artist    string
	Track     string
	Album     string
	Duration  time.Duration
	StartedAt time.Time
}

// Service submits profile updates for a single user. Implementations decide
// whether a user is eligible (linked account, scrobbling enabled) and
// silently skip ineligible users.
type Service interface {
	UpdateNowPlaying(ctx context.Context, userID string, sub Submission) error
	Scrobble(ctx context.Context, userID string, sub Submission) error
}

// ListenerSource enumerates the non-bot members of a voice channel.
type ListenerSource interface {
	Listeners(guildID, channelID string) []string
}

// ScrobbleDelay is how long after track start the scrobble task fires:
// half the track length, capped at 30 seconds.
func ScrobbleDelay(length time.Duration) time.Duration {
	delay := length / 2
	if delay > maxScrobbleDelay {
		delay = maxScrobbleDelay
	}
	return delay
}
