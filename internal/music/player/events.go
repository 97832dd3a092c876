package player

import (
	"log"

	"fermata/internal/music/resolver"
)

type EventType int

const (
	EventTrackStart EventType = iota
	EventTrackEnd
	EventPlaybackError
)

func (t EventType) String() string {
	switch t {
	case EventTrackStart:
		return "track-start"
	case EventTrackEnd:
		return "track-end"
	case EventPlaybackError:
		return "playback-error"
	default:
		return "unknown"
	}
}

// Event is a playback lifecycle signal. Events for one guild are emitted in
// playback order from the session's playback goroutine.
type Event struct {
	Type      EventType
	GuildID   string
	ChannelID string // voice channel the session is connected to
	Track     resolver.Track
	Err       error
}

func (s *Session) emit(evt Event) {
	// End events cancel armed scrobble tasks and are never dropped. The
	// consumer keeps draining until every session is torn down, so this
	// send cannot block past shutdown.
	if evt.Type == EventTrackEnd {
		s.events <- evt
		return
	}

	select {
	case s.events <- evt:
	default:
		log.Printf("[Player] Event dropped (channel full) - %s guild=%s", evt.Type, evt.GuildID)
	}
}
