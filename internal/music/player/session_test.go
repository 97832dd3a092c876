package player

import (
	"errors"
	"testing"
	"time"

	"fermata/internal/music/resolver"

	"github.com/stretchr/testify/require"
)

func TestEndPlaybackQueuesEndEventBeforeRelease(t *testing.T) {
	t.Parallel()

	events := make(chan Event, 4)
	s := New(nil, "g1", nil, events)
	track := resolver.Track{ID: "a", Title: "track a"}

	done := make(chan struct{})
	go s.endPlayback("c1", track, nil, done)
	<-done

	// A skip resumes here and starts the next track; the end event must
	// already be queued ahead of anything the next track emits.
	select {
	case evt := <-events:
		require.Equal(t, EventTrackEnd, evt.Type)
		require.Equal(t, "g1", evt.GuildID)
		require.Equal(t, "a", evt.Track.ID)
	default:
		t.Fatal("done released before the end event was queued")
	}
}

func TestEndPlaybackEmitsErrorBeforeEnd(t *testing.T) {
	t.Parallel()

	events := make(chan Event, 4)
	s := New(nil, "g1", nil, events)

	done := make(chan struct{})
	s.endPlayback("c1", resolver.Track{ID: "a"}, errors.New("stream cut"), done)

	require.Equal(t, EventPlaybackError, (<-events).Type)
	require.Equal(t, EventTrackEnd, (<-events).Type)
}

func TestEmitNeverDropsEndEvents(t *testing.T) {
	t.Parallel()

	events := make(chan Event, 1)
	s := New(nil, "g1", nil, events)

	s.emit(Event{Type: EventTrackStart, GuildID: "g1"})
	s.emit(Event{Type: EventTrackStart, GuildID: "g1"}) // buffer full, dropped

	go s.emit(Event{Type: EventTrackEnd, GuildID: "g1"})

	require.Equal(t, EventTrackStart, (<-events).Type)
	select {
	case evt := <-events:
		require.Equal(t, EventTrackEnd, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("end event was dropped")
	}
}
