package player

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"fermata/internal/music/queue"
	"fermata/internal/music/resolver"
	"fermata/internal/music/stream"
	"fermata/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
)

const voiceConnectAttempts = 3

var (
	ErrVoiceConnect = errors.New("failed to connect to voice channel")
	ErrNotConnected = errors.New("not connected to a voice channel")
)

// MessageRef points at the most recent now-playing status message, used for
// edit-in-place updates. Not ownership: the message may be deleted by anyone.
type MessageRef struct {
	ChannelID string
	MessageID string
}

// Session owns the voice connection for one guild: the queue, the current
// track, and the empty-channel bookkeeping the idle monitor relies on.
// At most one Session exists per guild at any time.
type Session struct {
	dg       *discordgo.Session
	guildID  string
	resolver *resolver.Resolver
	queue    *queue.Queue
	events   chan<- Event

	mu            sync.Mutex
	channelID     string
	vc            *discordgo.VoiceConnection
	current       *resolver.Track
	nowPlayingMsg *MessageRef
	emptySince    time.Time

	stopPlayback chan struct{}
	playbackDone chan struct{}
	stopOnce     *sync.Once
}

// New creates a Session for a guild. Events are emitted on the shared
// events channel; the caller owns consumption.
func New(dg *discordgo.Session, guildID string, res *resolver.Resolver, events chan<- Event) *Session {
	return &Session{
		dg:       dg,
		guildID:  guildID,
		resolver: res,
		queue:    queue.New(),
		events:   events,
	}
}

func (s *Session) GuildID() string { return s.guildID }

func (s *Session) Queue() *queue.Queue { return s.queue }

func (s *Session) ChannelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channelID
}

func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vc != nil
}

// CurrentTrack returns the currently playing track, or nil.
func (s *Session) CurrentTrack() *resolver.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	track := *s.current
	return &track
}

// Connect joins the given voice channel, retrying a bounded number of times
// with short backoff. Already being in the channel is a no-op; being in a
// different channel of the same guild moves the connection. On failure no
// connection is retained.
func (s *Session) Connect(ctx context.Context, channelID string) error {
	s.mu.Lock()
	if s.vc != nil && s.channelID == channelID {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	var vc *discordgo.VoiceConnection
	err := retrylimit.WithRetryConfig(ctx, func() error {
		var err error
		vc, err = s.dg.ChannelVoiceJoin(s.guildID, channelID, false, true)
		return err
	}, nil, retrylimit.RetryConfig{
		MaxAttempts:  voiceConnectAttempts,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	})
	if err != nil {
		log.Printf("[Player] Voice connect failed for guild %s after %d attempts: %v", s.guildID, voiceConnectAttempts, err)
		return fmt.Errorf("%w: %v", ErrVoiceConnect, err)
	}

	s.mu.Lock()
	s.vc = vc
	s.channelID = channelID
	s.emptySince = time.Time{}
	s.mu.Unlock()

	log.Printf("[Player] Joined voice channel %s on guild %s", channelID, s.guildID)
	return nil
}

// Play replaces current playback with the given track immediately.
func (s *Session) Play(ctx context.Context, track resolver.Track) error {
	s.stopCurrent()

	s.mu.Lock()
	vc := s.vc
	channelID := s.channelID
	s.mu.Unlock()
	if vc == nil {
		return ErrNotConnected
	}

	audioURL, err := s.resolver.StreamURL(ctx, &track)
	if err != nil {
		return fmt.Errorf("open stream for %q: %w", track.Title, err)
	}

	pcm, cleanup, err := stream.OpenPCM(audioURL)
	if err != nil {
		return fmt.Errorf("open stream for %q: %w", track.Title, err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})

	s.mu.Lock()
	s.current = &track
	s.stopPlayback = stop
	s.playbackDone = done
	s.stopOnce = new(sync.Once)
	s.mu.Unlock()

	log.Printf("[Player] Starting track %q on guild %s", track.Title, s.guildID)

	go func() {
		defer cleanup()

		s.emit(Event{Type: EventTrackStart, GuildID: s.guildID, ChannelID: channelID, Track: track})

		playErr := stream.StreamToDiscord(pcm, stop, vc)
		s.endPlayback(channelID, track, playErr, done)

		select {
		case <-stop:
			// Stopped externally; whoever stopped decides what plays next.
			return
		default:
		}

		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()

		if playErr == nil {
			s.advance(track)
		}
	}()

	return nil
}

// endPlayback emits the end-of-track events and only then releases waiters
// on done. Skip and stop wait on done before starting the next track, so
// the end event is always queued ahead of the next track's start event.
func (s *Session) endPlayback(channelID string, track resolver.Track, playErr error, done chan struct{}) {
	if playErr != nil {
		// Logging-only parity: a broken stream stops this guild's
		// playback, no auto-skip.
		log.Printf("[Player] Playback error for track %q: %v", track.Title, playErr)
		s.emit(Event{Type: EventPlaybackError, GuildID: s.guildID, ChannelID: channelID, Track: track, Err: playErr})
	}
	s.emit(Event{Type: EventTrackEnd, GuildID: s.guildID, ChannelID: channelID, Track: track})
	close(done)
}

// advance picks the next track after a natural track end, honoring the
// guild's loop mode.
func (s *Session) advance(finished resolver.Track) {
	next, err := s.queue.NextAfter(finished)
	if errors.Is(err, queue.ErrQueueEmpty) {
		log.Printf("[Player] Queue empty on guild %s, playback idle", s.guildID)
		return
	}

	if err := s.Play(context.Background(), next); err != nil {
		log.Printf("[Player] Failed to play next track %q on guild %s: %v", next.Title, s.guildID, err)
	}
}

// Skip stops the current track and plays the queue head regardless of loop
// mode. With an empty queue the session goes idle but stays connected.
func (s *Session) Skip(ctx context.Context) (*resolver.Track, error) {
	s.stopCurrent()

	next, err := s.queue.Next()
	if errors.Is(err, queue.ErrQueueEmpty) {
		return nil, queue.ErrQueueEmpty
	}

	if err := s.Play(ctx, next); err != nil {
		return nil, err
	}
	return &next, nil
}

// stopCurrent halts the playback goroutine, if any, and waits for it.
func (s *Session) stopCurrent() {
	s.mu.Lock()
	stop, done, once := s.stopPlayback, s.playbackDone, s.stopOnce
	s.current = nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	once.Do(func() { close(stop) })
	<-done
}

// Disconnect releases the voice connection and clears all per-guild derived
// state: queue, loop mode, now-playing reference, idle timer. This is the
// canonical cleanup point.
func (s *Session) Disconnect() error {
	s.stopCurrent()

	s.mu.Lock()
	vc := s.vc
	s.vc = nil
	s.channelID = ""
	s.nowPlayingMsg = nil
	s.emptySince = time.Time{}
	s.mu.Unlock()

	s.queue.Clear()

	if vc == nil {
		return nil
	}
	log.Printf("[Player] Disconnecting voice session on guild %s", s.guildID)
	return vc.Disconnect()
}

// SetNowPlayingMessage records the latest status message for edit-in-place.
func (s *Session) SetNowPlayingMessage(ref *MessageRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowPlayingMsg = ref
}

func (s *Session) NowPlayingMessage() *MessageRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nowPlayingMsg
}

// MarkEmpty records the first moment the voice channel was observed with
// zero listeners and returns it. Repeated calls keep the original timestamp.
func (s *Session) MarkEmpty(now time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emptySince.IsZero() {
		s.emptySince = now
	}
	return s.emptySince
}

// ClearEmpty resets the idle timer; called whenever a listener is present.
func (s *Session) ClearEmpty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emptySince = time.Time{}
}
