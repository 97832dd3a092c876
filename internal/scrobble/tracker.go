package scrobble

import (
	"context"
	"log"
	"sync"
	"time"
)

const scrobbleCallTimeout = 10 * time.Second

// listeningSession is one guild's armed scrobble task: the listener set
// snapshotted at track start and the timer that fires the scrobble batch.
type listeningSession struct {
	guildID   string
	channelID string
	sub       Submission
	listeners map[string]time.Time // userID -> session start
	timer     *time.Timer
}

// Tracker maintains per-guild listening sessions. Starting a track cancels
// the guild's previous scrobble task before arming a new one, so at most
// one task is pending per guild at any instant.
type Tracker struct {
	svc       Service
	listeners ListenerSource

	mu       sync.Mutex
	sessions map[string]*listeningSession

	now       func() time.Time
	afterFunc func(d time.Duration, f func()) *time.Timer
}

func NewTracker(svc Service, listeners ListenerSource) *Tracker {
	return &Tracker{
		svc:       svc,
		listeners: listeners,
		sessions:  make(map[string]*listeningSession),
		now:       time.Now,
		afterFunc: time.AfterFunc,
	}
}

// TrackStarted snapshots the channel's current listeners and arms the
// guild's scrobble task with delay min(30s, length/2). Returns the
// snapshotted listener IDs so the caller can fan out now-playing updates.
func (t *Tracker) TrackStarted(guildID, channelID string, sub Submission) []string {
	now := t.now()

	snapshot := make(map[string]time.Time)
	ids := make([]string, 0)
	for _, userID := range t.listeners.Listeners(guildID, channelID) {
		snapshot[userID] = now
		ids = append(ids, userID)
	}

	sess := &listeningSession{
		guildID:   guildID,
		channelID: channelID,
		sub:       sub,
		listeners: snapshot,
	}

	t.mu.Lock()
	t.cancelLocked(guildID)
	sess.timer = t.afterFunc(ScrobbleDelay(sub.Duration), func() { t.fire(sess) })
	t.sessions[guildID] = sess
	t.mu.Unlock()

	log.Printf("[Scrobble] Armed scrobble task for guild %s: %q by %q, %d listener(s), delay %s",
		guildID, sub.Track, sub.Artist, len(ids), ScrobbleDelay(sub.Duration))
	return ids
}

// TrackEnded cancels the guild's pending scrobble task, if any. A partial
// listen below the delay threshold never counts.
func (t *Tracker) TrackEnded(guildID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked(guildID)
}

func (t *Tracker) cancelLocked(guildID string) {
	if sess, ok := t.sessions[guildID]; ok {
		sess.timer.Stop()
		delete(t.sessions, guildID)
	}
}

// fire runs at scrobble-task expiry: scrobble the track for every listener
// from the start snapshot who is still in the channel. Per-listener
// failures are independent and only logged.
func (t *Tracker) fire(sess *listeningSession) {
	t.mu.Lock()
	if t.sessions[sess.guildID] != sess {
		// Superseded or cancelled between timer fire and lock.
		t.mu.Unlock()
		return
	}
	delete(t.sessions, sess.guildID)
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), scrobbleCallTimeout)
	defer cancel()

	scrobbled := 0
	for _, userID := range t.listeners.Listeners(sess.guildID, sess.channelID) {
		startedAt, present := sess.listeners[userID]
		if !present {
			// Joined after track start, not eligible for this track.
			continue
		}

		sub := sess.sub
		sub.StartedAt = startedAt
		if err := t.svc.Scrobble(ctx, userID, sub); err != nil {
			log.Printf("[Scrobble] Scrobble failed for user %s on guild %s: %v", userID, sess.guildID, err)
			continue
		}
		scrobbled++
	}

	log.Printf("[Scrobble] Scrobbled %q for %d listener(s) on guild %s", sess.sub.Track, scrobbled, sess.guildID)
}

// Pending reports whether a scrobble task is armed for the guild.
func (t *Tracker) Pending(guildID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.sessions[guildID]
	return ok
}
