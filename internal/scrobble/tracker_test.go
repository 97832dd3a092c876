package scrobble

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeService struct {
	mu        sync.Mutex
	scrobbles []string
	nowplays  []string
}

func (f *fakeService) UpdateNowPlaying(_ context.Context, userID string, _ Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nowplays = append(f.nowplays, userID)
	return nil
}

func (f *fakeService) Scrobble(_ context.Context, userID string, _ Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrobbles = append(f.scrobbles, userID)
	return nil
}

func (f *fakeService) scrobbled() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.scrobbles...)
}

type fakeListeners struct {
	mu  sync.Mutex
	ids []string
}

func (f *fakeListeners) set(ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = ids
}

func (f *fakeListeners) Listeners(_, _ string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...)
}

// manualTimers intercepts AfterFunc so tests control when tasks fire.
type manualTimers struct {
	mu    sync.Mutex
	funcs []func()
	delay time.Duration
}

func (m *manualTimers) afterFunc(d time.Duration, f func()) *time.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	m.funcs = append(m.funcs, f)
	// Never fires on its own.
	return time.NewTimer(time.Hour)
}

func (m *manualTimers) fire(i int) {
	m.mu.Lock()
	f := m.funcs[i]
	m.mu.Unlock()
	f()
}

func newTestTracker(svc Service, listeners ListenerSource) (*Tracker, *manualTimers) {
	timers := &manualTimers{}
	tr := NewTracker(svc, listeners)
	tr.afterFunc = timers.afterFunc
	return tr, timers
}

func TestScrobbleDelay(t *testing.T) {
	t.Parallel()

	require.Equal(t, 10*time.Second, ScrobbleDelay(20*time.Second))
	require.Equal(t, 30*time.Second, ScrobbleDelay(60*time.Second))
	require.Equal(t, 30*time.Second, ScrobbleDelay(10*time.Minute))
}

func TestTrackStartedSnapshotsListeners(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	listeners := &fakeListeners{}
	listeners.set("alice", "bob")

	tr, timers := newTestTracker(svc, listeners)

	ids := tr.TrackStarted("g1", "c1", Submission{Track: "song", Duration: 3 * time.Minute})
	require.ElementsMatch(t, []string{"alice", "bob"}, ids)
	require.Equal(t, 30*time.Second, timers.delay)
	require.True(t, tr.Pending("g1"))

	timers.fire(0)
	require.ElementsMatch(t, []string{"alice", "bob"}, svc.scrobbled())
	require.False(t, tr.Pending("g1"))
}

func TestScrobbleRequiresPresenceAtStartAndExpiry(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	listeners := &fakeListeners{}
	listeners.set("alice", "bob")

	tr, timers := newTestTracker(svc, listeners)
	tr.TrackStarted("g1", "c1", Submission{Track: "song", Duration: 3 * time.Minute})

	// bob leaves, carol joins mid-track. Only alice is in both the start
	// snapshot and the channel at expiry.
	listeners.set("alice", "carol")

	timers.fire(0)
	require.Equal(t, []string{"alice"}, svc.scrobbled())
}

func TestNewTrackCancelsPreviousTask(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	listeners := &fakeListeners{}
	listeners.set("alice")

	tr, timers := newTestTracker(svc, listeners)
	tr.TrackStarted("g1", "c1", Submission{Track: "first", Duration: 3 * time.Minute})
	tr.TrackStarted("g1", "c1", Submission{Track: "second", Duration: 3 * time.Minute})

	// The first task was superseded, firing its timer is a no-op.
	timers.fire(0)
	require.Empty(t, svc.scrobbled())

	timers.fire(1)
	require.Equal(t, []string{"alice"}, svc.scrobbled())
}

func TestTrackEndedCancelsTask(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	listeners := &fakeListeners{}
	listeners.set("alice")

	tr, timers := newTestTracker(svc, listeners)
	tr.TrackStarted("g1", "c1", Submission{Track: "song", Duration: time.Minute})
	tr.TrackEnded("g1")
	require.False(t, tr.Pending("g1"))

	timers.fire(0)
	require.Empty(t, svc.scrobbled())
}

func TestTasksAreIndependentPerGuild(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	listeners := &fakeListeners{}
	listeners.set("alice")

	tr, timers := newTestTracker(svc, listeners)
	tr.TrackStarted("g1", "c1", Submission{Track: "song", Duration: time.Minute})
	tr.TrackStarted("g2", "c2", Submission{Track: "song", Duration: time.Minute})

	tr.TrackEnded("g1")

	timers.fire(1)
	require.Equal(t, []string{"alice"}, svc.scrobbled())
}
