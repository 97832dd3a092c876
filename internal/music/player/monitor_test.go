package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeVoice struct {
	guildID      string
	channelID    string
	connected    bool
	emptySince   time.Time
	disconnected bool
}

func (f *fakeVoice) GuildID() string   { return f.guildID }
func (f *fakeVoice) ChannelID() string { return f.channelID }
func (f *fakeVoice) Connected() bool   { return f.connected }

func (f *fakeVoice) MarkEmpty(now time.Time) time.Time {
	if f.emptySince.IsZero() {
		f.emptySince = now
	}
	return f.emptySince
}

func (f *fakeVoice) ClearEmpty() { f.emptySince = time.Time{} }

func (f *fakeVoice) Disconnect() error {
	f.disconnected = true
	f.connected = false
	return nil
}

type staticListeners struct {
	byChannel map[string][]string
}

func (s *staticListeners) Listeners(_, channelID string) []string {
	return s.byChannel[channelID]
}

func newTestMonitor(v *fakeVoice, listeners ListenerSource) (*Monitor, *time.Time) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMonitor(func() []Voice { return []Voice{v} }, listeners)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestSweepIgnoresDisconnected(t *testing.T) {
	t.Parallel()

	v := &fakeVoice{guildID: "g1", connected: false}
	m, _ := newTestMonitor(v, &staticListeners{})

	m.Sweep()
	require.False(t, v.disconnected)
}

func TestSweepClearsTimerWhenListenersPresent(t *testing.T) {
	t.Parallel()

	v := &fakeVoice{guildID: "g1", channelID: "c1", connected: true}
	listeners := &staticListeners{byChannel: map[string][]string{"c1": {"alice"}}}
	m, now := newTestMonitor(v, listeners)

	v.MarkEmpty(now.Add(-time.Minute))
	m.Sweep()
	require.True(t, v.emptySince.IsZero())
	require.False(t, v.disconnected)
}

func TestSweepDisconnectsAfterThreshold(t *testing.T) {
	t.Parallel()

	v := &fakeVoice{guildID: "g1", channelID: "c1", connected: true}
	m, now := newTestMonitor(v, &staticListeners{})

	// First observation only starts the timer.
	m.Sweep()
	require.False(t, v.disconnected)

	// Below the threshold nothing happens yet.
	*now = now.Add(5 * time.Second)
	m.Sweep()
	require.False(t, v.disconnected)

	*now = now.Add(5 * time.Second)
	m.Sweep()
	require.True(t, v.disconnected)
}

func TestSweepRejoinRestartsTimer(t *testing.T) {
	t.Parallel()

	v := &fakeVoice{guildID: "g1", channelID: "c1", connected: true}
	listeners := &staticListeners{byChannel: map[string][]string{}}
	m, now := newTestMonitor(v, listeners)

	m.Sweep()
	*now = now.Add(8 * time.Second)

	// Someone joins just before the threshold.
	listeners.byChannel["c1"] = []string{"alice"}
	m.Sweep()
	require.False(t, v.disconnected)

	// They leave again: the elapsed time starts over.
	listeners.byChannel["c1"] = nil
	m.Sweep()
	*now = now.Add(8 * time.Second)
	m.Sweep()
	require.False(t, v.disconnected)

	*now = now.Add(2 * time.Second)
	m.Sweep()
	require.True(t, v.disconnected)
}
