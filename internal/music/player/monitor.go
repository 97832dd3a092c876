package player

import (
	"context"
	"log"
	"time"
)

const (
	monitorPeriod = 5 * time.Second
	idleThreshold = 10 * time.Second
)

// Voice is the slice of Session the idle monitor operates on.
type Voice interface {
	GuildID() string
	ChannelID() string
	Connected() bool
	MarkEmpty(now time.Time) time.Time
	ClearEmpty()
	Disconnect() error
}

// ListenerSource counts non-bot members of a voice channel.
type ListenerSource interface {
	Listeners(guildID, channelID string) []string
}

// Monitor periodically sweeps every active voice session and disconnects
// the ones whose channel has been empty of listeners for the idle
// threshold. Level-triggered: elapsed wall-clock time is re-checked every
// tick, so missed ticks are tolerated.
type Monitor struct {
	sessions  func() []Voice
	listeners ListenerSource
	period    time.Duration
	threshold time.Duration
	now       func() time.Time
}

func NewMonitor(sessions func() []Voice, listeners ListenerSource) *Monitor {
	return &Monitor{
		sessions:  sessions,
		listeners: listeners,
		period:    monitorPeriod,
		threshold: idleThreshold,
		now:       time.Now,
	}
}

// Run sweeps on a fixed period until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Sweep inspects every connected session once.
func (m *Monitor) Sweep() {
	for _, s := range m.sessions() {
		if !s.Connected() {
			continue
		}

		if len(m.listeners.Listeners(s.GuildID(), s.ChannelID())) > 0 {
			s.ClearEmpty()
			continue
		}

		since := s.MarkEmpty(m.now())
		if m.now().Sub(since) < m.threshold {
			continue
		}

		log.Printf("[IdleMonitor] Voice channel empty for %s on guild %s, disconnecting", m.now().Sub(since).Round(time.Second), s.GuildID())
		if err := s.Disconnect(); err != nil {
			log.Printf("[IdleMonitor] Disconnect failed for guild %s: %v", s.GuildID(), err)
		}
	}
}
