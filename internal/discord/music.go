package discord

import (
	"fmt"

	"fermata/internal/core"
	"fermata/internal/music/player"
)

// GetOrCreateSession returns the guild's voice session, creating it on first use.
func (b *Bot) GetOrCreateSession(guildID string) *player.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.sessions[guildID]; ok {
		return s
	}

	s := player.New(b.dg, guildID, b.resolver, b.events)
	b.sessions[guildID] = s
	return s
}

// GetSession returns the guild's voice session if one exists.
func (b *Bot) GetSession(guildID string) (*player.Session, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.sessions[guildID]
	return s, ok
}

// voiceSessions snapshots all sessions for the idle monitor.
func (b *Bot) voiceSessions() []player.Voice {
	b.mu.RLock()
	defer b.mu.RUnlock()

	list := make([]player.Voice, 0, len(b.sessions))
	for _, s := range b.sessions {
		list = append(list, s)
	}
	return list
}

// FindUserVoiceState finds the voice state of a user
func (b *Bot) FindUserVoiceState(guildID, userID string) (*core.VoiceState, error) {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guild: %w", err)
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return &core.VoiceState{
				ChannelID: vs.ChannelID,
				UserID:    vs.UserID,
			}, nil
		}
	}
	return nil, fmt.Errorf("user not in any voice channel")
}

// Listeners returns the non-bot members currently in a voice channel.
func (b *Bot) Listeners(guildID, channelID string) []string {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return nil
	}

	var ids []string
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != channelID {
			continue
		}
		if vs.UserID == b.dg.State.User.ID {
			continue
		}
		if member, err := b.dg.State.Member(guildID, vs.UserID); err == nil && member.User != nil && member.User.Bot {
			continue
		}
		ids = append(ids, vs.UserID)
	}
	return ids
}
