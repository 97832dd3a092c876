package core

import "fermata/internal/music/player"

// BotVoice is the slice of the bot that commands use to reach voice sessions.
type BotVoice interface {
	GetOrCreateSession(guildID string) *player.Session
	GetSession(guildID string) (*player.Session, bool)
	FindUserVoiceState(guildID, userID string) (*VoiceState, error)
}

type VoiceState struct {
	ChannelID string
	UserID    string
}
