package lastfm

import (
	"github.com/bwmarrin/discordgo"
)

const (
	groupLastFM    = "lastfm"
	categoryLastFM = "📻 Last.fm"
)

func eventUserID(event *discordgo.InteractionCreate) string {
	if event.Member != nil {
		return event.Member.User.ID
	}
	if event.User != nil {
		return event.User.ID
	}
	return ""
}

// Commands in this package are registered in the discord package, they need
// access to the Last.fm client.
