package music

import (
	"errors"
	"fmt"

	"fermata/internal/core"
	"fermata/internal/music/resolver"

	"github.com/bwmarrin/discordgo"
)

const (
	groupMusic    = "music"
	categoryMusic = "🎵 Music"
)

func trackLine(track resolver.Track) string {
	line := fmt.Sprintf("[%s](%s)", track.Title, track.URL)
	if track.Duration > 0 {
		line += " `" + resolver.FormatDuration(track.Duration) + "`"
	}
	return line
}

// resolveErrorReply maps a resolution failure to its user-facing message.
// Each failure mode gets its own reply, internal error text stays in logs.
func resolveErrorReply(err error) string {
	switch {
	case errors.Is(err, resolver.ErrNoResults):
		return "🎵 No results found."
	case errors.Is(err, resolver.ErrSpotifyNotConfigured):
		return "🎵 Spotify links are not supported on this bot."
	case errors.Is(err, resolver.ErrInvalidSpotifyLink):
		return "🎵 That doesn't look like a Spotify track link."
	default:
		return fmt.Sprintf("🎵 Error: failed to resolve track: %v", err)
	}
}

func nowPlayingEmbed(track resolver.Track) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🎶 Now Playing",
		Description: trackLine(track),
		Color:       core.EmbedColor,
	}
	if track.Author != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: track.Author}
	}
	return embed
}

// Commands in this package are registered in the discord package, they need
// access to the bot instance.
