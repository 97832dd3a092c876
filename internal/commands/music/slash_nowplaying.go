package music

import (
	"fermata/internal/core"

	"github.com/bwmarrin/discordgo"
)

type NowPlayingCommand struct{}

func (c *NowPlayingCommand) Name() string        { return "nowplaying" }
func (c *NowPlayingCommand) Description() string { return "Show the currently playing track" }
func (c *NowPlayingCommand) Aliases() []string   { return []string{} }
func (c *NowPlayingCommand) Group() string       { return groupMusic }
func (c *NowPlayingCommand) Category() string    { return categoryMusic }
func (c *NowPlayingCommand) RequireAdmin() bool  { return false }

func (c *NowPlayingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *NowPlayingCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	sess, ok := sctx.Voice.GetSession(event.GuildID)
	if !ok {
		return core.RespondEphemeral(session, event, "🎵 Nothing is playing.")
	}

	current := sess.CurrentTrack()
	if current == nil {
		return core.RespondEphemeral(session, event, "🎵 Nothing is playing.")
	}

	return core.RespondEmbed(session, event, nowPlayingEmbed(*current))
}
