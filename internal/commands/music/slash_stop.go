package music

import (
	"fmt"

	"fermata/internal/core"

	"github.com/bwmarrin/discordgo"
)

type StopCommand struct{}

func (c *StopCommand) Name() string        { return "stop" }
func (c *StopCommand) Description() string { return "Stop playback, clear the queue and leave voice" }
func (c *StopCommand) Aliases() []string   { return []string{} }
func (c *StopCommand) Group() string       { return groupMusic }
func (c *StopCommand) Category() string    { return categoryMusic }
func (c *StopCommand) RequireAdmin() bool  { return false }

func (c *StopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *StopCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	sess, ok := sctx.Voice.GetSession(event.GuildID)
	if !ok || !sess.Connected() {
		return core.RespondEphemeral(session, event, "🎵 Not connected to a voice channel.")
	}

	if err := sess.Disconnect(); err != nil {
		return core.RespondEphemeral(session, event, fmt.Sprintf("🎵 Error: %v", err))
	}

	return core.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Description: "⏹️ Stopped playback and left the voice channel.",
		Color:       core.EmbedColor,
	})
}
