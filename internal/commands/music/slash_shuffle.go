package music

import (
	"fmt"

	"fermata/internal/core"

	"github.com/bwmarrin/discordgo"
)

type ShuffleCommand struct{}

func (c *ShuffleCommand) Name() string        { return "shuffle" }
func (c *ShuffleCommand) Description() string { return "Shuffle the playback queue" }
func (c *ShuffleCommand) Aliases() []string   { return []string{} }
func (c *ShuffleCommand) Group() string       { return groupMusic }
func (c *ShuffleCommand) Category() string    { return categoryMusic }
func (c *ShuffleCommand) RequireAdmin() bool  { return false }

func (c *ShuffleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ShuffleCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	sess, ok := sctx.Voice.GetSession(event.GuildID)
	if !ok || sess.Queue().Len() == 0 {
		return core.RespondEphemeral(session, event, "🎵 The queue is empty, nothing to shuffle.")
	}

	sess.Queue().Shuffle()

	return core.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("🔀 Queue shuffled (%d tracks).", sess.Queue().Len()),
		Color:       core.EmbedColor,
	})
}
