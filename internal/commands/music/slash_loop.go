package music

import (
	"fermata/internal/core"
	"fermata/internal/music/queue"

	"github.com/bwmarrin/discordgo"
)

type LoopCommand struct{}

func (c *LoopCommand) Name() string        { return "loop" }
func (c *LoopCommand) Description() string { return "Cycle the loop mode: off, one track, whole queue" }
func (c *LoopCommand) Aliases() []string   { return []string{} }
func (c *LoopCommand) Group() string       { return groupMusic }
func (c *LoopCommand) Category() string    { return categoryMusic }
func (c *LoopCommand) RequireAdmin() bool  { return false }

func (c *LoopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *LoopCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	sess := sctx.Voice.GetOrCreateSession(event.GuildID)
	mode := sess.Queue().ToggleLoop()

	var desc string
	switch mode {
	case queue.LoopOne:
		desc = "🔂 Looping the current track."
	case queue.LoopAll:
		desc = "🔁 Looping the whole queue."
	default:
		desc = "➡️ Loop disabled."
	}

	return core.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Description: desc,
		Color:       core.EmbedColor,
	})
}
