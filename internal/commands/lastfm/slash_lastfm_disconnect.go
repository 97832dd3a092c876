package lastfm

import (
	"fermata/internal/core"

	"github.com/bwmarrin/discordgo"
)

type DisconnectCommand struct{}

func (c *DisconnectCommand) Name() string        { return "lastfm-disconnect" }
func (c *DisconnectCommand) Description() string { return "Unlink your Last.fm account" }
func (c *DisconnectCommand) Aliases() []string   { return []string{} }
func (c *DisconnectCommand) Group() string       { return groupLastFM }
func (c *DisconnectCommand) Category() string    { return categoryLastFM }
func (c *DisconnectCommand) RequireAdmin() bool  { return false }

func (c *DisconnectCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *DisconnectCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	sctx.Storage.DeleteLastFMConnection(eventUserID(event))
	return core.RespondEphemeral(session, event, "📻 Last.fm account unlinked.")
}
