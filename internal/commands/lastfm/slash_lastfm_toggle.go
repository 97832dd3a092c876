package lastfm

import (
	"fermata/internal/core"

	"github.com/bwmarrin/discordgo"
)

type ToggleCommand struct{}

func (c *ToggleCommand) Name() string        { return "lastfm-toggle" }
func (c *ToggleCommand) Description() string { return "Turn your scrobbling on or off" }
func (c *ToggleCommand) Aliases() []string   { return []string{} }
func (c *ToggleCommand) Group() string       { return groupLastFM }
func (c *ToggleCommand) Category() string    { return categoryLastFM }
func (c *ToggleCommand) RequireAdmin() bool  { return false }

func (c *ToggleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ToggleCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	enabled, err := sctx.Storage.ToggleLastFMScrobbling(eventUserID(event))
	if err != nil {
		return core.RespondEphemeral(session, event, "📻 No Last.fm account linked. Run `/lastfm-auth` to link one.")
	}

	msg := "📻 Scrobbling enabled."
	if !enabled {
		msg = "📻 Scrobbling disabled."
	}
	return core.RespondEphemeral(session, event, msg)
}
