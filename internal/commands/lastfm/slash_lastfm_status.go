package lastfm

import (
	"fmt"

	"fermata/internal/core"

	"github.com/bwmarrin/discordgo"
)

type StatusCommand struct{}

func (c *StatusCommand) Name() string        { return "lastfm-status" }
func (c *StatusCommand) Description() string { return "Show your Last.fm link status" }
func (c *StatusCommand) Aliases() []string   { return []string{} }
func (c *StatusCommand) Group() string       { return groupLastFM }
func (c *StatusCommand) Category() string    { return categoryLastFM }
func (c *StatusCommand) RequireAdmin() bool  { return false }

func (c *StatusCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *StatusCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	conn, err := sctx.Storage.GetLastFMConnection(eventUserID(event))
	if err != nil || conn.SessionKey == "" {
		return core.RespondEphemeral(session, event, "📻 No Last.fm account linked. Run `/lastfm-auth` to link one.")
	}

	state := "enabled"
	if !conn.ScrobblingEnabled {
		state = "disabled"
	}

	return core.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("📻 Linked as **%s**, scrobbling is %s.", conn.Username, state),
		Color:       core.EmbedColor,
	})
}
