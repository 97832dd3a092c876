package lastfm

import (
	"context"
	"fmt"

	"fermata/internal/core"
	"fermata/internal/scrobble/lastfm"
	"fermata/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type ConfirmCommand struct {
	Client *lastfm.Client
}

func (c *ConfirmCommand) Name() string        { return "lastfm-confirm" }
func (c *ConfirmCommand) Description() string { return "Finish linking your Last.fm account" }
func (c *ConfirmCommand) Aliases() []string   { return []string{} }
func (c *ConfirmCommand) Group() string       { return groupLastFM }
func (c *ConfirmCommand) Category() string    { return categoryLastFM }
func (c *ConfirmCommand) RequireAdmin() bool  { return false }

func (c *ConfirmCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ConfirmCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event
	userID := eventUserID(event)

	conn, err := sctx.Storage.GetLastFMConnection(userID)
	if err != nil || conn.PendingToken == "" {
		return core.RespondEphemeral(session, event, "📻 No pending link found. Run `/lastfm-auth` first.")
	}

	lfmSession, err := c.Client.GetSession(context.Background(), conn.PendingToken)
	if err != nil {
		return core.RespondEphemeral(session, event,
			"📻 Could not confirm the link. Make sure you authorized access on Last.fm, or run `/lastfm-auth` again.")
	}

	if err := sctx.Storage.SetLastFMConnection(userID, &storage.LastFMConnection{
		Username:          lfmSession.Name,
		SessionKey:        lfmSession.Key,
		ScrobblingEnabled: true,
	}); err != nil {
		return core.RespondEphemeral(session, event, "📻 Error: failed to store your Last.fm session.")
	}

	return core.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("📻 Linked Last.fm account **%s**. Scrobbling is enabled.", lfmSession.Name),
		Color:       core.EmbedColor,
	})
}
