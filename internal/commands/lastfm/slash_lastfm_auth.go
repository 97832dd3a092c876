package lastfm

import (
	"context"
	"fmt"

	"fermata/internal/core"
	"fermata/internal/scrobble/lastfm"

	"github.com/bwmarrin/discordgo"
)

type AuthCommand struct {
	Client *lastfm.Client
}

func (c *AuthCommand) Name() string        { return "lastfm-auth" }
func (c *AuthCommand) Description() string { return "Link your Last.fm account" }
func (c *AuthCommand) Aliases() []string   { return []string{} }
func (c *AuthCommand) Group() string       { return groupLastFM }
func (c *AuthCommand) Category() string    { return categoryLastFM }
func (c *AuthCommand) RequireAdmin() bool  { return false }

func (c *AuthCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *AuthCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event
	userID := eventUserID(event)

	token, err := c.Client.GetToken(context.Background())
	if err != nil {
		return core.RespondEphemeral(session, event, fmt.Sprintf("📻 Error: could not reach Last.fm: %v", err))
	}

	if err := sctx.Storage.SetLastFMPendingToken(userID, token); err != nil {
		return core.RespondEphemeral(session, event, "📻 Error: failed to store your auth token.")
	}

	return core.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
		Title: "📻 Link your Last.fm account",
		Description: fmt.Sprintf(
			"1. [Authorize access on Last.fm](%s)\n2. Come back and run `/lastfm-confirm`",
			c.Client.AuthURL(token),
		),
		Color: core.EmbedColor,
	})
}
