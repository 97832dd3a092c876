package core

import (
	"fmt"

	"fermata/internal/core"
	"fermata/internal/version"

	"github.com/bwmarrin/discordgo"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "About this bot" }
func (c *AboutCommand) Aliases() []string   { return []string{} }
func (c *AboutCommand) Group() string       { return "core" }
func (c *AboutCommand) Category() string    { return "🕯️ Information" }
func (c *AboutCommand) RequireAdmin() bool  { return false }

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	return core.RespondEmbedEphemeral(sctx.Session, sctx.Event, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s v%s", version.AppName, version.AppVersion),
		Description: "A music bot that plays your queue and scrobbles what the room is listening to.",
		Color:       core.EmbedColor,
	})
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&AboutCommand{},
			core.WithCommandLogger(),
		),
	)
}
