package core

import (
	"fmt"
	"sort"
	"strings"

	"fermata/internal/core"

	"github.com/bwmarrin/discordgo"
)

type CommandsStatusCommand struct{}

func (c *CommandsStatusCommand) Name() string        { return "cmd-status" }
func (c *CommandsStatusCommand) Description() string { return "Show which command groups are disabled" }
func (c *CommandsStatusCommand) Aliases() []string   { return []string{} }
func (c *CommandsStatusCommand) Group() string       { return "core" }
func (c *CommandsStatusCommand) Category() string    { return "⚙️ Settings" }
func (c *CommandsStatusCommand) RequireAdmin() bool  { return false }

func (c *CommandsStatusCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *CommandsStatusCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	disabled, err := sctx.Storage.GetDisabledGroups(event.GuildID)
	if err != nil || len(disabled) == 0 {
		return core.RespondEphemeral(session, event, "All command groups are enabled.")
	}

	sort.Strings(disabled)
	var sb strings.Builder
	for _, g := range disabled {
		sb.WriteString(fmt.Sprintf("`%s`\n", g))
	}

	return core.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
		Title:       "Disabled command groups",
		Description: sb.String(),
		Color:       core.EmbedColor,
	})
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&CommandsStatusCommand{},
			core.WithGuildOnly(),
		),
	)
}
