package core

import (
	"fmt"
	"sort"
	"strings"

	"fermata/internal/core"
	"fermata/internal/version"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Get a list of available commands" }
func (c *HelpCommand) Aliases() []string   { return []string{} }
func (c *HelpCommand) Group() string       { return "core" }
func (c *HelpCommand) Category() string    { return "🕯️ Information" }
func (c *HelpCommand) RequireAdmin() bool  { return false }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	embed := &discordgo.MessageEmbed{
		Title:       version.AppName + " Help",
		Description: buildHelpByCategory(session, event),
		Color:       core.EmbedColor,
	}

	return core.RespondEmbedEphemeral(session, event, embed)
}

func buildHelpByCategory(session *discordgo.Session, event *discordgo.InteractionCreate) string {
	categoryMap := make(map[string][]core.Command)
	for _, cmd := range core.AllCommands() {
		if cmd.RequireAdmin() && !core.IsAdministrator(session, event.GuildID, event.Member) {
			continue
		}
		cat := cmd.Category()
		categoryMap[cat] = append(categoryMap[cat], cmd)
	}

	var sortedCats []string
	for cat := range categoryMap {
		sortedCats = append(sortedCats, cat)
	}
	sort.Strings(sortedCats)

	var sb strings.Builder
	for _, cat := range sortedCats {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat))
		cmds := categoryMap[cat]
		sort.Slice(cmds, func(i, j int) bool {
			return cmds[i].Name() < cmds[j].Name()
		})
		for _, cmd := range cmds {
			sb.WriteString(fmt.Sprintf("`%s` - %s\n", cmd.Name(), cmd.Description()))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&HelpCommand{},
			core.WithGroupAccessCheck(),
			core.WithGuildOnly(),
		),
	)
}
