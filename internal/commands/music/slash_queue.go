package music

import (
	"fmt"
	"strings"

	"fermata/internal/core"
	"fermata/internal/music/queue"

	"github.com/bwmarrin/discordgo"
)

const queueDisplayLimit = 10

type QueueCommand struct{}

func (c *QueueCommand) Name() string        { return "queue" }
func (c *QueueCommand) Description() string { return "Show the current playback queue" }
func (c *QueueCommand) Aliases() []string   { return []string{} }
func (c *QueueCommand) Group() string       { return groupMusic }
func (c *QueueCommand) Category() string    { return categoryMusic }
func (c *QueueCommand) RequireAdmin() bool  { return false }

func (c *QueueCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *QueueCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	sess, ok := sctx.Voice.GetSession(event.GuildID)
	if !ok {
		return core.RespondEphemeral(session, event, "🎵 The queue is empty.")
	}

	var sb strings.Builder
	if current := sess.CurrentTrack(); current != nil {
		sb.WriteString("**Now playing**\n")
		sb.WriteString(trackLine(*current))
		sb.WriteString("\n\n")
	}

	tracks := sess.Queue().Tracks()
	if len(tracks) == 0 && sb.Len() == 0 {
		return core.RespondEphemeral(session, event, "🎵 The queue is empty.")
	}

	if len(tracks) > 0 {
		sb.WriteString("**Up next**\n")
		for i, track := range tracks {
			if i == queueDisplayLimit {
				sb.WriteString(fmt.Sprintf("...and %d more\n", len(tracks)-queueDisplayLimit))
				break
			}
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, trackLine(track)))
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎵 Queue",
		Description: sb.String(),
		Color:       core.EmbedColor,
	}
	if mode := sess.Queue().Loop(); mode != queue.LoopOff {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Loop: " + mode.String()}
	}

	return core.RespondEmbed(session, event, embed)
}
