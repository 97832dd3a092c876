package music

import (
	"context"
	"errors"
	"fmt"

	"fermata/internal/core"
	"fermata/internal/music/queue"

	"github.com/bwmarrin/discordgo"
)

type SkipCommand struct{}

func (c *SkipCommand) Name() string        { return "skip" }
func (c *SkipCommand) Description() string { return "Skip to the next track in the queue" }
func (c *SkipCommand) Aliases() []string   { return []string{} }
func (c *SkipCommand) Group() string       { return groupMusic }
func (c *SkipCommand) Category() string    { return categoryMusic }
func (c *SkipCommand) RequireAdmin() bool  { return false }

func (c *SkipCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *SkipCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	sess, ok := sctx.Voice.GetSession(event.GuildID)
	if !ok || !sess.Connected() {
		return core.RespondEphemeral(session, event, "🎵 Nothing is playing.")
	}

	if err := core.RespondDeferred(session, event); err != nil {
		return fmt.Errorf("failed to send deferred response: %w", err)
	}

	next, err := sess.Skip(context.Background())
	if errors.Is(err, queue.ErrQueueEmpty) {
		return core.FollowupEmbed(session, event, &discordgo.MessageEmbed{
			Description: "⏭️ Skipped. The queue is empty now.",
			Color:       core.EmbedColor,
		})
	}
	if err != nil {
		return core.FollowupEphemeral(session, event, fmt.Sprintf("🎵 Error: %v", err))
	}

	return core.FollowupEmbed(session, event, nowPlayingEmbed(*next))
}
