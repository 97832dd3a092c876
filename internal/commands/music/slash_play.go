package music

import (
	"context"
	"fmt"
	"log"

	"fermata/internal/core"
	"fermata/internal/music/player"
	"fermata/internal/music/resolver"

	"github.com/bwmarrin/discordgo"
)

type PlayCommand struct {
	Resolver *resolver.Resolver
}

func (c *PlayCommand) Name() string        { return "play" }
func (c *PlayCommand) Description() string { return "Play a track or add it to the queue" }
func (c *PlayCommand) Aliases() []string   { return []string{} }
func (c *PlayCommand) Group() string       { return groupMusic }
func (c *PlayCommand) Category() string    { return categoryMusic }
func (c *PlayCommand) RequireAdmin() bool  { return false }

func (c *PlayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "input",
				Description: "Youtube/Spotify link or song name",
				Required:    true,
			},
		},
	}
}

func (c *PlayCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event
	guildID := event.GuildID
	member := event.Member

	var input string
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "input" {
			input = opt.StringValue()
		}
	}
	if input == "" {
		return core.RespondEphemeral(session, event, "🎵 Error: input is required")
	}

	if err := core.RespondDeferred(session, event); err != nil {
		return fmt.Errorf("failed to send deferred response: %w", err)
	}

	voiceState, err := sctx.Voice.FindUserVoiceState(guildID, member.User.ID)
	if err != nil {
		return core.FollowupEphemeral(session, event, "🎵 You need to be in a voice channel first.")
	}

	track, err := c.Resolver.Resolve(context.Background(), input)
	if err != nil {
		return core.FollowupEphemeral(session, event, resolveErrorReply(err))
	}

	sess := sctx.Voice.GetOrCreateSession(guildID)
	if err := sess.Connect(context.Background(), voiceState.ChannelID); err != nil {
		return core.FollowupEphemeral(session, event, "🎵 Error: could not join your voice channel")
	}

	if sess.CurrentTrack() != nil {
		sess.Queue().Enqueue(*track)
		return core.FollowupEmbed(session, event, &discordgo.MessageEmbed{
			Title:       "➕ Added to Queue",
			Description: trackLine(*track),
			Color:       core.EmbedColor,
		})
	}

	if err := sess.Play(context.Background(), *track); err != nil {
		log.Printf("[ERR] Failed to start playback on guild %s: %v", guildID, err)
		return core.FollowupEphemeral(session, event, fmt.Sprintf("🎵 Error: %v", err))
	}

	msg, err := session.FollowupMessageCreate(event.Interaction, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{nowPlayingEmbed(*track)},
	})
	if err == nil && msg != nil {
		sess.SetNowPlayingMessage(&player.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID})
	}
	return nil
}
