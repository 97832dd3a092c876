package core

import (
	"fermata/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// WithGroupAccessCheck wraps a command to enforce group access
func WithGroupAccessCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				v, ok := ctx.(*SlashInteractionContext)
				if !ok {
					return cmd.Run(ctx)
				}
				respond := func(msg string) {
					RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{Description: msg})
				}
				if disabledGroup(cmd, v.Event.GuildID, v.Storage, respond) {
					return nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}

func disabledGroup(cmd Command, guildID string, store *storage.Storage, respond func(string)) bool {
	if cmd.Group() == "" {
		return false
	}
	disabled, err := store.IsGroupDisabled(guildID, cmd.Group())
	if err != nil {
		return false
	}
	if disabled {
		respond("This command group is disabled on this server.")
		return true
	}
	return false
}
