package core

// WithGuildOnly rejects invocations coming from DMs.
func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashInteractionContext); ok && v.Event.GuildID == "" {
					RespondEphemeral(v.Session, v.Event, "This command only works inside a server.")
					return nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}
