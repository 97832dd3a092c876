package core

// WithAccessControl wraps a command to enforce admin-only access if required.
func WithAccessControl() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				v, ok := ctx.(*SlashInteractionContext)
				if !ok {
					return nil
				}

				if cmd.RequireAdmin() {
					if v.Event.GuildID == "" || v.Event.Member == nil {
						RespondEphemeral(v.Session, v.Event, "Cannot determine your admin status in this context.")
						return nil
					}
					if !IsAdministrator(v.Session, v.Event.GuildID, v.Event.Member) {
						RespondEphemeral(v.Session, v.Event, "You must be an admin to use this command.")
						return nil
					}
				}

				return cmd.Run(ctx)
			},
		}
	}
}
