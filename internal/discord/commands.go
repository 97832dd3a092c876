package discord

import (
	"log"
	"sync"
	"time"

	lastfmcmd "fermata/internal/commands/lastfm"
	musiccmd "fermata/internal/commands/music"
	"fermata/internal/core"

	"github.com/bwmarrin/discordgo"
)

// registerBotCommands registers commands that need access to the bot instance
func (b *Bot) registerBotCommands() {
	musicMiddlewares := []core.Middleware{
		core.WithGroupAccessCheck(),
		core.WithGuildOnly(),
		core.WithCommandLogger(),
	}

	for _, cmd := range []core.Command{
		&musiccmd.PlayCommand{Resolver: b.resolver},
		&musiccmd.SkipCommand{},
		&musiccmd.StopCommand{},
		&musiccmd.QueueCommand{},
		&musiccmd.ShuffleCommand{},
		&musiccmd.LoopCommand{},
		&musiccmd.NowPlayingCommand{},
	} {
		core.RegisterCommand(core.ApplyMiddlewares(cmd, musicMiddlewares...))
	}

	if b.lastfmClient == nil {
		log.Println("[INFO] Last.fm client not configured, account commands not registered")
		return
	}

	for _, cmd := range []core.Command{
		&lastfmcmd.AuthCommand{Client: b.lastfmClient},
		&lastfmcmd.ConfirmCommand{Client: b.lastfmClient},
		&lastfmcmd.StatusCommand{},
		&lastfmcmd.ToggleCommand{},
		&lastfmcmd.DisconnectCommand{},
	} {
		core.RegisterCommand(core.ApplyMiddlewares(cmd,
			core.WithGroupAccessCheck(),
			core.WithCommandLogger(),
		))
	}
}

// registerCommands registers slash commands for a guild
func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	existing, _ := b.dg.ApplicationCommands(appID, guildID)
	localHashes := loadGuildCommandHashes(guildID)

	var wanted []*discordgo.ApplicationCommand
	wantedHashes := make(map[string]string)
	for _, cmd := range core.AllCommands() {
		if def := normalizeDefinition(cmd); def != nil {
			wanted = append(wanted, def)
			wantedHashes[def.Name] = definitionHash(def)
		}
	}

	// Delete obsolete
	for _, old := range existing {
		if _, ok := wantedHashes[old.Name]; !ok {
			log.Printf("[INFO] [%s] Deleting obsolete command: %s", guildID, old.Name)
			if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
				log.Printf("[ERR] [%s] Failed to delete %s: %v", guildID, old.Name, err)
			}
			delete(localHashes, old.Name)
		}
	}

	// Create or update changed commands
	var changed []*discordgo.ApplicationCommand
	for _, cmd := range wanted {
		newHash := wantedHashes[cmd.Name]
		if localHashes[cmd.Name] != newHash {
			changed = append(changed, cmd)
		}
	}

	if len(changed) > 0 {
		log.Printf("[INFO] [%s] %d commands changed, updating with rate limit...", guildID, len(changed))
		registerCommandsWithRateLimit(b, guildID, changed)
		for _, c := range changed {
			localHashes[c.Name] = wantedHashes[c.Name]
		}
	}

	saveGuildCommandHashes(guildID, localHashes)
	return nil
}

// normalizeDefinition normalizes a command definition
func normalizeDefinition(cmd core.Command) *discordgo.ApplicationCommand {
	slash, ok := cmd.(core.SlashProvider)
	if !ok {
		return nil
	}
	def := slash.SlashDefinition()
	if def == nil {
		return nil
	}
	if def.Type == 0 {
		def.Type = discordgo.ChatApplicationCommand
	}
	return def
}

// registerCommandsWithRateLimit registers commands with a rate limit
func registerCommandsWithRateLimit(b *Bot, guildID string, cmds []*discordgo.ApplicationCommand) {
	rateLimit := time.Second / 40
	ticker := time.NewTicker(rateLimit)
	defer ticker.Stop()

	var wg sync.WaitGroup

	for _, job := range cmds {
		wg.Add(1)

		go func(cmd *discordgo.ApplicationCommand) {
			defer wg.Done()
			<-ticker.C

			_, err := b.dg.ApplicationCommandCreate(b.dg.State.User.ID, guildID, cmd)
			if err != nil {
				log.Printf("[ERR] Can't create command %s: %v", cmd.Name, err)
			} else {
				log.Printf("[DONE] Command created: %s", cmd.Name)
			}
		}(job)
	}

	wg.Wait()
}
