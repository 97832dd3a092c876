package discord

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"

	"fermata/internal/config"
	"fermata/internal/core"
	"fermata/internal/music/player"
	"fermata/internal/music/resolver"
	"fermata/internal/scrobble"
	"fermata/internal/scrobble/lastfm"
	"fermata/internal/storage"

	"github.com/bwmarrin/discordgo"
)

const playerEventBuffer = 64

// Bot is a Discord bot
type Bot struct {
	dg       *discordgo.Session
	storage  *storage.Storage
	cfg      *config.Config
	resolver *resolver.Resolver

	lastfmClient *lastfm.Client
	tracker      *scrobble.Tracker
	notifier     *scrobble.Notifier

	events       chan player.Event
	registerOnce sync.Once

	mu       sync.RWMutex
	sessions map[string]*player.Session
}

// StartBot starts the Discord bot and blocks until the context is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage) error {
	var spotify *resolver.SpotifyClient
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		spotify = resolver.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	}

	b := &Bot{
		cfg:      cfg,
		storage:  store,
		resolver: resolver.New(spotify),
		events:   make(chan player.Event, playerEventBuffer),
		sessions: make(map[string]*player.Session),
	}

	if cfg.LastFMAPIKey != "" && cfg.LastFMSecret != "" {
		b.lastfmClient = lastfm.NewClient(cfg.LastFMAPIKey, cfg.LastFMSecret)
		svc := lastfm.NewService(b.lastfmClient, store)
		b.tracker = scrobble.NewTracker(svc, b)
		b.notifier = scrobble.NewNotifier(svc)
	}

	if err := b.run(ctx, cfg.DiscordToken); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

// run starts the Discord bot
func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onGuildCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	// The dispatcher stops after disconnectAll, not with the context:
	// tearing sessions down emits end events that must still be drained.
	dispatchStop := make(chan struct{})
	go b.dispatchPlayerEvents(dispatchStop)

	monitor := player.NewMonitor(b.voiceSessions, b)
	go monitor.Run(ctx)

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	b.disconnectAll()
	close(dispatchStop)
	return nil
}

// configureIntents configures the Discord intents
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsAll
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	botInfo, err := s.User("@me")
	if err != nil {
		log.Println("[WARN] Error retrieving bot user:", err)
		return
	}

	b.registerOnce.Do(b.registerBotCommands)

	// Leave any blacklisted guilds on startup
	for _, g := range r.Guilds {
		if b.isGuildBlacklisted(g.ID) {
			log.Printf("[INFO] Leaving blacklisted guild: %s (%s)", g.ID, g.Name)
			if err := s.GuildLeave(g.ID); err != nil {
				log.Printf("[ERR] Failed to leave guild %s: %v", g.ID, err)
			}
			continue
		}

		if b.cfg.InitSlashCommands {
			if err := b.registerCommands(g.ID); err != nil {
				log.Println("[ERR] Error registering slash commands for guild", g.ID, ":", err)
			}
		} else {
			log.Println("[INFO] Registering slash commands skipped")
		}
	}

	log.Printf("[INFO] ✅ Discord bot %v is running.", botInfo.Username)
}

// onGuildCreate is called when a guild is created
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)

	if b.isGuildBlacklisted(g.Guild.ID) {
		log.Printf("[INFO] Leaving blacklisted guild: %s (%s)", g.Guild.ID, g.Guild.Name)
		if err := s.GuildLeave(g.Guild.ID); err != nil {
			log.Printf("[ERR] Failed to leave guild %s: %v", g.Guild.ID, err)
		}
		return
	}

	b.registerOnce.Do(b.registerBotCommands)

	if err := b.registerCommands(g.Guild.ID); err != nil {
		log.Printf("[ERR] Failed to register commands for new guild %s: %v", g.Guild.ID, err)
	}
}

// onInteractionCreate is called when an interaction is created
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().CommandType != discordgo.ChatApplicationCommand {
		return
	}

	cmdName := i.ApplicationCommandData().Name
	cmd, ok := core.GetCommand(cmdName)
	if !ok {
		log.Printf("[WARN] Unknown command: %s\n", cmdName)
		return
	}

	ctx := &core.SlashInteractionContext{
		Session: s,
		Event:   i,
		Storage: b.storage,
		Voice:   b,
	}
	if err := cmd.Run(ctx); err != nil {
		log.Println("[ERR] Error running slash command:", err)
		core.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Error running slash command: %v", err),
		})
	}
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.DiscordGuildBlacklist, guildID)
}

// disconnectAll tears down every voice session on shutdown.
func (b *Bot) disconnectAll() {
	b.mu.RLock()
	sessions := make([]*player.Session, 0, len(b.sessions))
	for _, s := range b.sessions {
		sessions = append(sessions, s)
	}
	b.mu.RUnlock()

	for _, s := range sessions {
		if err := s.Disconnect(); err != nil {
			log.Printf("[ERR] Failed to disconnect guild %s: %v", s.GuildID(), err)
		}
	}
}
