package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

type Config struct {
	DiscordToken          string   `env:"DISCORD_TOKEN,required"`
	StoragePath           string   `env:"STORAGE_PATH" envDefault:"datastore.json"`
	InitSlashCommands     bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	DiscordGuildBlacklist []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`

	LastFMAPIKey string `env:"LASTFM_API_KEY"`
	LastFMSecret string `env:"LASTFM_SECRET"`

	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("[ERR] Failed to parse environment: %v", err)
	}
	if cfg.LastFMAPIKey == "" || cfg.LastFMSecret == "" {
		log.Println("[WARN] LASTFM_API_KEY / LASTFM_SECRET not set, scrobbling disabled")
	}
	return cfg
}
