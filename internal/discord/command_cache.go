package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// The per-guild command cache remembers the definition hash of every slash
// command registered with Discord, so unchanged commands are not re-created
// on startup.

const commandCacheDir = "data/commands"

// definitionHash digests the fields of a command definition that Discord
// actually compares. Runtime fields (IDs, versions) are excluded and options
// are ordered by name so the hash is stable across restarts.
func definitionHash(cmd *discordgo.ApplicationCommand) string {
	type choice struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
	}
	type option struct {
		Name        string                                 `json:"name"`
		Description string                                 `json:"description"`
		Type        discordgo.ApplicationCommandOptionType `json:"type"`
		Required    bool                                   `json:"required"`
		Choices     []choice                               `json:"choices,omitempty"`
		Options     []option                               `json:"options,omitempty"`
	}

	var normalize func(opts []*discordgo.ApplicationCommandOption) []option
	normalize = func(opts []*discordgo.ApplicationCommandOption) []option {
		out := make([]option, 0, len(opts))
		for _, o := range opts {
			entry := option{
				Name:        o.Name,
				Description: o.Description,
				Type:        o.Type,
				Required:    o.Required,
				Options:     normalize(o.Options),
			}
			for _, c := range o.Choices {
				entry.Choices = append(entry.Choices, choice{Name: c.Name, Value: c.Value})
			}
			out = append(out, entry)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	}

	data, _ := json.Marshal(struct {
		Name        string                           `json:"name"`
		Description string                           `json:"description"`
		Type        discordgo.ApplicationCommandType `json:"type"`
		Options     []option                         `json:"options,omitempty"`
	}{cmd.Name, cmd.Description, cmd.Type, normalize(cmd.Options)})

	return fmt.Sprintf("%x", sha1.Sum(data))
}

func commandCachePath(guildID string) string {
	return filepath.Join(commandCacheDir, guildID+".json")
}

// loadGuildCommandHashes reads the cached name -> hash map for a guild.
// A missing or corrupt cache just means every command looks changed.
func loadGuildCommandHashes(guildID string) map[string]string {
	hashes := make(map[string]string)
	if data, err := os.ReadFile(commandCachePath(guildID)); err == nil {
		_ = json.Unmarshal(data, &hashes)
	}
	return hashes
}

func saveGuildCommandHashes(guildID string, hashes map[string]string) {
	path := commandCachePath(guildID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	data, _ := json.MarshalIndent(hashes, "", "  ")
	_ = os.WriteFile(path, data, 0o644)
}
