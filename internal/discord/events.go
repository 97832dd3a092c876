package discord

import (
	"fmt"
	"log"

	"fermata/internal/core"
	"fermata/internal/music/player"
	"fermata/internal/scrobble"

	"github.com/bwmarrin/discordgo"
)

// dispatchPlayerEvents consumes playback lifecycle events and fans them out
// to the scrobble tracker and the status message updater.
func (b *Bot) dispatchPlayerEvents(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case evt := <-b.events:
			switch evt.Type {
			case player.EventTrackStart:
				b.handleTrackStart(evt)
			case player.EventTrackEnd:
				if b.tracker != nil {
					b.tracker.TrackEnded(evt.GuildID)
				}
			case player.EventPlaybackError:
				log.Printf("[ERR] Playback error on guild %s for %q: %v", evt.GuildID, evt.Track.Title, evt.Err)
			}
		}
	}
}

func (b *Bot) handleTrackStart(evt player.Event) {
	sub := scrobble.Submission{
		Artist:   evt.Track.Author,
		Track:    evt.Track.Title,
		Duration: evt.Track.Duration,
	}

	if b.tracker != nil {
		listeners := b.tracker.TrackStarted(evt.GuildID, evt.ChannelID, sub)
		if b.notifier != nil && len(listeners) > 0 {
			go b.notifier.Notify(listeners, sub)
		}
	}

	b.updateNowPlayingMessage(evt)
}

// updateNowPlayingMessage edits the guild's status message in place when the
// playlist advances. Best effort, the message may have been deleted.
func (b *Bot) updateNowPlayingMessage(evt player.Event) {
	sess, ok := b.GetSession(evt.GuildID)
	if !ok {
		return
	}
	ref := sess.NowPlayingMessage()
	if ref == nil {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎶 Now Playing",
		Description: fmt.Sprintf("[%s](%s)", evt.Track.Title, evt.Track.URL),
		Color:       core.EmbedColor,
	}
	if _, err := b.dg.ChannelMessageEditEmbed(ref.ChannelID, ref.MessageID, embed); err != nil {
		log.Printf("[WARN] Failed to update now playing message on guild %s: %v", evt.GuildID, err)
	}
}
