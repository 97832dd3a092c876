package scrobble

import (
	"context"
	"log"
	"time"
)

const notifyCallTimeout = 10 * time.Second

// Notifier fans a now-playing update out to a set of listeners.
// Fire-and-forget: failures are logged per user and never block playback.
type Notifier struct {
	svc Service
}

func NewNotifier(svc Service) *Notifier {
	return &Notifier{svc: svc}
}

// Notify updates every listed user's now-playing status. Meant to run in
// its own goroutine off the playback path.
func (n *Notifier) Notify(userIDs []string, sub Submission) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyCallTimeout)
	defer cancel()

	for _, userID := range userIDs {
		if err := n.svc.UpdateNowPlaying(ctx, userID, sub); err != nil {
			log.Printf("[Scrobble] Now playing update failed for user %s: %v", userID, err)
		}
	}
}
