package resolver

import "time"

// Track is a playable audio track resolved from user input. Immutable once
// resolved; ownership passes from the resolving command to the guild queue.
type Track struct {
	ID       string // source identifier (YouTube video ID)
	Title    string
	Author   string
	Duration time.Duration
	URL      string
}
