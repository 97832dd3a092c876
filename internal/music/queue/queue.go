// Package queue holds the per-guild pending track list and the loop mode
// consulted when a track finishes.
package queue

import (
	"errors"
	"math/rand"
	"slices"
	"sync"

	"fermata/internal/music/resolver"
)

var ErrQueueEmpty = errors.New("no tracks in queue")

// LoopMode controls what happens when a track ends.
type LoopMode int

const (
	LoopOff LoopMode = iota
	LoopOne
	LoopAll
)

func (m LoopMode) String() string {
	switch m {
	case LoopOne:
		return "one"
	case LoopAll:
		return "all"
	default:
		return "off"
	}
}

// Queue is an unbounded ordered list of pending tracks for one guild.
// Safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	tracks []resolver.Track
	loop   LoopMode
}

func New() *Queue {
	return &Queue{}
}

// Enqueue appends a track to the tail.
func (q *Queue) Enqueue(track resolver.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = append(q.tracks, track)
}

// Next removes and returns the head, or ErrQueueEmpty.
func (q *Queue) Next() (resolver.Track, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

// NextAfter applies the loop mode to decide the track that follows the one
// that just finished:
//
//	off: pop the head, ErrQueueEmpty when none
//	one: replay the finished track, queue untouched
//	all: requeue the finished track at the tail, then pop the head
func (q *Queue) NextAfter(finished resolver.Track) (resolver.Track, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch q.loop {
	case LoopOne:
		return finished, nil
	case LoopAll:
		q.tracks = append(q.tracks, finished)
		return q.popLocked()
	default:
		return q.popLocked()
	}
}

func (q *Queue) popLocked() (resolver.Track, error) {
	if len(q.tracks) == 0 {
		return resolver.Track{}, ErrQueueEmpty
	}
	head := q.tracks[0]
	q.tracks = q.tracks[1:]
	return head, nil
}

// Shuffle randomly permutes the remaining order.
func (q *Queue) Shuffle() {
	q.mu.Lock()
	defer q.mu.Unlock()
	rand.Shuffle(len(q.tracks), func(i, j int) {
		q.tracks[i], q.tracks[j] = q.tracks[j], q.tracks[i]
	})
}

// Clear empties the queue and resets the loop mode.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = nil
	q.loop = LoopOff
}

// Tracks returns a copy of the pending tracks.
func (q *Queue) Tracks() []resolver.Track {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.tracks)
}

// Len returns the number of pending tracks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tracks)
}

// ToggleLoop cycles off -> one -> all -> off and returns the new mode.
func (q *Queue) ToggleLoop() LoopMode {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.loop = (q.loop + 1) % 3
	return q.loop
}

// Loop returns the current loop mode.
func (q *Queue) Loop() LoopMode {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loop
}
