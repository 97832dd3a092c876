package queue

import (
	"sort"
	"testing"

	"fermata/internal/music/resolver"

	"github.com/stretchr/testify/require"
)

func track(id string) resolver.Track {
	return resolver.Track{ID: id, Title: "track " + id}
}

func TestEnqueueNext(t *testing.T) {
	t.Parallel()

	q := New()
	_, err := q.Next()
	require.ErrorIs(t, err, ErrQueueEmpty)

	q.Enqueue(track("a"))
	q.Enqueue(track("b"))
	require.Equal(t, 2, q.Len())

	head, err := q.Next()
	require.NoError(t, err)
	require.Equal(t, "a", head.ID)

	head, err = q.Next()
	require.NoError(t, err)
	require.Equal(t, "b", head.ID)

	_, err = q.Next()
	require.ErrorIs(t, err, ErrQueueEmpty)
}

func TestToggleLoopCycles(t *testing.T) {
	t.Parallel()

	q := New()
	require.Equal(t, LoopOff, q.Loop())
	require.Equal(t, LoopOne, q.ToggleLoop())
	require.Equal(t, LoopAll, q.ToggleLoop())
	require.Equal(t, LoopOff, q.ToggleLoop())
}

func TestNextAfterLoopOff(t *testing.T) {
	t.Parallel()

	q := New()
	q.Enqueue(track("b"))
	q.Enqueue(track("c"))

	next, err := q.NextAfter(track("a"))
	require.NoError(t, err)
	require.Equal(t, "b", next.ID)

	next, err = q.NextAfter(next)
	require.NoError(t, err)
	require.Equal(t, "c", next.ID)

	_, err = q.NextAfter(next)
	require.ErrorIs(t, err, ErrQueueEmpty)
}

func TestNextAfterLoopOne(t *testing.T) {
	t.Parallel()

	q := New()
	q.Enqueue(track("b"))
	q.ToggleLoop() // one

	next, err := q.NextAfter(track("a"))
	require.NoError(t, err)
	require.Equal(t, "a", next.ID)

	// Queue stays untouched while looping one track.
	require.Equal(t, 1, q.Len())
}

func TestNextAfterLoopAll(t *testing.T) {
	t.Parallel()

	q := New()
	q.Enqueue(track("b"))
	q.ToggleLoop() // one
	q.ToggleLoop() // all

	next, err := q.NextAfter(track("a"))
	require.NoError(t, err)
	require.Equal(t, "b", next.ID)

	// The finished track went to the tail, so the cycle repeats a <-> b.
	next, err = q.NextAfter(next)
	require.NoError(t, err)
	require.Equal(t, "a", next.ID)

	next, err = q.NextAfter(next)
	require.NoError(t, err)
	require.Equal(t, "b", next.ID)
}

func TestNextAfterLoopAllSingleTrack(t *testing.T) {
	t.Parallel()

	q := New()
	q.ToggleLoop()
	q.ToggleLoop() // all

	// Empty queue with loop all keeps replaying the finished track.
	next, err := q.NextAfter(track("a"))
	require.NoError(t, err)
	require.Equal(t, "a", next.ID)
}

func TestNextBypassesLoopMode(t *testing.T) {
	t.Parallel()

	q := New()
	q.Enqueue(track("b"))
	q.ToggleLoop() // one

	// Skip semantics: Next ignores the loop mode and pops the head.
	next, err := q.Next()
	require.NoError(t, err)
	require.Equal(t, "b", next.ID)
}

func TestShuffleKeepsTracks(t *testing.T) {
	t.Parallel()

	q := New()
	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		q.Enqueue(track(id))
	}

	q.Shuffle()

	got := make([]string, 0, len(ids))
	for _, tr := range q.Tracks() {
		got = append(got, tr.ID)
	}
	sort.Strings(got)
	require.Equal(t, ids, got)
}

func TestClearResetsLoop(t *testing.T) {
	t.Parallel()

	q := New()
	q.Enqueue(track("a"))
	q.ToggleLoop()

	q.Clear()
	require.Equal(t, 0, q.Len())
	require.Equal(t, LoopOff, q.Loop())
}
