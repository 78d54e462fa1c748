package domain

import (
	"sort"
	"time"
)

// LyricLine is a single parsed lyric: the elapsed playback time at which
// the line becomes active, and its display text.
type LyricLine struct {
	Timestamp time.Duration
	Text      string
}

// Lyrics is the full sequence of lines for one track, ordered by
// non-decreasing timestamp.
type Lyrics []LyricLine

// Sort orders the lines by timestamp. The sort is stable so lines that
// share a timestamp keep their file order.
func (l Lyrics) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Timestamp < l[j].Timestamp
	})
}

// ActiveIndex returns the index of the line active at pos, i.e. the last
// line whose timestamp is at or before pos. Returns -1 when pos is before
// the first line.
func (l Lyrics) ActiveIndex(pos time.Duration) int {
	return sort.Search(len(l), func(i int) bool {
		return l[i].Timestamp > pos
	}) - 1
}

// LastTimestamp returns the timestamp of the final line, or zero for an
// empty sequence.
func (l Lyrics) LastTimestamp() time.Duration {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].Timestamp
}
