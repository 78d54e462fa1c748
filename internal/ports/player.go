package ports

import "time"

// PlayerState is a snapshot of the audio backend. Position only advances
// while the track is actually playing, so it can drive lyric timing
// directly. A paused track still counts as Playing; Playing turns false
// once the track has finished or been stopped.
type PlayerState struct {
	Playing  bool
	Position time.Duration
	Duration time.Duration
}

type PlayerService interface {
	Load(path string) error
	Play() error
	Pause() error
	Stop() error
	State() (PlayerState, error)
	Close() error
}
