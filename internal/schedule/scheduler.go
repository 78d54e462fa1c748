package schedule

import (
	"context"
	"time"

	"github.com/VihaanSom/karaoke-cli/internal/domain"
	"github.com/VihaanSom/karaoke-cli/internal/logger"
	"github.com/VihaanSom/karaoke-cli/internal/ports"
)

// DefaultPollInterval bounds display latency without busy-spinning.
const DefaultPollInterval = 50 * time.Millisecond

// TimeSource reports the current elapsed playback time and whether
// playback is still running. The audio backend is the real source; tests
// drive the scheduler with a scripted one.
type TimeSource interface {
	Elapsed() (time.Duration, bool)
}

// LineWriter receives each lyric line as it comes due.
type LineWriter interface {
	WriteLine(text string)
}

// LineWriterFunc adapts a function to the LineWriter interface.
type LineWriterFunc func(text string)

func (f LineWriterFunc) WriteLine(text string) { f(text) }

// Scheduler emits every line of a sorted lyric sequence exactly once, in
// order, no earlier than its timestamp. A positive sync offset delays the
// lyrics relative to the audio.
type Scheduler struct {
	lines    domain.Lyrics
	interval time.Duration
	offset   time.Duration
}

// New expects lines already sorted by timestamp (the parser guarantees
// this). A non-positive interval falls back to DefaultPollInterval.
func New(lines domain.Lyrics, interval, offset time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Scheduler{lines: lines, interval: interval, offset: offset}
}

// Run polls src until every line has been emitted, playback ends, or ctx
// is cancelled. Lines whose timestamp is never reached because playback
// ended early are silently never emitted; that is the correct outcome,
// not an error.
func (s *Scheduler) Run(ctx context.Context, src TimeSource, out LineWriter) error {
	cursor := 0
	for cursor < len(s.lines) {
		pos, playing := src.Elapsed()
		due := pos - s.offset
		for cursor < len(s.lines) && s.lines[cursor].Timestamp <= due {
			out.WriteLine(s.lines[cursor].Text)
			cursor++
		}
		if cursor >= len(s.lines) {
			break
		}
		if !playing {
			logger.Log.Info().Int("emitted", cursor).Int("total", len(s.lines)).Msg("Playback ended before all lyrics were shown")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.interval):
		}
	}
	return nil
}

// maxStateErrors is how many consecutive failed state queries the
// PlayerSource tolerates before it reports playback as over. A single
// hiccup on the mpv socket must not end the show.
const maxStateErrors = 5

// PlayerSource adapts a ports.PlayerService to the TimeSource interface.
type PlayerSource struct {
	player  ports.PlayerService
	lastPos time.Duration
	lastErr error
	errs    int
}

func NewPlayerSource(player ports.PlayerService) *PlayerSource {
	return &PlayerSource{player: player}
}

func (p *PlayerSource) Elapsed() (time.Duration, bool) {
	state, err := p.player.State()
	if err != nil {
		p.errs++
		p.lastErr = err
		logger.Log.Warn().Err(err).Int("consecutive", p.errs).Msg("Could not query player state")
		return p.lastPos, p.errs < maxStateErrors
	}
	p.errs = 0
	p.lastErr = nil
	p.lastPos = state.Position
	return state.Position, state.Playing
}

// Err reports the backend failure that made the source give up, if any.
// Nil while the backend is healthy or after it recovered.
func (p *PlayerSource) Err() error {
	if p.errs < maxStateErrors {
		return nil
	}
	return p.lastErr
}
