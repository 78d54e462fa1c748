package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/VihaanSom/karaoke-cli/internal/logger"
	"github.com/VihaanSom/karaoke-cli/internal/ports"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// BeepPlayer decodes and plays the track in-process. It is the fallback
// backend for systems without mpv installed.
type BeepPlayer struct {
	mu sync.Mutex

	volume float64
	stream beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl

	done     chan struct{}
	doneOnce sync.Once
	playing  bool
}

// NewBeepPlayer takes a volume in [0..1]; 0.5 is unity gain.
func NewBeepPlayer(volume float64) ports.PlayerService {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &BeepPlayer{volume: volume, done: make(chan struct{})}
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
}

func (p *BeepPlayer) Load(path string) error {
	stream, format, err := decode(path)
	if err != nil {
		return fmt.Errorf("decode audio file %s: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/4)); err != nil {
		stream.Close()
		return fmt.Errorf("initialize speaker: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stream = stream
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: stream}
	logger.Log.Info().Str("path", path).Int("sampleRate", int(format.SampleRate)).Msg("Audio track decoded")
	return nil
}

func (p *BeepPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return fmt.Errorf("no track loaded")
	}
	if p.playing {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}

	vol := &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   p.volume*2 - 1, // maps nicely to log scale
		Silent:   p.volume <= 0,
	}

	// The callback runs on the speaker goroutine, so it must not touch
	// p.mu; signalling through a channel keeps State() lock-free here.
	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		p.doneOnce.Do(func() { close(p.done) })
	})))
	p.playing = true
	return nil
}

func (p *BeepPlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return nil
	}
	speaker.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	speaker.Unlock()
	return nil
}

func (p *BeepPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Clear()
	p.doneOnce.Do(func() { close(p.done) })
	return nil
}

func (p *BeepPlayer) finished() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *BeepPlayer) State() (ports.PlayerState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return ports.PlayerState{}, nil
	}

	speaker.Lock()
	pos := p.stream.Position()
	length := p.stream.Len()
	speaker.Unlock()

	return ports.PlayerState{
		Playing:  p.playing && !p.finished(),
		Position: p.format.SampleRate.D(pos),
		Duration: p.format.SampleRate.D(length),
	}, nil
}

func (p *BeepPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	speaker.Clear()
	p.doneOnce.Do(func() { close(p.done) })
	if p.stream != nil {
		if err := p.stream.Close(); err != nil {
			logger.Log.Error().Err(err).Msg("Error closing audio stream")
		}
		p.stream = nil
	}
	return nil
}
