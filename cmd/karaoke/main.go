package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/VihaanSom/karaoke-cli/internal/domain"
	"github.com/VihaanSom/karaoke-cli/internal/ports"
	"github.com/VihaanSom/karaoke-cli/internal/schedule"
	"github.com/VihaanSom/karaoke-cli/internal/services/config"
	"github.com/VihaanSom/karaoke-cli/internal/services/lyrics"
	"github.com/VihaanSom/karaoke-cli/internal/services/player"
	"github.com/VihaanSom/karaoke-cli/internal/ui"

	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

func main() {
	var args struct {
		Audio  string `arg:"positional,required" help:"path to the audio file"`
		Lyrics string `arg:"positional,required" help:"path to the .lrc lyrics file"`
	}
	arg.MustParse(&args)

	if err := validateInputPath(args.Audio); err != nil {
		exitWithErr(err)
	}
	if err := validateInputPath(args.Lyrics); err != nil {
		exitWithErr(err)
	}

	cfg, err := config.NewViperConfigService().Load()
	if err != nil {
		exitWithErr(fmt.Errorf("load config: %w", err))
	}

	parsed, err := lyrics.ParseFile(args.Lyrics)
	if err != nil {
		exitWithErr(err)
	}

	backend, err := newPlayer(cfg)
	if err != nil {
		exitWithErr(err)
	}
	defer backend.Close()

	// exitWithErr skips the deferred Close, so kill the backend by hand
	// on the fatal paths below.
	if err := backend.Load(args.Audio); err != nil {
		backend.Close()
		exitWithErr(fmt.Errorf("load audio: %w", err))
	}
	if err := backend.Play(); err != nil {
		backend.Close()
		exitWithErr(fmt.Errorf("start playback: %w", err))
	}

	if cfg.Plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := runPlain(cfg, parsed, backend); err != nil {
			backend.Close()
			exitWithErr(err)
		}
		return
	}

	model := ui.InitialModel(backend, parsed, filepath.Base(args.Audio), cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		exitWithErr(fmt.Errorf("run ui: %w", err))
	}
	if m, ok := finalModel.(ui.AppModel); ok && m.Err() != nil {
		backend.Close()
		exitWithErr(fmt.Errorf("playback failed: %w", m.Err()))
	}
}

func newPlayer(cfg domain.Config) (ports.PlayerService, error) {
	backend := cfg.Backend
	if backend == "" || backend == "auto" {
		if _, err := exec.LookPath("mpv"); err == nil {
			backend = "mpv"
		} else {
			backend = "beep"
		}
	}

	switch backend {
	case "mpv":
		socketPath := filepath.Join(os.TempDir(), fmt.Sprintf("karaoke-mpv-%d.sock", os.Getpid()))
		return player.NewMpvPlayer(socketPath), nil
	case "beep":
		return player.NewBeepPlayer(cfg.Volume), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", cfg.Backend)
	}
}

// runPlain prints each lyric line exactly once to stdout, then lets the
// track play out. Used when stdout is not a terminal or plain mode is
// configured. A backend failure that ended the run early is returned so
// the process can exit non-zero.
func runPlain(cfg domain.Config, lines domain.Lyrics, backend ports.PlayerService) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interval := time.Duration(cfg.PollIntervalMs) * time.Millisecond
	offset := time.Duration(cfg.Offset * float64(time.Second))

	sched := schedule.New(lines, interval, offset)
	src := schedule.NewPlayerSource(backend)
	out := schedule.LineWriterFunc(func(text string) { fmt.Println(text) })

	if err := sched.Run(ctx, src, out); err != nil {
		return nil // interrupted by the user
	}
	if err := src.Err(); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
		if _, playing := src.Elapsed(); !playing {
			if err := src.Err(); err != nil {
				return fmt.Errorf("playback failed: %w", err)
			}
			return nil
		}
	}
}

func validateInputPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file", path)
	}
	return nil
}

func exitWithErr(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
