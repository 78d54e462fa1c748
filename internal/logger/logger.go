package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var Log zerolog.Logger

// The terminal is the lyrics display surface, so the log always goes to a
// file. If no usable location exists the log is discarded rather than
// letting diagnostics bleed into the view.
func init() {
	logPath := filepath.Join(os.TempDir(), "karaoke.log")
	configDir, err := os.UserConfigDir()
	if err == nil {
		karaokeDir := filepath.Join(configDir, "karaoke")
		if err := os.MkdirAll(karaokeDir, 0755); err == nil {
			logPath = filepath.Join(karaokeDir, "karaoke.log")
		}
	}

	var out io.Writer = io.Discard
	if file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666); err == nil {
		out = file
	}

	Log = zerolog.New(out).With().Timestamp().Logger()
	Log.Info().Str("path", logPath).Msg("Logger initialized")
}
