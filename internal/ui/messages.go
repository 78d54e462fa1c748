package ui

import (
	"time"

	"github.com/VihaanSom/karaoke-cli/internal/ports"
)

type tickMsg time.Time
type playerStateMsg struct{ state ports.PlayerState }
type playerErrorMsg struct{ err error }
