package ui

import (
	"fmt"
	"time"

	"github.com/VihaanSom/karaoke-cli/internal/domain"
	"github.com/VihaanSom/karaoke-cli/internal/ports"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minWidth  = 40
	minHeight = 8

	// lyric lines shown above and below the active one
	contextLines = 2

	offsetStep = 50 * time.Millisecond

	clockWidth = 16
)

type AppModel struct {
	width, height int

	player ports.PlayerService
	lyrics domain.Lyrics
	title  string

	interval time.Duration
	offset   time.Duration
	tail     time.Duration

	state     ports.PlayerState
	activeIdx int
	err       error

	// set once playback has ended; the view keeps ticking on the wall
	// clock from endPos until the last line plus the tail has passed
	endedAt time.Time
	endPos  time.Duration

	progress progress.Model
	styles   Styles
}

func InitialModel(player ports.PlayerService, lyrics domain.Lyrics, title string, cfg domain.Config) AppModel {
	interval := time.Duration(cfg.PollIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}

	return AppModel{
		player:    player,
		lyrics:    lyrics,
		title:     title,
		interval:  interval,
		offset:    time.Duration(cfg.Offset * float64(time.Second)),
		tail:      time.Duration(cfg.TailSeconds) * time.Second,
		activeIdx: -1,
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		styles:    DefaultStyles(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), pollStateCmd(m.player))
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func pollStateCmd(player ports.PlayerService) tea.Cmd {
	return func() tea.Msg {
		state, err := player.State()
		if err != nil {
			return playerErrorMsg{err}
		}
		return playerStateMsg{state}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width - clockWidth
		if barWidth < 10 {
			barWidth = 10
		}
		m.progress.Width = barWidth
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up":
			m.offset += offsetStep
		case "down":
			m.offset -= offsetStep
		}
		return m, nil

	case tickMsg:
		if !m.endedAt.IsZero() {
			// Playback is over but lines behind the offset (or with
			// timestamps past the track end) still need their moment.
			pos := m.endPos + time.Since(m.endedAt)
			m.state.Position = pos
			m.activeIdx = m.lyrics.ActiveIndex(pos - m.offset)
			if pos-m.offset >= m.lyrics.LastTimestamp()+m.tail {
				return m, tea.Quit
			}
			return m, tickCmd(m.interval)
		}
		return m, tea.Batch(tickCmd(m.interval), pollStateCmd(m.player))

	case playerStateMsg:
		m.state = msg.state
		m.activeIdx = m.lyrics.ActiveIndex(msg.state.Position - m.offset)
		if !msg.state.Playing {
			if msg.state.Position-m.offset >= m.lyrics.LastTimestamp()+m.tail {
				return m, tea.Quit
			}
			if m.endedAt.IsZero() {
				m.endedAt = time.Now()
				m.endPos = msg.state.Position
			}
		}
		return m, nil

	case playerErrorMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// Err reports the player failure that ended the session, if any.
func (m AppModel) Err() error { return m.err }

func (m AppModel) View() string {
	if m.width == 0 {
		return ""
	}
	if m.width < minWidth || m.height < minHeight {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "Terminal too small")
	}
	if m.err != nil {
		return m.styles.ErrorText.Render(fmt.Sprintf("Error: %v", m.err))
	}

	title := m.styles.Title.Render(truncate("Karaoke: "+m.title, m.width-1))

	total := m.state.Duration
	if total <= 0 {
		// mpv may not know the duration yet; approximate from the last
		// lyric plus a short tail.
		total = m.lyrics.LastTimestamp() + m.tail
	}
	frac := 0.0
	if total > 0 {
		frac = float64(m.state.Position) / float64(total)
		if frac > 1 {
			frac = 1
		}
	}
	clock := m.styles.Clock.Render(" " + formatClock(m.state.Position) + " / " + formatClock(total))
	bar := lipgloss.JoinHorizontal(lipgloss.Top, m.progress.ViewAs(frac), clock)

	window := m.lyricWindow()

	help := m.styles.Help.Render(fmt.Sprintf("q: quit • ↑/↓: nudge offset ±0.05s • offset %+.2fs", m.offset.Seconds()))

	blockHeight := m.height - lipgloss.Height(title) - lipgloss.Height(bar) - lipgloss.Height(help)
	centered := lipgloss.Place(m.width, blockHeight, lipgloss.Center, lipgloss.Center, window)

	return lipgloss.JoinVertical(lipgloss.Left, title, bar, centered, help)
}

// lyricWindow renders the active line bold with up to contextLines lines
// of context on either side.
func (m AppModel) lyricWindow() string {
	rows := make([]string, 0, 2*contextLines+1)
	for rel := -contextLines; rel <= contextLines; rel++ {
		j := m.activeIdx + rel
		if j < 0 || j >= len(m.lyrics) {
			rows = append(rows, "")
			continue
		}

		line := truncate(m.lyrics[j].Text, m.width-3)
		if rel == 0 {
			rows = append(rows, m.styles.ActiveLine.Render("> "+line))
		} else {
			rows = append(rows, m.styles.ContextLine.Render("  "+line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
