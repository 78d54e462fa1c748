package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/VihaanSom/karaoke-cli/internal/logger"
	"github.com/VihaanSom/karaoke-cli/internal/ports"

	"github.com/buger/jsonparser"
)

const (
	socketCheckRetries  = 20
	socketCheckInterval = 100 * time.Millisecond
	socketReadDeadline  = 500 * time.Millisecond

	mpvReqIDPos = 1
	mpvReqIDDur = 2
	mpvReqIDEOF = 3

	// startupGracePolls bounds how many position-less state queries a
	// just-loaded track gets before the backend reports failure. At the
	// default 50ms poll interval this is roughly five seconds.
	startupGracePolls = 100
)

type mpvCommand struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id,omitempty"`
}

// MpvPlayer drives an mpv process over its JSON IPC socket. mpv owns the
// decoding and the clock; this type only issues commands and reads
// properties back.
type MpvPlayer struct {
	socketPath string
	cmd        *exec.Cmd
	mu         sync.Mutex
	started    bool
	gracePolls int
}

func NewMpvPlayer(socketPath string) ports.PlayerService {
	os.Remove(socketPath)
	return &MpvPlayer{socketPath: socketPath}
}

func (p *MpvPlayer) isProcessRunning() bool {
	return p.cmd != nil && p.cmd.Process != nil
}

func (p *MpvPlayer) startMpvProcess() error {
	if p.isProcessRunning() {
		return nil
	}

	logger.Log.Info().Msg("Starting new mpv process...")
	args := []string{
		"--idle",
		"--input-ipc-server=" + p.socketPath,
		"--no-video",
		"--no-config",
		"--really-quiet",
	}

	p.cmd = exec.Command("mpv", args...)
	p.cmd.Stdout = logger.Log
	p.cmd.Stderr = logger.Log

	if err := p.cmd.Start(); err != nil {
		p.cmd = nil
		return fmt.Errorf("could not start mpv process: %w", err)
	}

	for range socketCheckRetries {
		if _, err := os.Stat(p.socketPath); err == nil {
			logger.Log.Info().Msg("mpv socket detected. Process ready.")
			return nil
		}
		time.Sleep(socketCheckInterval)
	}

	logger.Log.Error().Str("socket", p.socketPath).Msg("Timed out waiting for mpv socket.")
	p.cmd.Process.Kill()
	p.cmd = nil
	return fmt.Errorf("mpv process started but socket did not appear at %s", p.socketPath)
}

func (p *MpvPlayer) sendCommands(cmds ...mpvCommand) ([][]byte, error) {
	conn, err := net.Dial("unix", p.socketPath)
	if err != nil {
		return nil, fmt.Errorf("could not connect to mpv socket: %w", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(socketReadDeadline))

	encoder := json.NewEncoder(conn)
	for _, cmd := range cmds {
		if err := encoder.Encode(cmd); err != nil {
			return nil, fmt.Errorf("error sending mpv command: %w", err)
		}
	}

	var responses [][]byte
	scanner := bufio.NewScanner(conn)
	for len(responses) < len(cmds) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				logger.Log.Error().Err(err).Msg("Error reading from mpv socket")
			}
			break
		}

		line := scanner.Bytes()
		// The socket interleaves replies with event notifications; only
		// lines carrying a request_id answer one of our commands.
		if event, _ := jsonparser.GetString(line, "event"); event != "" {
			continue
		}
		if reqID, err := jsonparser.GetInt(line, "request_id"); err != nil || reqID <= 0 {
			continue
		}
		responses = append(responses, append([]byte(nil), line...))
	}
	return responses, nil
}

func (p *MpvPlayer) Load(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.startMpvProcess(); err != nil {
		return err
	}
	loadFileCmd := mpvCommand{Command: []any{"loadfile", path, "replace"}}
	_, err := p.sendCommands(loadFileCmd)
	return err
}

func (p *MpvPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isProcessRunning() {
		return fmt.Errorf("no mpv process to play with")
	}
	cmd := mpvCommand{Command: []any{"set_property", "pause", false}}
	_, err := p.sendCommands(cmd)
	return err
}

func (p *MpvPlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isProcessRunning() {
		return nil
	}
	cmd := mpvCommand{Command: []any{"cycle", "pause"}}
	_, err := p.sendCommands(cmd)
	return err
}

func (p *MpvPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isProcessRunning() {
		return nil
	}
	cmd := mpvCommand{Command: []any{"stop"}}
	_, err := p.sendCommands(cmd)
	return err
}

// stateFromResponses assembles a PlayerState from raw get_property
// replies. A track counts as playing while mpv reports a position and
// has not reached end of file; a paused track therefore still counts as
// playing, its position simply stops advancing.
func stateFromResponses(responses [][]byte) ports.PlayerState {
	state := ports.PlayerState{}
	havePos := false
	eof := false

	for _, resp := range responses {
		if status, err := jsonparser.GetString(resp, "error"); err != nil || status != "success" {
			continue
		}
		reqID, _ := jsonparser.GetInt(resp, "request_id")
		switch reqID {
		case mpvReqIDPos:
			if pos, err := jsonparser.GetFloat(resp, "data"); err == nil {
				state.Position = time.Duration(pos * float64(time.Second))
				havePos = true
			}
		case mpvReqIDDur:
			if dur, err := jsonparser.GetFloat(resp, "data"); err == nil {
				state.Duration = time.Duration(dur * float64(time.Second))
			}
		case mpvReqIDEOF:
			if reached, err := jsonparser.GetBoolean(resp, "data"); err == nil {
				eof = reached
			}
		}
	}

	state.Playing = havePos && !eof
	return state
}

func (p *MpvPlayer) State() (ports.PlayerState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isProcessRunning() {
		return ports.PlayerState{}, nil
	}

	posCmd := mpvCommand{Command: []any{"get_property", "time-pos"}, RequestID: mpvReqIDPos}
	durCmd := mpvCommand{Command: []any{"get_property", "duration"}, RequestID: mpvReqIDDur}
	eofCmd := mpvCommand{Command: []any{"get_property", "eof-reached"}, RequestID: mpvReqIDEOF}

	responses, err := p.sendCommands(posCmd, durCmd, eofCmd)
	if err != nil {
		return ports.PlayerState{}, err
	}

	return p.applyStartupGrace(stateFromResponses(responses))
}

// applyStartupGrace keeps a just-loaded track counted as playing until
// mpv reports its first position, so callers do not mistake a
// still-loading track for a finished one. The grace is bounded: a track
// that never produces a position (mpv drops an undecodable file with an
// end-file event and goes idle) must surface as a backend failure
// instead of keeping callers polling forever.
func (p *MpvPlayer) applyStartupGrace(state ports.PlayerState) (ports.PlayerState, error) {
	if state.Playing {
		p.started = true
		p.gracePolls = 0
		return state, nil
	}
	if p.started {
		return state, nil
	}

	p.gracePolls++
	if p.gracePolls > startupGracePolls {
		return ports.PlayerState{}, fmt.Errorf("mpv never reported a playback position for the loaded track; is the file decodable?")
	}
	state.Playing = true
	return state, nil
}

func (p *MpvPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isProcessRunning() {
		if err := p.cmd.Process.Kill(); err != nil {
			logger.Log.Error().Err(err).Msg("Error terminating mpv process")
		}
	}
	os.Remove(p.socketPath)
	return nil
}
