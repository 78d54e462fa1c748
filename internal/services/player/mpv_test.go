package player

import (
	"testing"
	"time"

	"github.com/VihaanSom/karaoke-cli/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resp(lines ...string) [][]byte {
	out := make([][]byte, 0, len(lines))
	for _, l := range lines {
		out = append(out, []byte(l))
	}
	return out
}

func TestStateFromResponses(t *testing.T) {
	testCases := []struct {
		name      string
		responses [][]byte
		playing   bool
		position  time.Duration
		duration  time.Duration
	}{
		{
			name: "track mid-playback",
			responses: resp(
				`{"data":12.5,"request_id":1,"error":"success"}`,
				`{"data":180.25,"request_id":2,"error":"success"}`,
				`{"data":false,"request_id":3,"error":"success"}`,
			),
			playing:  true,
			position: 12500 * time.Millisecond,
			duration: 180250 * time.Millisecond,
		},
		{
			name: "end of file reached",
			responses: resp(
				`{"data":181.0,"request_id":1,"error":"success"}`,
				`{"data":181.0,"request_id":2,"error":"success"}`,
				`{"data":true,"request_id":3,"error":"success"}`,
			),
			playing:  false,
			position: 181 * time.Second,
			duration: 181 * time.Second,
		},
		{
			name: "properties unavailable while loading",
			responses: resp(
				`{"data":null,"request_id":1,"error":"property unavailable"}`,
				`{"data":null,"request_id":2,"error":"property unavailable"}`,
				`{"data":null,"request_id":3,"error":"property unavailable"}`,
			),
			playing: false,
		},
		{
			name:      "no responses at all",
			responses: nil,
			playing:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state := stateFromResponses(tc.responses)

			assert.Equal(t, tc.playing, state.Playing)
			assert.Equal(t, tc.position, state.Position)
			assert.Equal(t, tc.duration, state.Duration)
		})
	}
}

func TestStateFromResponsesIgnoresUnknownRequestIDs(t *testing.T) {
	state := stateFromResponses(resp(
		`{"data":42.0,"request_id":99,"error":"success"}`,
	))

	assert.False(t, state.Playing)
	assert.Equal(t, time.Duration(0), state.Position)
}

func TestStartupGraceIsBounded(t *testing.T) {
	p := &MpvPlayer{}

	for i := 0; i < startupGracePolls; i++ {
		state, err := p.applyStartupGrace(ports.PlayerState{})
		require.NoError(t, err)
		assert.True(t, state.Playing, "a still-loading track counts as playing")
	}

	// A track that never produces a position (e.g. an undecodable file)
	// must fail instead of keeping callers polling forever.
	_, err := p.applyStartupGrace(ports.PlayerState{})
	require.Error(t, err)
}

func TestStartupGraceEndsOnFirstPosition(t *testing.T) {
	p := &MpvPlayer{}

	state, err := p.applyStartupGrace(ports.PlayerState{Playing: true, Position: time.Second})
	require.NoError(t, err)
	assert.True(t, state.Playing)

	// Once playback has been observed, end of file passes through as-is.
	state, err = p.applyStartupGrace(ports.PlayerState{Playing: false, Position: 2 * time.Second})
	require.NoError(t, err)
	assert.False(t, state.Playing)
}
