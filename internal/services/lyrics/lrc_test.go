package lyrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/VihaanSom/karaoke-cli/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWellFormedFile(t *testing.T) {
	input := `[00:01.00] La la la...
[00:05.00] Singing in the terminal
[00:10.00] Code plus Music
`

	lines, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, domain.Lyrics{
		{Timestamp: 1 * time.Second, Text: "La la la..."},
		{Timestamp: 5 * time.Second, Text: "Singing in the terminal"},
		{Timestamp: 10 * time.Second, Text: "Code plus Music"},
	}, lines)
}

func TestParseSkipsMalformedLines(t *testing.T) {
	input := `[00:01.00] first
no brackets here
[99 not a tag] also broken
[00:02.00] second
`

	lines, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, lines, 2, "malformed lines should be skipped, not abort the parse")
	assert.Equal(t, "first", lines[0].Text)
	assert.Equal(t, "second", lines[1].Text)
}

func TestParseEmptyInput(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"only blank lines", "\n\n\n"},
		{"fully malformed", "just\nsome\nwords\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lines, err := Parse(strings.NewReader(tc.input))

			require.NoError(t, err, "an empty result is not an error")
			assert.Empty(t, lines)
		})
	}
}

func TestParseMultipleTimestampsPerLine(t *testing.T) {
	input := "[00:10.00][01:22.00] chorus\n"

	lines, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 10*time.Second, lines[0].Timestamp)
	assert.Equal(t, time.Minute+22*time.Second, lines[1].Timestamp)
	assert.Equal(t, "chorus", lines[0].Text)
	assert.Equal(t, "chorus", lines[1].Text)
}

func TestParseFractionForms(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected time.Duration
	}{
		{"two digit fraction", "[00:01.50] x", 1500 * time.Millisecond},
		{"one digit fraction is tenths", "[00:01.5] x", 1500 * time.Millisecond},
		{"no fraction", "[00:01] x", 1 * time.Second},
		{"minutes carry over", "[02:30.25] x", 2*time.Minute + 30*time.Second + 250*time.Millisecond},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lines, err := Parse(strings.NewReader(tc.input))

			require.NoError(t, err)
			require.Len(t, lines, 1)
			assert.Equal(t, tc.expected, lines[0].Timestamp)
		})
	}
}

func TestParseSortsUnsortedInput(t *testing.T) {
	input := `[00:30.00] third
[00:05.00] first
[00:10.00] second
`

	lines, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "first", lines[0].Text)
	assert.Equal(t, "second", lines[1].Text)
	assert.Equal(t, "third", lines[2].Text)
}

func TestParseIdenticalTimestampsKeepFileOrder(t *testing.T) {
	input := `[00:03.00] sung first
[00:03.00] sung second
`

	lines, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "sung first", lines[0].Text)
	assert.Equal(t, "sung second", lines[1].Text)
}

func TestParseFileReportsMissingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.lrc")

	_, err := ParseFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), path, "the error should name the offending path")
}

func TestParseFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.lrc")
	content := "[00:01.00] hello\n[00:02.00] world\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lines, err := ParseFile(path)

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "hello", lines[0].Text)
}
