package ui

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	testCases := []struct {
		d        time.Duration
		expected string
	}{
		{0, "00:00"},
		{65 * time.Second, "01:05"},
		{10*time.Minute + 3*time.Second, "10:03"},
		{90 * time.Minute, "90:00"},
		{-5 * time.Second, "00:00"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, formatClock(tc.d))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hell...", truncate("hello world", 7))
	assert.Equal(t, "...", truncate("hello", 3))
}

func TestTruncateCutsOnRunes(t *testing.T) {
	assert.Equal(t, "歌詞の表示", truncate("歌詞の表示", 5))
	assert.Equal(t, "歌詞...", truncate("歌詞の表示テスト", 5))
	assert.True(t, utf8.ValidString(truncate("ñañañañá", 6)))
}
