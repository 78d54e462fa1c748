package ui

import (
	"fmt"
	"time"
)

// truncate shortens s to at most length runes; lyrics are UTF-8 and
// cutting on bytes would split multi-byte characters.
func truncate(s string, length int) string {
	if length <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) > length {
		return string(runes[:length-3]) + "..."
	}
	return s
}

// formatClock renders a duration as MM:SS; minutes keep growing past an
// hour, matching how music players label track time.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
