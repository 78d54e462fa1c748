package lyrics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/VihaanSom/karaoke-cli/internal/domain"
	"github.com/VihaanSom/karaoke-cli/internal/logger"
)

// timestampTag matches an LRC time tag like [01:23.45]. The fraction is
// optional and may be one digit (tenths) or two (hundredths).
var timestampTag = regexp.MustCompile(`\[(\d{2}):(\d{2})(?:\.(\d{1,2}))?\]`)

// ParseFile loads and parses an .lrc file. Open and read failures are
// reported with the offending path; everything else is handled by Parse.
func ParseFile(path string) (domain.Lyrics, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lyrics file %s: %w", path, err)
	}
	defer file.Close()

	parsed, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("read lyrics file %s: %w", path, err)
	}
	return parsed, nil
}

// Parse converts LRC text into a timestamp-sorted lyric sequence. A line
// may carry several time tags, in which case its text is scheduled once
// per tag. Lines without a valid tag are skipped; a corrupt line never
// aborts the parse. Empty or fully-malformed input yields an empty
// sequence, not an error.
func Parse(r io.Reader) (domain.Lyrics, error) {
	lines := domain.Lyrics{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		tags := timestampTag.FindAllStringSubmatch(raw, -1)
		if len(tags) == 0 {
			if strings.TrimSpace(raw) != "" {
				logger.Log.Warn().Int("line", lineNo).Str("text", raw).Msg("Skipping lyric line without a valid timestamp")
			}
			continue
		}

		text := strings.TrimSpace(timestampTag.ReplaceAllString(raw, ""))
		for _, tag := range tags {
			lines = append(lines, domain.LyricLine{Timestamp: tagDuration(tag), Text: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	lines.Sort()
	return lines, nil
}

func tagDuration(tag []string) time.Duration {
	minutes, _ := strconv.Atoi(tag[1])
	seconds, _ := strconv.Atoi(tag[2])
	d := time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second

	frac, _ := strconv.Atoi(tag[3])
	switch len(tag[3]) {
	case 1:
		d += time.Duration(frac) * 100 * time.Millisecond
	case 2:
		d += time.Duration(frac) * 10 * time.Millisecond
	}
	return d
}
