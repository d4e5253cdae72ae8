package encoder

import (
	"regexp"
	"strconv"
)

// ffmpeg stats lines look like:
//
//	frame=  123 fps= 45 q=28.0 size=    2048kB time=00:00:04.10 bitrate=...
var frameRe = regexp.MustCompile(`frame=\s*(\d+)`)

// ParseFrameLine extracts the frame counter from an ffmpeg stats line.
// Returns false for lines without a frame counter.
func ParseFrameLine(line string) (int, bool) {
	m := frameRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
