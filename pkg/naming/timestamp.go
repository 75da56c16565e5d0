package naming

import (
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
)

// NoTimestamp is written instead of a timestamp when the filename carries none.
const NoTimestamp = "None"

const (
	filenameLayout = "01-02-2006 15-04-05"
	isoLayout      = "2006-01-02T15:04:05"
)

// Recordings are named like "09-29-2021 23-50-07.wav"; only the prefix is matched.
var timestampFilenameRegex = regexp.MustCompile(`^(\d{2}-\d{2}-\d{4} \d{2}-\d{2}-\d{2})\.[A-Za-z0-9]+`)

// ParseTimestamp extracts the recording time encoded in the filename.
func ParseTimestamp(filename string) (time.Time, bool) {
	matches := timestampFilenameRegex.FindStringSubmatch(filename)
	if matches == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(filenameLayout, matches[1])
	if err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("invalid filename format, expected 'mm-dd-yyyy hh-mm-ss.wav'")
		return time.Time{}, false
	}
	return t, true
}

func FormatTimestamp(t time.Time, ok bool) string {
	if !ok {
		return NoTimestamp
	}
	return t.Format(isoLayout)
}

// TimestampOrSentinel is ParseTimestamp followed by FormatTimestamp.
func TimestampOrSentinel(filename string) string {
	return FormatTimestamp(ParseTimestamp(filename))
}

// FilenameFor is the recording name ParseTimestamp understands.
func FilenameFor(t time.Time, ext string) string {
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	return t.Format(filenameLayout) + ext
}
