package transcript

import (
	"regexp"
	"strings"
)

var (
	reWatchParam = regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{6,})`)
	reShortPath  = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{6,})`)
	reShortsPath = regexp.MustCompile(`/shorts/([A-Za-z0-9_-]{6,})`)
	reBareID     = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ExtractVideoID pulls the video ID out of a YouTube URL. Bare 11-char
// IDs are accepted as-is.
func ExtractVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrInvalidURL
	}

	if m := reWatchParam.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	if m := reShortPath.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	if m := reShortsPath.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	if reBareID.MatchString(input) {
		return input, nil
	}

	return "", ErrInvalidURL
}
