package transcript

import "errors"

var (
	// ErrNotFound means the video does not exist or exposes no captions.
	ErrNotFound = errors.New("no transcript available for video")
	// ErrLanguageUnavailable means the video exists but has no track in
	// the requested language.
	ErrLanguageUnavailable = errors.New("transcript language unavailable")
	// ErrInvalidURL means no video ID could be extracted from the input.
	ErrInvalidURL = errors.New("invalid YouTube URL or video ID")
)
