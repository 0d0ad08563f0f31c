package tts

import "errors"

var (
	// ErrAuth means the supplied API key was rejected.
	ErrAuth = errors.New("tts authentication failed")
	// ErrUpstream means the speech service failed to produce audio.
	ErrUpstream = errors.New("tts service error")
)
