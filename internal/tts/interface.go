package tts

import "context"

// Synthesizer turns text into spoken audio. The API key comes from the
// session and is passed per call.
type Synthesizer interface {
	Synthesize(ctx context.Context, apiKey, text string) ([]byte, error)
}
