package translate

import "context"

// Translator converts text between configured language pairs.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
	// Supports reports whether the source->target pair is configured.
	Supports(source, target string) bool
}
