package summarize

import "context"

// Summarizer produces a condensed version of long text using an
// open-source model served over HTTP.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
