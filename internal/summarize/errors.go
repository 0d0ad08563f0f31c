package summarize

import "errors"

var (
	// ErrModelUnavailable means the inference endpoint could not serve
	// the request (loading, overloaded, or down).
	ErrModelUnavailable = errors.New("summarization model unavailable")
	// ErrInputTooLong means the input exceeds the configured word limit.
	ErrInputTooLong = errors.New("input too long to summarize")
)
