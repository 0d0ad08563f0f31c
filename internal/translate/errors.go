package translate

import "errors"

var (
	// ErrUnsupportedPair means the source->target direction is not in the
	// configured pair list.
	ErrUnsupportedPair = errors.New("unsupported language pair")
	// ErrModelUnavailable means the translation backend could not serve
	// the request.
	ErrModelUnavailable = errors.New("translation model unavailable")
)
