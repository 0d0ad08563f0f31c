package llm

import "errors"

var (
	// ErrAuth means the supplied API key was rejected.
	ErrAuth = errors.New("llm authentication failed")
	// ErrRateLimited means the provider refused the request for quota
	// reasons.
	ErrRateLimited = errors.New("llm rate limited")
)
