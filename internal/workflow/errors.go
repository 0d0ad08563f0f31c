package workflow

import (
	"errors"
	"fmt"
)

// Kind classifies a failed transition for the caller.
type Kind string

const (
	// KindInput: bad or missing video identifier, unsupported language,
	// missing parameters. The user can correct these.
	KindInput Kind = "input"
	// KindUpstream: any external provider failure (network, auth, rate
	// limit, model unavailability). Re-triggering may succeed.
	KindUpstream Kind = "upstream"
	// KindState: a task invoked without its dependency satisfied. The
	// eligibility check should make this impossible; treat as a defect.
	KindState Kind = "state"
)

// Error is the only error type transitions return. The wrapped cause is
// preserved for logging; Message is safe to show to the user.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func inputErr(op, msg string, err error) *Error {
	return &Error{Kind: KindInput, Op: op, Message: msg, Err: err}
}

func upstreamErr(op, msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Op: op, Message: msg, Err: err}
}

func stateErr(op, msg string) *Error {
	return &Error{Kind: KindState, Op: op, Message: msg}
}

// KindOf extracts the Kind from any error in the chain, defaulting to
// upstream for unclassified failures.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return KindUpstream
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	var we *Error
	return errors.As(err, &we) && we.Kind == kind
}
