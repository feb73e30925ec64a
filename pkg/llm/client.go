// Package llm defines the capability interface the rest of the pipeline
// uses to reach a language model, independent of which provider backs it.
// Translator and specialist both depend on Client, never on
// a concrete provider package, mirroring the teacher's split between an
// interface owned by the caller (pkg/agent/llm_client.go) and an adapter
// owned by the provider (this package, now Anthropic-backed instead of the
// teacher's gRPC-to-a-Python-sidecar transport).
package llm

import (
	"context"
	"errors"
	"time"
)

// ErrorKind classifies why a Complete call failed, so callers can choose a
// deterministic fallback without inspecting provider-specific error types.
type ErrorKind string

const (
	// ErrorUnavailable covers transport failures, missing credentials, and
	// provider-side 5xx responses: the call never produced a response.
	ErrorUnavailable ErrorKind = "unavailable"
	// ErrorTimeout means the deadline passed before the provider replied.
	ErrorTimeout ErrorKind = "timeout"
	// ErrorMalformed means the provider replied, but the content could not
	// be used: empty text, a refusal, or a response that failed a caller's
	// structural check.
	ErrorMalformed ErrorKind = "malformed"
)

// Error wraps a provider failure with its ErrorKind and, where available,
// the underlying error for logging.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Unavailable wraps err as an ErrorUnavailable.
func Unavailable(err error) *Error { return &Error{Kind: ErrorUnavailable, Err: err} }

// Timeout wraps err as an ErrorTimeout.
func Timeout(err error) *Error { return &Error{Kind: ErrorTimeout, Err: err} }

// Malformed wraps err as an ErrorMalformed.
func Malformed(err error) *Error { return &Error{Kind: ErrorMalformed, Err: err} }

// KindOf reports the ErrorKind of err, defaulting to ErrorUnavailable for
// any error that didn't originate from this package (a plain context
// deadline, a dial failure, or similar raw transport error).
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	return ErrorUnavailable
}

// Request is a single completion call: a system prompt establishing the
// model's role and constraints, a user prompt carrying the actual task, and
// a deadline the caller has already computed from its own budget.
type Request struct {
	System   string
	User     string
	Deadline time.Time
}

// Client is the capability every caller in this module depends on. Complete
// returns the model's text response or a typed *Error identifying which of
// the three recoverable failure modes occurred; callers branch on KindOf
// rather than matching concrete provider errors.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
