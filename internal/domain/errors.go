package domain

import (
	"errors"
	"fmt"
)

// ErrKind is the error taxonomy shared by every component. It is not a Go
// error type itself; components wrap it in Error so callers can classify
// failures without inspecting component-specific sentinels.
type ErrKind string

const (
	// ErrInvalidInput covers shape, length, or precondition failures,
	// including "no requirements extracted".
	ErrInvalidInput ErrKind = "invalid_input"
	// ErrExternalService covers LLM timeout/rate-limit/transport/model
	// errors after internal retries are exhausted.
	ErrExternalService ErrKind = "external_service"
	// ErrMalformedResponse covers an LLM response that fails to parse as
	// the constrained JSON shape after the retry budget.
	ErrMalformedResponse ErrKind = "malformed_response"
	// ErrStorage covers DB connectivity, constraint violations, and
	// transaction rollbacks.
	ErrStorage ErrKind = "storage"
	// ErrInternal covers anything unexpected.
	ErrInternal ErrKind = "internal"
)

// Error is the typed error every component returns or wraps. Callers
// classify it with errors.As, never by string matching.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a kinded error with an optional wrapped cause.
func NewError(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf extracts the ErrKind from err, defaulting to ErrInternal when err
// does not wrap a *Error.
func KindOf(err error) ErrKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrInternal
}
