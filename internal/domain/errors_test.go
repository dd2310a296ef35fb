package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_ErrorString(t *testing.T) {
	withCause := NewError(ErrStorage, "insert failed", errors.New("conn reset"))
	if got := withCause.Error(); got != "storage: insert failed: conn reset" {
		t.Fatalf("unexpected error string: %q", got)
	}

	withoutCause := NewError(ErrInvalidInput, "prompt too short", nil)
	if got := withoutCause.Error(); got != "invalid_input: prompt too short" {
		t.Fatalf("unexpected error string: %q", got)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(ErrExternalService, "call failed", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to see through Unwrap to the cause")
	}
}

func TestKindOf_WrappedError(t *testing.T) {
	inner := NewError(ErrMalformedResponse, "bad json", nil)
	wrapped := fmt.Errorf("controller: %w", inner)
	if got := KindOf(wrapped); got != ErrMalformedResponse {
		t.Fatalf("expected KindOf to see through fmt.Errorf wrapping, got %q", got)
	}
}

func TestKindOf_UntypedErrorDefaultsToInternal(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != ErrInternal {
		t.Fatalf("expected untyped error to classify as internal, got %q", got)
	}
}
