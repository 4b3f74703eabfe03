package domain

import (
	"errors"
	"fmt"
)

// ErrorKind tags a pipeline failure so callers can map it to behavior
// (HTTP status, metrics label) without matching on message text.
type ErrorKind string

const (
	// KindInvalidURL marks input that is not an absolute http(s) URL.
	KindInvalidURL ErrorKind = "invalid_url"
	// KindSSRFBlocked marks a target that resolved to a disallowed network
	// address, at validation time or on a redirect hop.
	KindSSRFBlocked ErrorKind = "ssrf_blocked"
	// KindFetchFailed marks a transport failure: timeout, DNS error,
	// non-2xx status, oversized body, unusable content type.
	KindFetchFailed ErrorKind = "fetch_failed"
	// KindCleanupFailed marks any failure of the cleanup adapter, including
	// schema validation of its output. Single failure mode.
	KindCleanupFailed ErrorKind = "cleanup_failed"
	// KindUnknown is returned by KindOf for errors outside the taxonomy.
	KindUnknown ErrorKind = "unknown"
)

// Error is the tagged error type used across the pipeline.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a tagged error with no underlying cause.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates a tagged error wrapping an underlying cause.
func WrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the taxonomy kind from an error chain.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
