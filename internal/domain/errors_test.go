package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jonesrussell/job-importer/internal/domain"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	plain := domain.NewError(domain.KindInvalidURL, "missing scheme")
	if got := plain.Error(); got != "invalid_url: missing scheme" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := domain.WrapError(domain.KindFetchFailed, "fetch url", errors.New("connection refused"))
	if got := wrapped.Error(); !strings.Contains(got, "fetch_failed") || !strings.Contains(got, "connection refused") {
		t.Errorf("Error() = %q, want kind and cause", got)
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{
			name: "direct tagged error",
			err:  domain.NewError(domain.KindSSRFBlocked, "private address"),
			want: domain.KindSSRFBlocked,
		},
		{
			name: "tagged error inside a fmt wrap",
			err:  fmt.Errorf("pipeline: %w", domain.NewError(domain.KindFetchFailed, "timeout")),
			want: domain.KindFetchFailed,
		},
		{
			name: "tagged error wrapping a tagged error keeps the outer kind",
			err: domain.WrapError(domain.KindSSRFBlocked, "redirect hop",
				domain.NewError(domain.KindFetchFailed, "inner")),
			want: domain.KindSSRFBlocked,
		},
		{
			name: "untagged error",
			err:  errors.New("some transport error"),
			want: domain.KindUnknown,
		},
		{
			name: "nil error",
			err:  nil,
			want: domain.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	t.Parallel()

	err := domain.WrapError(domain.KindCleanupFailed, "parse reply", errors.New("unexpected end of JSON input"))
	if !domain.IsKind(err, domain.KindCleanupFailed) {
		t.Error("IsKind() = false for matching kind")
	}
	if domain.IsKind(err, domain.KindFetchFailed) {
		t.Error("IsKind() = true for non-matching kind")
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: i/o timeout")
	err := domain.WrapError(domain.KindFetchFailed, "fetch url", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is() lost the wrapped cause")
	}
}
