package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsMatchSentinels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		err      error
		sentinel error
		status   int
		code     string
	}{
		{"not found", NotFound("recipe", 7), ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"invariant", Invariant("ingredient %d in use", 3), ErrInvariantViolation, http.StatusConflict, CodeInvariant},
		{"validation", Validation("grams must be positive"), ErrValidation, http.StatusBadRequest, CodeValidation},
		{"conflict", Conflict("name taken"), ErrConflict, http.StatusConflict, CodeConflict},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Fatalf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}
			if got := StatusOf(wrapped); got != tt.status {
				t.Fatalf("StatusOf = %d, want %d", got, tt.status)
			}
			if got := CodeOf(wrapped); got != tt.code {
				t.Fatalf("CodeOf = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	t.Parallel()

	if got, want := NotFound("ingredient", 12).Error(), "not found: no ingredient with id 12"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestPlainErrorsDefaultToInternal(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	if got := StatusOf(err); got != http.StatusInternalServerError {
		t.Fatalf("StatusOf = %d, want 500", got)
	}
	if got := CodeOf(err); got != CodeInternal {
		t.Fatalf("CodeOf = %q, want %q", got, CodeInternal)
	}
}
