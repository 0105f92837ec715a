package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatusMapping(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Storage("upload failed"), http.StatusInternalServerError},
		{Submission("rejected"), http.StatusInternalServerError},
		{ResultParse("bad payload"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.HTTPStatus != tc.want {
			t.Errorf("%s maps to %d, want %d", tc.err.Kind, tc.err.HTTPStatus, tc.want)
		}
	}
}

func TestFromErrorExtractsWrappedAppError(t *testing.T) {
	inner := NotFound("missing object")
	wrapped := fmt.Errorf("resolving reference: %w", inner)

	got := FromError(wrapped)
	if got.Kind != KindNotFound {
		t.Fatalf("kind %s, want %s", got.Kind, KindNotFound)
	}
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("socket closed")
	got := FromError(cause)
	if got.Kind != KindInternal {
		t.Fatalf("kind %s, want %s", got.Kind, KindInternal)
	}
	if got.Message != "Internal server error" {
		t.Fatalf("unsafe message leaked: %q", got.Message)
	}
	if !errors.Is(got, cause) {
		t.Fatal("cause not preserved for logging")
	}
}

func TestWithCauseUnwraps(t *testing.T) {
	cause := errors.New("dial timeout")
	err := Storage("upload failed").WithCause(cause)
	if !errors.Is(err, cause) {
		t.Fatal("Unwrap chain broken")
	}
}
