package storage

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewError(ConnectionFailure, "could not connect to database", cause)

	want := "could not connect to database: dial tcp: connection refused"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}

	bare := NewError(NotFound, "zero rows affected, expected at least one", nil)
	if bare.Error() != "zero rows affected, expected at least one" {
		t.Fatalf("unexpected message: %q", bare.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(IntegrityViolation, "data integrity violation", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}

	wrapped := fmt.Errorf("create expense: %w", err)
	var re *Error
	if !errors.As(wrapped, &re) || re.Kind != IntegrityViolation {
		t.Fatal("expected errors.As to recover the repository error through wrapping")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(NewError(NotFound, "missing", nil)) {
		t.Fatal("expected NotFound to be detected")
	}
	if IsNotFound(NewError(ConnectionFailure, "down", nil)) {
		t.Fatal("ConnectionFailure misreported as NotFound")
	}
	if IsNotFound(errors.New("plain")) {
		t.Fatal("plain error misreported as NotFound")
	}
}

func TestFailureKindString(t *testing.T) {
	cases := map[FailureKind]string{
		ConnectionFailure:  "connection failure",
		IntegrityViolation: "integrity violation",
		NotFound:           "not found",
		FailureKind(99):    "unknown",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Errorf("kind %d: expected %q, got %q", int(kind), want, kind.String())
		}
	}
}
