package storage

import (
	"errors"
	"fmt"
)

// FailureKind classifies repository failures. Callers display the message
// and propagate; only NotFound is ever branched on.
type FailureKind int

const (
	ConnectionFailure FailureKind = iota
	IntegrityViolation
	NotFound
)

func (k FailureKind) String() string {
	switch k {
	case ConnectionFailure:
		return "connection failure"
	case IntegrityViolation:
		return "integrity violation"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is the single failure type surfaced by every repository operation.
// It carries a human-readable cause suitable for display.
type Error struct {
	Kind  FailureKind
	Msg   string
	cause error
}

func NewError(kind FailureKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.cause }

// IsNotFound reports whether err is a repository NotFound failure.
func IsNotFound(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == NotFound
}
