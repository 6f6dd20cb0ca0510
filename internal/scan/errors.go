package scan

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures into the closed set the journal and
// notifications are built on.
type Kind int

const (
	// KindParse marks frames that are not JSON or not a scan message.
	KindParse Kind = iota + 1
	// KindSessionMissing marks events discarded because no school id is
	// configured.
	KindSessionMissing
	// KindUnmatched marks events whose employeeNo hit no roster entry.
	KindUnmatched
	// KindSubmission marks backend submission failures.
	KindSubmission
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindSessionMissing:
		return "session_missing"
	case KindUnmatched:
		return "unmatched"
	case KindSubmission:
		return "submission"
	}
	return "unknown"
}

// Error is a kind-tagged pipeline error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// E wraps err with a kind.
func E(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// Errorf builds a kind-tagged error from a format string.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of err, or zero when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
