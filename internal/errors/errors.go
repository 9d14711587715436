// Package errors provides structured error types for codecheck.
// Every failure carries the operation that produced it and a Kind that
// tells the UI how to surface it.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork      // transport failure: unreachable, aborted, timed out
	KindStatus       // endpoint reachable but answered with a non-success status
	KindPayload      // response decoded but had an unexpected shape
	KindInvalid      // client-side validation failure, no request issued
	KindConfig
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindStatus:
		return "unexpected status"
	case KindPayload:
		return "unexpected payload"
	case KindInvalid:
		return "invalid"
	case KindConfig:
		return "configuration error"
	case KindIO:
		return "I/O error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for codecheck.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// GetKind returns the Kind of the outermost *Error in the chain that has a
// Kind set.
func GetKind(err error) Kind {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return KindUnknown
		}
		if e.Kind != KindUnknown {
			return e.Kind
		}
		err = e.Err
	}
	return KindUnknown
}

// As is errors.As, re-exported so callers need only one errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Detail returns the innermost message of err without the Op/context
// prefixes, for use in short user-facing messages.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	for {
		var e *Error
		if !errors.As(err, &e) || e.Err == nil {
			return err.Error()
		}
		err = e.Err
	}
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// EmptySubmission is returned when the code buffer is empty at submit time.
func EmptySubmission() error {
	return E(Op("submit.Validate"), KindInvalid, "Please enter some code to check.")
}
