package config

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a configuration failure
type ErrorKind string

const (
	// KindNotFound means the config file could not be opened
	KindNotFound ErrorKind = "not_found"
	// KindParse means the file was read but its content has the wrong shape
	KindParse ErrorKind = "parse"
)

var (
	// ErrNotFound matches any *Error of kind KindNotFound via errors.Is
	ErrNotFound = errors.New("config file not found")
	// ErrParse matches any *Error of kind KindParse via errors.Is
	ErrParse = errors.New("config file malformed")
)

// Error is returned by Load and LoadFs. It always names the file path.
type Error struct {
	Kind  ErrorKind
	Path  string
	Cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("failed to open config file %q: %v", e.Path, e.Cause)
	default:
		return fmt.Sprintf("failed to parse config file %q: %v", e.Path, e.Cause)
	}
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets callers match on the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

func newNotFoundError(path string, cause error) *Error {
	return &Error{Kind: KindNotFound, Path: path, Cause: cause}
}

func newParseError(path string, cause error) *Error {
	return &Error{Kind: KindParse, Path: path, Cause: cause}
}
