package common

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across all novelbridge packages.
var (
	// ErrNotFound is returned when a requested item doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFormat is returned when XML or shortcode has invalid structure.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrLocked is returned when a .lock sibling file denotes exclusive
	// ownership by the legacy authoring tool.
	ErrLocked = errors.New("yWriter seems to be open. Please close first")

	// ErrParseFailure is returned when every ingest strategy (UTF-8,
	// UTF-16, tolerant tree-parse) has failed.
	ErrParseFailure = errors.New("can not process file")

	// ErrWriteFailure is returned when the final file cannot be written.
	ErrWriteFailure = errors.New("cannot write file")

	// ErrOverwriteFailure is returned when the original file cannot be
	// renamed aside to make way for the replacement.
	ErrOverwriteFailure = errors.New("cannot overwrite file")
)

// Error represents an operation error with context. It is the unified
// error type used across the codec packages.
type Error struct {
	// Package identifies the package where the error originated.
	Package string

	// Op describes the operation being performed when the error occurred.
	Op string

	// Path is the file or resource path involved, if applicable.
	Path string

	// Err is the underlying error that caused this error.
	Err error
}

// Error implements the error interface with a consistent format:
// "package: op [path]: underlying error".
func (e *Error) Error() string {
	var msg string
	if e.Package != "" {
		msg = e.Package + ": "
	}
	if e.Op != "" {
		msg += e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given parameters.
func NewError(pkg, op, path string, err error) *Error {
	return &Error{Package: pkg, Op: op, Path: path, Err: err}
}

// WrapError wraps an existing error with package and operation context.
// If err is nil, returns nil.
func WrapError(pkg, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Package: pkg, Op: op, Err: err}
}

// WrapErrorWithPath wraps an existing error with package, operation, and
// path context. If err is nil, returns nil.
func WrapErrorWithPath(pkg, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Package: pkg, Op: op, Path: path, Err: err}
}

// Errorf creates a new Error with a formatted message as the underlying error.
func Errorf(pkg, op, path, format string, args ...interface{}) *Error {
	return &Error{Package: pkg, Op: op, Path: path, Err: fmt.Errorf(format, args...)}
}

// IsNotFound checks if an error is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsLocked checks if an error is or wraps ErrLocked.
func IsLocked(err error) bool {
	return errors.Is(err, ErrLocked)
}
