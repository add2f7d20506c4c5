package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StorageError reports a failed read or write against the preference store.
type StorageError struct {
	Op  string
	Key string
	Err error
}

// NewStorageError constructs a StorageError for the given operation ("read" or "write").
func NewStorageError(op, key string, err error) error {
	return &StorageError{Op: op, Key: key, Err: err}
}

func (e *StorageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

// Unwrap exposes the root error.
func (e *StorageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SignalError indicates a system appearance probe could not produce an answer.
type SignalError struct {
	Probe   string
	Message string
	Err     error
}

// NewSignalError constructs a SignalError for the named probe.
func NewSignalError(probe string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &SignalError{Probe: probe, Message: message, Err: err}
}

func (e *SignalError) Error() string {
	if e == nil {
		return ""
	}
	if e.Probe != "" {
		return fmt.Sprintf("appearance probe [%s]: %s", e.Probe, e.Message)
	}
	return fmt.Sprintf("appearance probe: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *SignalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
