package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a kernel result disagreed with straight arithmetic.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Sentinel results of the linear-solve and root-search helpers. They are
// computed outcomes, not faults.
var (
	// ErrNoUniqueSolution is returned when a 2x2 system has a zero determinant.
	ErrNoUniqueSolution = errors.New("no unique solution")
	// ErrNoSimpleRoot is returned when no small integer root exists.
	ErrNoSimpleRoot = errors.New("no simple root")
)

// ConfigError represents a configuration error, such as an unknown mode or a
// zero log capacity. It indicates that a dispatcher cannot be initialized.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ParseError reports a number literal that could not be recognized.
type ParseError struct {
	// Input is the offending text, after whitespace trimming.
	Input string
	// Reason is a short explanation.
	Reason string
}

// Error returns a formatted message describing the parse failure.
func (e ParseError) Error() string {
	return fmt.Sprintf("invalid number %q: %s", e.Input, e.Reason)
}

// IOError wraps a failure of an external writer or store.
type IOError struct {
	// Op names the operation that failed (e.g., "export").
	Op string
	// Err is the underlying cause.
	Err error
}

// Error returns the operation and the cause.
func (e IOError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

// Unwrap returns the underlying cause.
func (e IOError) Unwrap() error { return e.Err }

// StateError reports an operation attempted in a lifecycle state that does
// not permit it.
type StateError struct {
	// Op is the rejected operation.
	Op string
	// State is the state the component was in.
	State string
}

// Error returns a formatted message describing the rejected operation.
func (e StateError) Error() string {
	return fmt.Sprintf("%s not permitted in state %s", e.Op, e.State)
}

// TimeoutError represents a run that exceeded its deadline. It captures the
// operation name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// MemoryError represents a memory request the component refuses to satisfy,
// such as a telemetry buffer larger than the configured ceiling.
type MemoryError struct {
	// Requested is the number of bytes the operation needed.
	Requested uint64
	// Limit is the ceiling in bytes.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	return fmt.Sprintf("out of memory: requested %d bytes (limit: %d)", e.Requested, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
