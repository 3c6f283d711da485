// Package apperrors defines the structured error types of the arithmetic
// kernel, allowing callers to distinguish parse, configuration, I/O, memory
// and state failures while carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Types that carry a cause implement Unwrap() to support errors.Is() and errors.As().
package apperrors
