// Package apperrors provides tests for application error types.
package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "log capacity must be positive"},
			expected: "log capacity must be positive",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("unknown mode %q", "turbo"),
			expected: `unknown mode "turbo"`,
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestParseError(t *testing.T) {
	t.Parallel()
	var err error = ParseError{Input: "12x", Reason: "unexpected character"}
	if got, want := err.Error(), `invalid number "12x": unexpected character`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	var parseErr ParseError
	if !errors.As(WrapError(err, "parse operand a"), &parseErr) {
		t.Fatal("errors.As should find ParseError through WrapError")
	}
	if parseErr.Input != "12x" {
		t.Errorf("expected Input %q, got %q", "12x", parseErr.Input)
	}
}

func TestIOError(t *testing.T) {
	t.Parallel()
	err := IOError{Op: "export", Err: io.ErrShortWrite}
	if got, want := err.Error(), "export: short write"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, io.ErrShortWrite) {
		t.Error("errors.Is should find the cause through IOError")
	}
}

func TestStateError(t *testing.T) {
	t.Parallel()
	err := StateError{Op: "export", State: "torn down"}
	if got, want := err.Error(), "export not permitted in state torn down"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         TimeoutError
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns formatted message",
			err:      TimeoutError{Operation: "bench", Limit: 30 * time.Second},
			expected: `operation "bench" timed out after 30s`,
		},
		{
			name:     "Error with subsecond limit",
			err:      TimeoutError{Operation: "export", Limit: 500 * time.Millisecond},
			expected: `operation "export" timed out after 500ms`,
		},
		{
			name:        "errors.As works with TimeoutError",
			err:         TimeoutError{Operation: "bench", Limit: 10 * time.Second},
			expected:    `operation "bench" timed out after 10s`,
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var err error = tt.err
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
			if tt.checkTypeAs {
				var timeoutErr TimeoutError
				if !errors.As(err, &timeoutErr) {
					t.Error("expected error to be TimeoutError type")
				}
				if timeoutErr.Limit != tt.err.Limit {
					t.Errorf("expected Limit %v, got %v", tt.err.Limit, timeoutErr.Limit)
				}
			}
		})
	}
}

func TestMemoryError(t *testing.T) {
	t.Parallel()
	var err error = MemoryError{Requested: 4096, Limit: 2048}
	if got, want := err.Error(), "out of memory: requested 4096 bytes (limit: 2048)"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	var memErr MemoryError
	if !errors.As(WrapError(err, "init"), &memErr) {
		t.Fatal("errors.As should find MemoryError through WrapError")
	}
	if memErr.Requested != 4096 {
		t.Errorf("expected Requested 4096, got %d", memErr.Requested)
	}
}

func TestSentinels(t *testing.T) {
	t.Parallel()
	if errors.Is(ErrNoUniqueSolution, ErrNoSimpleRoot) {
		t.Error("sentinels must be distinct")
	}
	if !errors.Is(WrapError(ErrNoSimpleRoot, "shunyam"), ErrNoSimpleRoot) {
		t.Error("wrapped sentinel should match with errors.Is")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("file not found"),
			format:      "failed to load config",
			expectedMsg: "failed to load config: file not found",
		},
		{
			name:        "preserves error chain",
			original:    context.DeadlineExceeded,
			format:      "operation timed out",
			expectedMsg: "operation timed out: context deadline exceeded",
			checkIs:     context.DeadlineExceeded,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
		{
			name:        "supports format arguments",
			original:    errors.New("disk full"),
			format:      "failed to write %s (%d rows)",
			args:        []any{"telemetry.csv", 12},
			expectedMsg: "failed to write telemetry.csv (12 rows): disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)

			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}

			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}

			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}

			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := IsContextError(tt.err)
			if result != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorTimeout":  ExitErrorTimeout,
		"ExitErrorMismatch": ExitErrorMismatch,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorCanceled": ExitErrorCanceled,
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if other, dup := seen[code]; dup {
			t.Errorf("exit code %d shared by %s and %s", code, name, other)
		}
		seen[code] = name
	}
}

type plainColors struct{}

func (plainColors) Yellow() string { return "" }
func (plainColors) Red() string    { return "" }
func (plainColors) Reset() string  { return "" }

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", fmt.Errorf("bench: %w", context.DeadlineExceeded), ExitErrorTimeout},
		{"timeout type", TimeoutError{Operation: "bench", Limit: time.Second}, ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"parse", ParseError{Input: "x", Reason: "bad"}, ExitErrorConfig},
		{"other", errors.New("boom"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("%s: ExitCode = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestHandleRunError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if code := HandleRunError(nil, 0, &buf, plainColors{}); code != ExitSuccess || buf.Len() != 0 {
		t.Errorf("nil error: code %d, output %q", code, buf.String())
	}
	code := HandleRunError(context.DeadlineExceeded, 2*time.Second, &buf, plainColors{})
	if code != ExitErrorTimeout || !strings.Contains(buf.String(), "2s") {
		t.Errorf("timeout: code %d, output %q", code, buf.String())
	}
}
