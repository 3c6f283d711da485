package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	testErr := errors.New("mismatch")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("sutra", "Nikhilam"), "sutra", "Nikhilam"},
		{"Int", Int("capacity", 42), "capacity", 42},
		{"Int64", Int64("a", -9506), "a", int64(-9506)},
		{"Uint64", Uint64("dropped", 12345678901234567890), "dropped", uint64(12345678901234567890)},
		{"Float64", Float64("confidence", 0.88), "confidence", 0.88},
		{"Bool", Bool("validate", true), "validate", true},
		{"Err", Err(testErr), "error", testErr},
		{"Err nil", Err(nil), "error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

// TestNewLogger tests the component-tagged zerolog constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "dispatch")
	logger.Info("ready", Int("capacity", 1024))

	output := buf.String()
	for _, want := range []string{"dispatch", "ready", "1024"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestNewDefaultLogger tests the default logger constructor.
func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

// TestZerologAdapter_Levels tests Debug, Info and Error output.
func TestZerologAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("fallback", String("reason", "fallback: mismatch"))
	logger.Info("teardown", Uint64("dropped", 3))
	logger.Error("export failed", errors.New("disk full"), String("path", "t.csv"))

	output := buf.String()
	for _, want := range []string{
		`"level":"debug"`, "fallback: mismatch",
		`"level":"info"`, `"dropped":3`,
		`"level":"error"`, "disk full", "t.csv",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestZerologAdapter_DebugFiltered checks that the level gate is honoured.
func TestZerologAdapter_DebugFiltered(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line should be filtered at info level, got: %s", buf.String())
	}
}

// TestZerologAdapter_PrintfPrintln tests the printf-style helpers.
func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("evaluated %d calls", 42)
	logger.Println("hello", "world")

	output := buf.String()
	if !strings.Contains(output, "evaluated 42 calls") {
		t.Errorf("Printf should format message, got: %s", output)
	}
	if !strings.Contains(output, "hello world") {
		t.Errorf("Println should join arguments, got: %s", output)
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"interface field", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("test", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

// TestStdLoggerAdapter tests the standard library adapter.
func TestStdLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))

	adapter.Debug("trace", Int("line", 42))
	adapter.Info("user action", String("user", "bob"))
	adapter.Error("db failed", errors.New("timeout"), String("db", "sqlite"))
	adapter.Printf("value is %d", 123)
	adapter.Println("a", "b")

	output := buf.String()
	for _, want := range []string{
		"[DEBUG] trace line=42",
		"[INFO] user action user=bob",
		"[ERROR] db failed error=timeout db=sqlite",
		"value is 123",
		"a b",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestLoggerInterface verifies all adapters implement the Logger interface.
func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
	var _ Logger = Nop
}
