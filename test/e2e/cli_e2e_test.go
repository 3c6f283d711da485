package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and checks its observable behaviour.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e build skipped in short mode")
	}

	tmpDir := t.TempDir()
	binName := "vedicmath"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/vedicmath")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build vedicmath: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantOut  string // case-insensitive substring
		wantCode int
	}{
		{"Near Base", []string{"-a", "98", "-b", "97"}, "", "9506", 0},
		{"Square Ending In 5", []string{"-op", "square", "-a", "125", "-quiet"}, "", "15625", 0},
		{"Float Operand", []string{"-op", "div", "-a", "7.5", "-b", "2.5"}, "", "3.0", 0},
		{"Divide By Zero", []string{"-op", "div", "-a", "1", "-b", "0", "-quiet"}, "", "2147483647", 0},
		{"DivMod", []string{"-op", "divmod", "-a", "1000", "-b", "37"}, "", "(27, 1)", 0},
		{"Specific Mode", []string{"-mode", "specific", "-sutra", "urdhva", "-a", "1234", "-b", "5678"}, "", "urdhva", 0},
		{"Help", []string{"-h"}, "", "usage", 0},
		{"Version Flag", []string{"-version"}, "", "vedicmath", 0},
		{"Invalid Mode", []string{"-mode", "turbo", "-a", "1", "-b", "2"}, "", "unknown mode", 4},
		{"Invalid Number", []string{"-a", "1e", "-b", "2"}, "", "invalid number", 4},
		{"Interactive", []string{"-interactive"}, "132 * 138\nexit\n", "18216", 0},
		{"Bench", []string{"-bench", "-bench-n", "100", "-quiet"}, "", "Global Status: Success", 0},
		{"Completion", []string{"-completion", "fish"}, "", "complete -c vedicmath", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			cmd.Stdin = strings.NewReader(tt.stdin)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
