package ui

import (
	"strings"
	"sync"
	"testing"
)

func TestSetTheme(t *testing.T) {
	prev := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(prev) })

	tests := []struct {
		name string
		want string
	}{
		{"light", "light"},
		{"none", "none"},
		{"bogus", "dark"},
		{"dark", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) -> %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	prev := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(prev) })

	InitTheme(true)
	if ColorsEnabled() || ColorRed() != "" || ColorReset() != "" {
		t.Error("no-color flag should disable escape codes")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if ColorsEnabled() {
		t.Error("NO_COLOR should disable colours")
	}
}

func TestColorsFollowTheme(t *testing.T) {
	prev := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(prev) })

	SetCurrentTheme(DarkTheme)
	if ColorGreen() != DarkTheme.Success || !strings.HasPrefix(ColorBold(), "\033[") {
		t.Error("dark theme codes not returned")
	}
	s := CurrentStyles()
	if got := s.Cell.Render("x"); !strings.Contains(got, "x") {
		t.Errorf("Render = %q", got)
	}
}

// TestThemeConcurrentAccess switches themes while other goroutines read
// colors; run with -race.
func TestThemeConcurrentAccess(t *testing.T) {
	prev := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(prev) })

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if i%2 == 0 {
					SetTheme("light")
					InitTheme(true)
				} else {
					_ = ColorRed() + ColorReset()
					_ = ColorsEnabled()
				}
			}
		}()
	}
	wg.Wait()
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("final theme = %q, want none", got)
	}
}
