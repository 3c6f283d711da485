package cli

import (
	"os"
	"testing"

	"github.com/agbru/vedicmath/internal/ui"
)

func TestMain(m *testing.M) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	os.Exit(m.Run())
}
