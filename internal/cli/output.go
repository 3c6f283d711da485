package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/vedicmath/internal/dispatch"
	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/format"
	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/telemetry"
	"github.com/agbru/vedicmath/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// Quiet prints the bare value only.
	Quiet bool
	// Verbose adds the routing reason and confidence.
	Verbose bool
}

// FormatQuietResult formats a value for scripting.
func FormatQuietResult(v numeric.Value) string {
	return v.String()
}

// FormatExpression renders "a op b", or "a op" for unary operations.
func FormatExpression(op numeric.OpKind, a, b numeric.Value) string {
	if op.IsUnary() {
		return fmt.Sprintf("%s %s", op, a)
	}
	return fmt.Sprintf("%s %s %s", a, op, b)
}

// DisplayResult prints a result and, when rec is non-nil, the kernel that
// produced it.
func DisplayResult(out io.Writer, op numeric.OpKind, a, b, result numeric.Value, rec *telemetry.Record, cfg OutputConfig) {
	if cfg.Quiet {
		fmt.Fprintln(out, FormatQuietResult(result))
		return
	}
	fmt.Fprintf(out, "%s = %s%s%s %s(%s)%s\n",
		FormatExpression(op, a, b),
		ui.ColorBold(), result, ui.ColorReset(),
		ui.ColorCyan(), result.Tag(), ui.ColorReset())
	if rec == nil {
		return
	}
	marker := ui.ColorGreen()
	if rec.Fallback {
		marker = ui.ColorYellow()
	}
	fmt.Fprintf(out, "  sutra: %s%s%s in %s\n", marker, rec.Sutra, ui.ColorReset(), format.FormatExecutionDuration(rec.Elapsed))
	if cfg.Verbose {
		fmt.Fprintf(out, "  reason: %s (confidence %.2f)\n", rec.Reason, rec.Confidence)
	}
}

// DisplayStats renders the telemetry summary as a table.
func DisplayStats(out io.Writer, s telemetry.Stats) {
	fmt.Fprintf(out, "Records: %s%d%s of %d, vedic %d, fallbacks %d",
		ui.ColorBold(), s.Total, ui.ColorReset(), s.Capacity, s.Vedic, s.Fallbacks)
	if s.Truncated() {
		fmt.Fprintf(out, ", %sdropped %d%s", ui.ColorYellow(), s.Dropped, ui.ColorReset())
	}
	fmt.Fprintln(out)

	used := s.Used()
	if len(used) == 0 {
		return
	}
	st := ui.CurrentStyles()
	rows := make([][]string, 0, len(used))
	for _, ps := range used {
		rows = append(rows, []string{
			ps.Sutra.String(),
			strconv.Itoa(ps.Count),
			fmt.Sprintf("%.1f%%", ps.Share*100),
			format.FormatExecutionDuration(ps.MeanElapsed),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers("Sutra", "Calls", "Share", "Mean").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			if col == 0 {
				return st.Accent
			}
			return st.Cell
		})
	fmt.Fprintln(out, t.Render())
}

// WriteTelemetryToFile exports the dispatcher's log as CSV to path,
// creating parent directories as needed.
func WriteTelemetryToFile(d *dispatch.Dispatcher, path string) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.IOError{Op: "create telemetry directory", Err: err}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return apperrors.IOError{Op: "create telemetry file", Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperrors.IOError{Op: "close telemetry file", Err: cerr}
		}
	}()
	return d.ExportTelemetry(f)
}

// DisplaySaved confirms a written telemetry artifact.
func DisplaySaved(out io.Writer, what, where string, took time.Duration) {
	fmt.Fprintf(out, "%s%s saved to %s%s%s (%s)\n",
		ui.ColorGreen(), what, ui.ColorCyan(), where, ui.ColorReset(), format.FormatExecutionDuration(took))
}
