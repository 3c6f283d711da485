package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/format"
	"github.com/agbru/vedicmath/internal/orchestration"
	"github.com/agbru/vedicmath/internal/sutra"
	"github.com/agbru/vedicmath/internal/ui"
)

// CLIProgressReporter shows a spinner and progress bar on the terminal.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numWorkloads int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkloads, out)
}

// CLIResultPresenter renders benchmark results as lipgloss tables.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays one row per workload.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.WorkloadResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Benchmark Summary ---\n")
	st := ui.CurrentStyles()
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		target, hit := "-", "-"
		if r.HasExpected {
			target = r.Expected.String()
			hit = fmt.Sprintf("%.1f%%", r.HitRate()*100)
		}
		status := "ok"
		switch {
		case r.Err != nil:
			status = "failed: " + r.Err.Error()
		case r.Mismatches > 0:
			status = "MISMATCH"
		}
		rows = append(rows, []string{
			r.Shape.String(),
			format.FormatNumberString(strconv.Itoa(r.Calls)),
			format.FormatExecutionDuration(r.Duration),
			format.FormatRate(r.Calls, r.Duration),
			target,
			hit,
			strconv.Itoa(r.Fallbacks),
			status,
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Headers("Workload", "Calls", "Time", "Rate", "Target", "Hit rate", "Fallbacks", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.Header
			case col == 7 && rows[row][7] != "ok":
				return st.Bad
			case col == 7:
				return st.Good
			case col == 0:
				return st.Accent
			}
			return st.Cell
		})
	fmt.Fprintln(out, t.Render())
}

// PresentUsage displays the per-kernel breakdown of one workload.
func (CLIResultPresenter) PresentUsage(r orchestration.WorkloadResult, out io.Writer) {
	fmt.Fprintf(out, "\n%s%s%s\n", ui.ColorBold(), r.Shape, ui.ColorReset())
	DisplayUsage(r.Used[:], r.Calls, out)
}

// HandleError prints err and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleRunError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider supplies theme colours to apperrors.HandleRunError.
type CLIColorProvider struct{}

func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayUsage renders a bar per kernel that answered at least one call.
// used is indexed by sutra.Sutra.
func DisplayUsage(used []int, total int, out io.Writer) {
	if total == 0 {
		fmt.Fprintln(out, "  no calls")
		return
	}
	for i, n := range used {
		if n == 0 {
			continue
		}
		share := float64(n) / float64(total)
		fmt.Fprintf(out, "  %s%-18s%s %s %5.1f%%  (%d)\n",
			ui.ColorCyan(), sutra.Sutra(i), ui.ColorReset(),
			format.ProgressBar(share, 20), share*100, n)
	}
}
