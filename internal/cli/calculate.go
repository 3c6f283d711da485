package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/vedicmath/internal/classifier"
	"github.com/agbru/vedicmath/internal/dispatch"
	"github.com/agbru/vedicmath/internal/format"
	"github.com/agbru/vedicmath/internal/ui"
	"github.com/agbru/vedicmath/internal/workload"
)

// PrintExecutionConfig displays the dispatcher configuration of a run.
func PrintExecutionConfig(cfg dispatch.Config, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	mode := cfg.Mode.String()
	if cfg.Mode == classifier.Specific {
		mode += " (" + cfg.Sutra.String() + ")"
	}
	fmt.Fprintf(out, "Mode: %s%s%s, optimisation %s%s%s, platform %s%s%s.\n",
		ui.ColorMagenta(), mode, ui.ColorReset(),
		ui.ColorCyan(), cfg.OptLevel, ui.ColorReset(),
		ui.ColorCyan(), cfg.Platform, ui.ColorReset())
	logging := "off"
	if cfg.Logging {
		logging = fmt.Sprintf("%s records", format.FormatNumberString(fmt.Sprint(cfg.LogCapacity)))
	}
	fmt.Fprintf(out, "Telemetry: %s%s%s, validation %s%t%s.\n",
		ui.ColorCyan(), logging, ui.ColorReset(), ui.ColorCyan(), cfg.Validate, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintBenchmarkPlan displays the workloads about to run.
func PrintBenchmarkPlan(shapes []workload.Shape, n int, out io.Writer) {
	names := make([]string, len(shapes))
	for i, s := range shapes {
		names[i] = s.String()
	}
	fmt.Fprintf(out, "Benchmark: %s%s%s cases on each of %s%s%s.\n",
		ui.ColorYellow(), format.FormatNumberString(fmt.Sprint(n)), ui.ColorReset(),
		ui.ColorGreen(), strings.Join(names, ", "), ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
