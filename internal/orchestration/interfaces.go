package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/vedicmath/internal/sutra"
	"github.com/agbru/vedicmath/internal/telemetry"
	"github.com/agbru/vedicmath/internal/workload"
)

// WorkloadResult is the outcome of one benchmark workload. It is the shared
// domain type between orchestration and presentation.
type WorkloadResult struct {
	Shape workload.Shape
	// Calls is the number of cases evaluated before completion or
	// cancellation.
	Calls    int
	Duration time.Duration
	// Expected is the target kernel of the shape; HasExpected is false for
	// the uniform workload.
	Expected    sutra.Sutra
	HasExpected bool
	// Hits counts calls answered by Expected.
	Hits int
	// Mismatches counts answers differing from straight arithmetic.
	Mismatches int
	Fallbacks  int
	// Used counts calls per answering kernel.
	Used  [sutra.Count]int
	Stats telemetry.Stats
	// HeapGrowth is the heap allocated while the cases ran.
	HeapGrowth uint64
	// Session is the id under which the telemetry was saved, if it was.
	Session string
	Err     error
}

// HitRate returns Hits / Calls, or zero before any call.
func (r WorkloadResult) HitRate() float64 {
	if r.Calls == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Calls)
}

// ProgressUpdate reports the completion of workload Index in [0, 1].
type ProgressUpdate struct {
	Index int
	Value float64
}

// ProgressReporter displays benchmark progress. DisplayProgress runs in its
// own goroutine until progressChan is closed and then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numWorkloads int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numWorkloads int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numWorkloads int, out io.Writer) {
	f(wg, progressChan, numWorkloads, out)
}

// NullProgressReporter drains the channel without output.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders benchmark results.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per workload.
	PresentComparisonTable(results []WorkloadResult, out io.Writer)
	// PresentUsage displays the per-kernel breakdown of one workload.
	PresentUsage(result WorkloadResult, out io.Writer)
}

// ErrorHandler maps a run error to an exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
