package orchestration

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/vedicmath/internal/dispatch"
	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/logging"
	"github.com/agbru/vedicmath/internal/metrics"
	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/sutra"
	"github.com/agbru/vedicmath/internal/sysmon"
	"github.com/agbru/vedicmath/internal/telemetry"
	"github.com/agbru/vedicmath/internal/workload"
)

// ProgressBufferMultiplier sizes the progress channel per workload so slow
// displays do not block the workers.
const ProgressBufferMultiplier = 5

// progressSteps is the number of progress updates a workload sends.
const progressSteps = 100

// cancelCheckInterval is the number of calls between context checks.
const cancelCheckInterval = 256

// MinHitRate is the share of calls a targeted workload must route to its
// expected kernel.
const MinHitRate = 0.8

// Options configure a benchmark run.
type Options struct {
	// N is the number of cases per workload.
	N int
	// Seed seeds workload i with Seed+i.
	Seed uint64
	// Config is the dispatcher configuration each workload gets.
	Config dispatch.Config
	// Observers are attached to every dispatcher and must be safe for
	// concurrent use.
	Observers []dispatch.Observer
	// Monitor, when set, is shared by every dispatcher.
	Monitor sysmon.Source
	// Saver, when set, persists each workload's telemetry under its shape
	// name before the dispatcher is torn down.
	Saver  dispatch.Saver
	Logger logging.Logger
}

// SelectShapes returns the workloads named by spec: "all" or a
// comma-separated list of shape names.
func SelectShapes(spec string) ([]workload.Shape, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "all") {
		return workload.Shapes(), nil
	}
	var shapes []workload.Shape
	for _, name := range strings.Split(spec, ",") {
		s, err := workload.ParseShape(name)
		if err != nil {
			return nil, apperrors.NewConfigError("%v", err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// ExecuteBenchmarks runs every shape concurrently and returns one result
// per shape in input order. A canceled context stops the workloads early;
// their results carry the context error.
func ExecuteBenchmarks(ctx context.Context, shapes []workload.Shape, opts Options, reporter ProgressReporter, out io.Writer) []WorkloadResult {
	ctx, span := otel.Tracer("vedicmath/orchestration").Start(ctx, "bench",
		trace.WithAttributes(
			attribute.Int("workloads", len(shapes)),
			attribute.Int("cases", opts.N),
			attribute.String("mode", opts.Config.Mode.String()),
		),
	)
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]WorkloadResult, len(shapes))
	progressChan := make(chan ProgressUpdate, len(shapes)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(shapes), out)

	for i, s := range shapes {
		idx, shape := i, s
		g.Go(func() error {
			results[idx] = runWorkload(ctx, idx, shape, opts, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	for _, r := range results {
		if r.Err != nil {
			span.RecordError(r.Err)
			span.SetStatus(codes.Error, "workload failed")
			break
		}
	}
	return results
}

// usage tallies the answering kernel of every call, logged or not.
type usage struct {
	used     [sutra.Count]int
	fallback int
}

func (u *usage) ObserveRecord(r telemetry.Record) {
	if int(r.Sutra) < sutra.Count {
		u.used[r.Sutra]++
	}
	if r.Fallback {
		u.fallback++
	}
}

func (u *usage) ObserveDrop() {}

func runWorkload(ctx context.Context, idx int, shape workload.Shape, opts Options, progressChan chan<- ProgressUpdate) WorkloadResult {
	_, span := otel.Tracer("vedicmath/orchestration").Start(ctx, "workload",
		trace.WithAttributes(attribute.String("shape", shape.String())))
	defer span.End()

	res := WorkloadResult{Shape: shape}
	res.Expected, res.HasExpected = shape.Expected()

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop
	}
	u := &usage{}
	dopts := []dispatch.Option{dispatch.WithLogger(logger), dispatch.WithObserver(u)}
	for _, o := range opts.Observers {
		dopts = append(dopts, dispatch.WithObserver(o))
	}
	if opts.Monitor != nil {
		dopts = append(dopts, dispatch.WithMonitor(opts.Monitor))
	}
	d, err := dispatch.New(opts.Config, dopts...)
	if err != nil {
		res.Err = err
		span.RecordError(err)
		return res
	}
	defer d.Teardown()

	cases := workload.New(opts.Seed + uint64(idx)).Batch(shape, opts.N)
	step := max(len(cases)/progressSteps, 1)
	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	start := time.Now()
	for i, c := range cases {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				res.Err = err
				break
			}
		}
		got := d.Evaluate(c.A, c.B, c.Op)
		if want := numeric.Apply(c.Op, c.A, c.B); got.Tag() != want.Tag() || !got.Equal(want) {
			res.Mismatches++
			logger.Error("benchmark mismatch", nil,
				logging.String("shape", shape.String()),
				logging.String("op", c.Op.String()),
				logging.String("a", c.A.String()),
				logging.String("b", c.B.String()),
				logging.String("got", got.String()),
				logging.String("want", want.String()))
		}
		res.Calls++
		if (i+1)%step == 0 {
			sendProgress(progressChan, idx, float64(i+1)/float64(len(cases)))
		}
	}
	res.Duration = time.Since(start)
	// Heap growth is process-wide; concurrent workloads share it.
	res.HeapGrowth = mem.Snapshot().Growth(before)
	progressChan <- ProgressUpdate{Index: idx, Value: 1}

	res.Used = u.used
	res.Fallbacks = u.fallback
	if res.HasExpected {
		res.Hits = u.used[res.Expected]
	}
	res.Stats = d.Stats()
	if opts.Saver != nil && res.Err == nil {
		id, err := d.SaveTelemetry(opts.Saver, shape.String())
		if err != nil {
			res.Err = err
			span.RecordError(err)
		} else {
			res.Session = id
		}
	}
	span.SetAttributes(
		attribute.Int("calls", res.Calls),
		attribute.Int("hits", res.Hits),
		attribute.Int("mismatches", res.Mismatches),
		attribute.Int64("heap_growth", int64(res.HeapGrowth)),
	)
	return res
}

// sendProgress drops the update when the channel is full. The final
// update of a workload is sent blocking instead.
func sendProgress(ch chan<- ProgressUpdate, idx int, v float64) {
	select {
	case ch <- ProgressUpdate{Index: idx, Value: v}:
	default:
	}
}

// AnalyzeBenchmarkResults presents the results and returns the exit code:
// success, a mismatch when any answer disagreed with straight arithmetic,
// or the code of the first workload error.
func AnalyzeBenchmarkResults(results []WorkloadResult, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	presenter.PresentComparisonTable(results, out)

	var firstErr error
	var total time.Duration
	mismatches := 0
	for _, r := range results {
		total += r.Duration
		mismatches += r.Mismatches
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
		}
	}
	if firstErr != nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. A workload did not complete.\n")
		return handler.HandleError(firstErr, total, out)
	}
	if mismatches > 0 {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %d answers differ from straight arithmetic.\n", mismatches)
		return apperrors.ExitErrorMismatch
	}

	var weak []string
	for _, r := range results {
		if r.HasExpected && r.HitRate() < MinHitRate {
			weak = append(weak, fmt.Sprintf("%s (%.0f%% %s)", r.Shape, r.HitRate()*100, r.Expected))
		}
	}
	if len(weak) > 0 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All answers exact; low routing share on %s.\n", strings.Join(weak, ", "))
	} else {
		fmt.Fprintf(out, "\nGlobal Status: Success. All answers exact.\n")
	}
	return apperrors.ExitSuccess
}

// IsCanceled reports whether any result stopped on a context error.
func IsCanceled(results []WorkloadResult) bool {
	for _, r := range results {
		if apperrors.IsContextError(r.Err) {
			return true
		}
	}
	return false
}
