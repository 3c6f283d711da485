package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/vedicmath/internal/cli"
	"github.com/agbru/vedicmath/internal/dispatch"
	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/logging"
	"github.com/agbru/vedicmath/internal/orchestration"
)

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{Quiet: a.Config.Quiet, Verbose: a.Config.Verbose}
}

// runEval evaluates the single operation given by -op, -a and -b.
func (a *Application) runEval(ctx context.Context, env *environment, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}
	op, divmod, err := a.Config.Operation()
	if err != nil {
		return presenter.HandleError(err, 0, a.ErrWriter)
	}
	x, y, err := a.Config.Operands(!divmod && op.IsUnary())
	if err != nil {
		return presenter.HandleError(err, 0, a.ErrWriter)
	}

	last := &cli.LastRecord{}
	d, err := dispatch.New(a.Dispatch, append(env.options(), dispatch.WithObserver(last))...)
	if err != nil {
		return presenter.HandleError(err, 0, a.ErrWriter)
	}
	defer d.Teardown()

	if a.Config.Verbose {
		cli.PrintExecutionConfig(a.Dispatch, out)
	}
	if divmod {
		q, r := d.DivMod(x, y)
		if a.Config.Quiet {
			fmt.Fprintf(out, "%s %s\n", q, r)
		} else {
			fmt.Fprintf(out, "divmod(%s, %s) = (%s, %s)\n", x, y, q, r)
		}
	} else {
		result := d.Evaluate(x, y, op)
		rec, _ := last.Take()
		cli.DisplayResult(out, op, x, y, result, rec, a.outputConfig())
	}

	if err := a.persist(ctx, env, d, "eval", out); err != nil {
		return presenter.HandleError(err, 0, a.ErrWriter)
	}
	return apperrors.ExitSuccess
}

// runREPL runs the interactive session and persists its telemetry on exit.
func (a *Application) runREPL(ctx context.Context, env *environment, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}
	repl, err := cli.NewREPL(a.Dispatch, a.outputConfig(), env.options()...)
	if err != nil {
		return presenter.HandleError(err, 0, a.ErrWriter)
	}
	d := repl.Dispatcher()
	defer d.Teardown()

	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()

	if err := a.persist(ctx, env, d, "repl", out); err != nil {
		return presenter.HandleError(err, 0, a.ErrWriter)
	}
	return apperrors.ExitSuccess
}

// runBench benchmarks the selected workloads concurrently.
func (a *Application) runBench(ctx context.Context, env *environment, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}
	shapes, err := a.Config.Shapes()
	if err != nil {
		return presenter.HandleError(err, 0, a.ErrWriter)
	}
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Dispatch, out)
		cli.PrintBenchmarkPlan(shapes, a.Config.BenchN, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	opts := orchestration.Options{
		N:      a.Config.BenchN,
		Seed:   a.Config.Seed,
		Config: a.Dispatch,
		Logger: env.logger,
	}
	if env.collector != nil {
		opts.Observers = append(opts.Observers, env.collector)
	}
	if env.monitor != nil {
		opts.Monitor = env.monitor
	}
	if env.store != nil {
		opts.Saver = env.store
	}

	start := time.Now()
	results := orchestration.ExecuteBenchmarks(ctx, shapes, opts, reporter, progressOut)
	elapsed := time.Since(start)

	if orchestration.IsCanceled(results) {
		return presenter.HandleError(ctx.Err(), a.Config.Timeout, a.ErrWriter)
	}
	code := orchestration.AnalyzeBenchmarkResults(results, presenter, presenter, out)
	env.logger.Debug("benchmark finished",
		logging.Int("workloads", len(shapes)),
		logging.Int("cases", a.Config.BenchN),
		logging.String("elapsed", elapsed.String()))
	return code
}
