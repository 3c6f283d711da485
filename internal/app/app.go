package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/vedicmath/internal/cli"
	"github.com/agbru/vedicmath/internal/classifier"
	"github.com/agbru/vedicmath/internal/config"
	"github.com/agbru/vedicmath/internal/dispatch"
	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/logging"
	"github.com/agbru/vedicmath/internal/metrics"
	"github.com/agbru/vedicmath/internal/server"
	"github.com/agbru/vedicmath/internal/sutra"
	"github.com/agbru/vedicmath/internal/sysmon"
	"github.com/agbru/vedicmath/internal/telemetry"
	"github.com/agbru/vedicmath/internal/ui"
)

// Application is one vedicmath invocation.
type Application struct {
	Config    config.AppConfig
	Dispatch  dispatch.Config
	ErrWriter io.Writer
	// In feeds the REPL.
	In     io.Reader
	Logger logging.Logger
}

// New parses args (program name first) into an Application.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "vedicmath"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app := &Application{Config: cfg, ErrWriter: errWriter, In: os.Stdin}
	if !cfg.ShowVersion && cfg.Completion == "" {
		if app.Dispatch, err = cfg.ToDispatchConfig(); err != nil {
			return nil, err
		}
	}
	app.Logger = logging.NewLogger(errWriter, "vedicmath")
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.ShowVersion:
		PrintVersion(out)
		return apperrors.ExitSuccess
	case a.Config.Completion != "":
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logLevel(a.Config))
	ui.InitTheme(a.Config.NoColor)

	env, err := a.setup(ctx)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, 0, a.ErrWriter)
	}
	defer env.close()

	switch {
	case a.Config.Interactive:
		return a.runREPL(ctx, env, out)
	case a.Config.Bench:
		return a.runBench(ctx, env, out)
	}
	return a.runEval(ctx, env, out)
}

func logLevel(cfg config.AppConfig) zerolog.Level {
	switch {
	case cfg.Verbose:
		return zerolog.DebugLevel
	case cfg.Quiet:
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

func (a *Application) runCompletion(out io.Writer) int {
	var names []string
	for _, s := range sutra.All() {
		if s.IsVedic() {
			names = append(names, s.String())
		}
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, names); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// environment holds the collaborators shared by every mode.
type environment struct {
	collector *metrics.Collector
	monitor   *sysmon.Monitor
	store     *telemetry.SQLiteStore
	stopSrv   context.CancelFunc
	srvDone   chan error
	logger    logging.Logger
}

// setup starts the metrics server, the resource monitor and the telemetry
// store the configuration asks for.
func (a *Application) setup(ctx context.Context) (*environment, error) {
	env := &environment{logger: a.Logger}
	if a.Dispatch.Mode == classifier.Adaptive && a.Dispatch.MonitorInterval > 0 {
		env.monitor = sysmon.NewMonitor(a.Dispatch.MonitorInterval)
		env.monitor.Start(ctx)
	}
	if a.Config.TelemetryDB != "" {
		store, err := telemetry.OpenStore(a.Config.TelemetryDB)
		if err != nil {
			env.close()
			return nil, err
		}
		env.store = store
	}
	if a.Config.MetricsAddr != "" {
		env.collector = metrics.NewCollector()
		srv := server.New(a.Config.MetricsAddr, env.collector, a.Logger)
		srvCtx, cancel := context.WithCancel(ctx)
		env.stopSrv = cancel
		env.srvDone = make(chan error, 1)
		go func() { env.srvDone <- srv.Run(srvCtx) }()
	}
	return env, nil
}

// options returns the dispatcher options for this environment.
func (e *environment) options() []dispatch.Option {
	opts := []dispatch.Option{dispatch.WithLogger(e.logger)}
	if e.collector != nil {
		opts = append(opts, dispatch.WithObserver(e.collector))
	}
	if e.monitor != nil {
		opts = append(opts, dispatch.WithMonitor(e.monitor))
	}
	return opts
}

func (e *environment) close() {
	if e.stopSrv != nil {
		e.stopSrv()
		if err := <-e.srvDone; err != nil {
			e.logger.Error("metrics server stopped", err)
		}
	}
	if e.monitor != nil {
		e.monitor.Stop()
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Error("closing telemetry store", err)
		}
	}
}

// persist writes the dispatcher's telemetry to the CSV file and the SQLite
// store the configuration names.
func (a *Application) persist(ctx context.Context, env *environment, d *dispatch.Dispatcher, label string, out io.Writer) error {
	if a.Config.TelemetryOut != "" {
		start := time.Now()
		if err := exportCSV(ctx, d, a.Config.TelemetryOut); err != nil {
			return err
		}
		if !a.Config.Quiet {
			cli.DisplaySaved(out, "Telemetry", a.Config.TelemetryOut, time.Since(start))
		}
	}
	if env.store != nil {
		start := time.Now()
		id, err := d.SaveTelemetry(env.store, label)
		if err != nil {
			return err
		}
		if !a.Config.Quiet {
			cli.DisplaySaved(out, "Session "+id, a.Config.TelemetryDB, time.Since(start))
		}
	}
	return nil
}

