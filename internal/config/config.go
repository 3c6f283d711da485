// Package config resolves the command-line configuration of vedicmath.
//
// Resolution order, highest first: flags, VEDIC_* environment variables,
// the YAML file named by -config (or VEDIC_CONFIG), defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/vedicmath/internal/classifier"
	"github.com/agbru/vedicmath/internal/dispatch"
	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/orchestration"
	"github.com/agbru/vedicmath/internal/sutra"
	"github.com/agbru/vedicmath/internal/telemetry"
	"github.com/agbru/vedicmath/internal/workload"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VEDIC_"

// OpDivMod selects the quotient-and-remainder evaluation, which has no
// OpKind of its own.
const OpDivMod = "divmod"

// Default values of the CLI surface.
const (
	DefaultBenchN          = 10000
	DefaultSeed            = 1
	DefaultMonitorInterval = time.Second
	DefaultTimeout         = 5 * time.Minute
)

// AppConfig is the resolved CLI configuration.
type AppConfig struct {
	Op       string `yaml:"op"`
	A        string `yaml:"a"`
	B        string `yaml:"b"`
	Mode     string `yaml:"mode"`
	Opt      string `yaml:"opt"`
	Platform string `yaml:"platform"`
	Sutra    string `yaml:"sutra"`

	LogCapacity  int  `yaml:"log_capacity"`
	NoLog        bool `yaml:"no_log"`
	CheckKernels bool `yaml:"validate"`

	Interactive bool   `yaml:"interactive"`
	Bench       bool   `yaml:"bench"`
	BenchN      int    `yaml:"bench_n"`
	Workloads   string `yaml:"workloads"`
	Seed        uint64 `yaml:"seed"`

	TelemetryOut    string        `yaml:"telemetry_out"`
	TelemetryDB     string        `yaml:"telemetry_db"`
	MetricsAddr     string        `yaml:"metrics_addr"`
	MonitorInterval time.Duration `yaml:"monitor_interval"`
	Timeout         time.Duration `yaml:"timeout"`

	Quiet   bool `yaml:"quiet"`
	Verbose bool `yaml:"verbose"`
	NoColor bool `yaml:"no_color"`

	ShowVersion bool   `yaml:"-"`
	Completion  string `yaml:"-"`
	ConfigFile  string `yaml:"-"`
}

// Default returns the configuration used when nothing is set.
func Default() AppConfig {
	d := dispatch.DefaultConfig()
	return AppConfig{
		Op:              numeric.Mul.String(),
		Mode:            d.Mode.String(),
		Opt:             d.OptLevel.String(),
		Platform:        d.Platform.String(),
		LogCapacity:     d.LogCapacity,
		CheckKernels:    d.Validate,
		BenchN:          DefaultBenchN,
		Workloads:       "all",
		Seed:            DefaultSeed,
		MonitorInterval: DefaultMonitorInterval,
		Timeout:         DefaultTimeout,
	}
}

// ParseConfig parses args (without the program name) and applies the
// YAML file and environment overrides. Usage goes to errWriter. A
// request for help returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default()
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Evaluates one operation (-op -a -b), runs the REPL (-interactive)\nor benchmarks the workloads (-bench).\n\nFlags:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.Op, "op", cfg.Op, "operation: add, sub, mul, div, mod, pow, square or divmod")
	fs.StringVar(&cfg.A, "a", "", "first operand")
	fs.StringVar(&cfg.B, "b", "", "second operand")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "routing mode: standard, dynamic, optimized, adaptive, specific")
	fs.StringVar(&cfg.Opt, "opt", cfg.Opt, "optimisation level: balanced, size, speed, power")
	fs.StringVar(&cfg.Platform, "platform", cfg.Platform, "platform tag recorded in telemetry")
	fs.StringVar(&cfg.Sutra, "sutra", "", "kernel used by specific mode")
	fs.IntVar(&cfg.LogCapacity, "log-capacity", cfg.LogCapacity, "telemetry log capacity in records")
	fs.BoolVar(&cfg.NoLog, "no-log", false, "disable the telemetry log")
	fs.BoolVar(&cfg.CheckKernels, "validate", cfg.CheckKernels, "check kernel results against straight arithmetic")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "start the interactive REPL")
	fs.BoolVar(&cfg.Bench, "bench", false, "benchmark the workload shapes")
	fs.IntVar(&cfg.BenchN, "bench-n", cfg.BenchN, "cases per workload")
	fs.StringVar(&cfg.Workloads, "workloads", cfg.Workloads, "comma-separated workloads, or all")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "workload generator seed")
	fs.StringVar(&cfg.TelemetryOut, "telemetry-out", "", "write telemetry as CSV to this file")
	fs.StringVar(&cfg.TelemetryDB, "telemetry-db", "", "save telemetry to this SQLite database")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.DurationVar(&cfg.MonitorInterval, "monitor-interval", cfg.MonitorInterval, "resource monitor refresh period in adaptive mode (0 disables)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum execution time")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print bare results")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output and debug logging")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colours")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version information")
	fs.StringVar(&cfg.Completion, "completion", "", "print a completion script for bash, zsh or fish")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML configuration file")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv(EnvPrefix + "CONFIG")
	}
	if cfg.ConfigFile != "" {
		if err := applyFile(&cfg, fs, cfg.ConfigFile); err != nil {
			return cfg, err
		}
	}
	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFile loads path and copies the values it sets into cfg for every
// flag not given on the command line.
func applyFile(cfg *AppConfig, fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.IOError{Op: "read config file", Err: err}
	}
	var file AppConfig
	node := yaml.Node{}
	if err := yaml.Unmarshal(data, &node); err != nil {
		return apperrors.NewConfigError("invalid config file %s: %v", path, err)
	}
	if err := node.Decode(&file); err != nil {
		return apperrors.NewConfigError("invalid config file %s: %v", path, err)
	}
	for _, key := range fileKeys(&node) {
		o, ok := fileOverrides[key]
		if !ok {
			return apperrors.NewConfigError("invalid config file %s: unknown key %q", path, key)
		}
		if !isFlagSet(fs, o.flag) {
			o.apply(cfg, &file)
		}
	}
	return nil
}

// fileKeys lists the top-level mapping keys present in a YAML document.
func fileKeys(doc *yaml.Node) []string {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(m.Content)/2)
	for i := 0; i < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
	}
	return keys
}

type fileOverride struct {
	flag  string
	apply func(dst, src *AppConfig)
}

// fileOverrides maps YAML keys to their flag and copy function.
var fileOverrides = map[string]fileOverride{
	"op":               {"op", func(d, s *AppConfig) { d.Op = s.Op }},
	"a":                {"a", func(d, s *AppConfig) { d.A = s.A }},
	"b":                {"b", func(d, s *AppConfig) { d.B = s.B }},
	"mode":             {"mode", func(d, s *AppConfig) { d.Mode = s.Mode }},
	"opt":              {"opt", func(d, s *AppConfig) { d.Opt = s.Opt }},
	"platform":         {"platform", func(d, s *AppConfig) { d.Platform = s.Platform }},
	"sutra":            {"sutra", func(d, s *AppConfig) { d.Sutra = s.Sutra }},
	"log_capacity":     {"log-capacity", func(d, s *AppConfig) { d.LogCapacity = s.LogCapacity }},
	"no_log":           {"no-log", func(d, s *AppConfig) { d.NoLog = s.NoLog }},
	"validate":         {"validate", func(d, s *AppConfig) { d.CheckKernels = s.CheckKernels }},
	"interactive":      {"interactive", func(d, s *AppConfig) { d.Interactive = s.Interactive }},
	"bench":            {"bench", func(d, s *AppConfig) { d.Bench = s.Bench }},
	"bench_n":          {"bench-n", func(d, s *AppConfig) { d.BenchN = s.BenchN }},
	"workloads":        {"workloads", func(d, s *AppConfig) { d.Workloads = s.Workloads }},
	"seed":             {"seed", func(d, s *AppConfig) { d.Seed = s.Seed }},
	"telemetry_out":    {"telemetry-out", func(d, s *AppConfig) { d.TelemetryOut = s.TelemetryOut }},
	"telemetry_db":     {"telemetry-db", func(d, s *AppConfig) { d.TelemetryDB = s.TelemetryDB }},
	"metrics_addr":     {"metrics-addr", func(d, s *AppConfig) { d.MetricsAddr = s.MetricsAddr }},
	"monitor_interval": {"monitor-interval", func(d, s *AppConfig) { d.MonitorInterval = s.MonitorInterval }},
	"timeout":          {"timeout", func(d, s *AppConfig) { d.Timeout = s.Timeout }},
	"quiet":            {"quiet", func(d, s *AppConfig) { d.Quiet = s.Quiet }},
	"verbose":          {"v", func(d, s *AppConfig) { d.Verbose = s.Verbose }},
	"no_color":         {"no-color", func(d, s *AppConfig) { d.NoColor = s.NoColor }},
}

// Validate checks the names and ranges of the configuration.
func (c AppConfig) Validate() error {
	if c.ShowVersion || c.Completion != "" {
		return nil
	}
	if c.Interactive && c.Bench {
		return apperrors.NewConfigError("-interactive and -bench are mutually exclusive")
	}
	if _, err := c.ToDispatchConfig(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.MonitorInterval < 0 {
		return apperrors.NewConfigError("monitor interval must not be negative, got %s", c.MonitorInterval)
	}
	switch {
	case c.Bench:
		if c.BenchN <= 0 {
			return apperrors.NewConfigError("bench-n must be positive, got %d", c.BenchN)
		}
		if _, err := c.Shapes(); err != nil {
			return err
		}
	case c.Interactive:
	default:
		if _, _, err := c.Operation(); err != nil {
			return err
		}
		if c.A == "" {
			return apperrors.NewConfigError("nothing to do: give -a (and -b), -interactive or -bench")
		}
	}
	return nil
}

// Operation resolves -op. divmod reports true and an unused OpKind.
func (c AppConfig) Operation() (op numeric.OpKind, divmod bool, err error) {
	if strings.EqualFold(strings.TrimSpace(c.Op), OpDivMod) {
		return numeric.Div, true, nil
	}
	op, err = numeric.ParseOpKind(c.Op)
	if err != nil {
		return 0, false, apperrors.NewConfigError("%v", err)
	}
	return op, false, nil
}

// Operands parses -a and -b. -b defaults to zero for unary operations.
func (c AppConfig) Operands(unary bool) (a, b numeric.Value, err error) {
	if a, err = numeric.Parse(c.A); err != nil {
		return a, b, err
	}
	if unary {
		return a, numeric.Value{}, nil
	}
	if c.B == "" {
		return a, b, apperrors.NewConfigError("-op %s needs -b", c.Op)
	}
	b, err = numeric.Parse(c.B)
	return a, b, err
}

// Shapes resolves -workloads.
func (c AppConfig) Shapes() ([]workload.Shape, error) {
	return orchestration.SelectShapes(c.Workloads)
}

// ToDispatchConfig converts the named settings into a dispatcher
// configuration and checks it.
func (c AppConfig) ToDispatchConfig() (dispatch.Config, error) {
	d := dispatch.DefaultConfig()
	var err error
	if d.Mode, err = classifier.ParseMode(c.Mode); err != nil {
		return d, apperrors.NewConfigError("%v", err)
	}
	if d.OptLevel, err = classifier.ParseOptLevel(c.Opt); err != nil {
		return d, apperrors.NewConfigError("%v", err)
	}
	if d.Platform, err = telemetry.ParsePlatform(c.Platform); err != nil {
		return d, apperrors.NewConfigError("%v", err)
	}
	if c.Sutra != "" {
		if d.Sutra, err = sutra.Parse(c.Sutra); err != nil {
			return d, apperrors.NewConfigError("%v", err)
		}
	} else if d.Mode == classifier.Specific {
		return d, apperrors.NewConfigError("specific mode needs -sutra")
	}
	d.Logging = !c.NoLog
	d.Validate = c.CheckKernels
	d.LogCapacity = c.LogCapacity
	d.MonitorInterval = c.MonitorInterval
	if err := d.Check(); err != nil {
		return d, err
	}
	return d, nil
}

// IsHelp reports whether err is the flag package's help request.
func IsHelp(err error) bool { return errors.Is(err, flag.ErrHelp) }
