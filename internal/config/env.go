package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// envOverride maps an env key (without the VEDIC_ prefix) to its flag and
// a function that applies the value. Unparsable values are ignored.
type envOverride struct {
	envKey string
	flag   string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of environment overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"LOG_CAPACITY", "log-capacity", func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.LogCapacity = parsed
		}
	}},
	{"BENCH_N", "bench-n", func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.BenchN = parsed
		}
	}},
	{"SEED", "seed", func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", "timeout", func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},
	{"MONITOR_INTERVAL", "monitor-interval", func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.MonitorInterval = parsed
		}
	}},

	// String overrides
	{"MODE", "mode", func(c *AppConfig, v string) { c.Mode = v }},
	{"OPT", "opt", func(c *AppConfig, v string) { c.Opt = v }},
	{"PLATFORM", "platform", func(c *AppConfig, v string) { c.Platform = v }},
	{"SUTRA", "sutra", func(c *AppConfig, v string) { c.Sutra = v }},
	{"WORKLOADS", "workloads", func(c *AppConfig, v string) { c.Workloads = v }},
	{"TELEMETRY_OUT", "telemetry-out", func(c *AppConfig, v string) { c.TelemetryOut = v }},
	{"TELEMETRY_DB", "telemetry-db", func(c *AppConfig, v string) { c.TelemetryDB = v }},
	{"METRICS_ADDR", "metrics-addr", func(c *AppConfig, v string) { c.MetricsAddr = v }},

	// Boolean overrides
	{"NO_LOG", "no-log", func(c *AppConfig, v string) { c.NoLog = parseBoolEnv(v, c.NoLog) }},
	{"VALIDATE", "validate", func(c *AppConfig, v string) { c.CheckKernels = parseBoolEnv(v, c.CheckKernels) }},
	{"QUIET", "quiet", func(c *AppConfig, v string) { c.Quiet = parseBoolEnv(v, c.Quiet) }},
	{"VERBOSE", "v", func(c *AppConfig, v string) { c.Verbose = parseBoolEnv(v, c.Verbose) }},
	{"NO_COLOR", "no-color", func(c *AppConfig, v string) { c.NoColor = parseBoolEnv(v, c.NoColor) }},
}

// parseBoolEnv accepts "true", "1", "yes" and "false", "0", "no",
// ignoring case, and returns defaultVal otherwise.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies VEDIC_* values for every flag not set on the
// command line.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSet(fs, o.flag) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
