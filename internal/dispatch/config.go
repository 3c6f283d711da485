package dispatch

import (
	"time"
	"unsafe"

	"github.com/agbru/vedicmath/internal/classifier"
	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/sutra"
	"github.com/agbru/vedicmath/internal/telemetry"
)

const (
	// DefaultLogCapacity is the telemetry capacity used by DefaultConfig.
	DefaultLogCapacity = 4096
	// MaxLogCapacity bounds the telemetry buffer allocated at init.
	MaxLogCapacity = 1 << 24
)

// recordSize is the in-memory footprint of one telemetry record.
const recordSize = uint64(unsafe.Sizeof(telemetry.Record{}))

// Config is the dispatcher configuration. It is fixed for the duration of
// a call and may only be replaced between calls with SetConfig.
type Config struct {
	Mode     classifier.Mode
	OptLevel classifier.OptLevel
	// Sutra is the kernel Specific mode routes to.
	Sutra sutra.Sutra
	// Logging enables the telemetry log.
	Logging bool
	// Validate re-checks every kernel answer against straight arithmetic.
	Validate bool
	Platform telemetry.Platform
	// LogCapacity is the number of records the log holds before dropping.
	LogCapacity int
	// MonitorInterval is the refresh period of the resource monitor the
	// application attaches in Adaptive mode; zero disables it.
	MonitorInterval time.Duration
}

// DefaultConfig returns an Adaptive configuration with logging and
// validation enabled.
func DefaultConfig() Config {
	return Config{
		Mode:        classifier.Adaptive,
		OptLevel:    classifier.Balanced,
		Logging:     true,
		Validate:    true,
		Platform:    telemetry.Desktop,
		LogCapacity: DefaultLogCapacity,
	}
}

// Check validates c and returns a ConfigError describing the first problem.
func (c Config) Check() error {
	switch {
	case !c.Mode.Valid():
		return apperrors.NewConfigError("unknown mode %d", c.Mode)
	case !c.OptLevel.Valid():
		return apperrors.NewConfigError("unknown optimisation level %d", c.OptLevel)
	case !c.Platform.Valid():
		return apperrors.NewConfigError("unknown platform %d", c.Platform)
	case c.LogCapacity < 1:
		return apperrors.NewConfigError("log capacity must be positive, got %d", c.LogCapacity)
	case c.MonitorInterval < 0:
		return apperrors.NewConfigError("monitor interval must not be negative, got %s", c.MonitorInterval)
	}
	if c.Mode == classifier.Specific && !dispatchable(c.Sutra) {
		return apperrors.NewConfigError("specific mode needs an arithmetic sutra, got %s", c.Sutra)
	}
	return nil
}

// dispatchable reports whether s evaluates at least one operation.
func dispatchable(s sutra.Sutra) bool {
	if !s.IsVedic() {
		return false
	}
	for _, op := range numeric.AllOps() {
		if s.Supports(op) {
			return true
		}
	}
	return false
}

// checkMemory refuses telemetry buffers above MaxLogCapacity.
func (c Config) checkMemory() error {
	if c.LogCapacity > MaxLogCapacity {
		return apperrors.MemoryError{
			Requested: uint64(c.LogCapacity) * recordSize,
			Limit:     MaxLogCapacity * recordSize,
		}
	}
	return nil
}
