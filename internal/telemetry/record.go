package telemetry

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/vedicmath/internal/classifier"
	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/sutra"
)

// Platform tags the host class a record was produced on. It is recorded
// only; routing never depends on it.
type Platform uint8

const (
	Desktop Platform = iota
	Embedded
	Cloud
	Mobile
)

var platformNames = [...]string{"desktop", "embedded", "cloud", "mobile"}

func (p Platform) String() string {
	if int(p) < len(platformNames) {
		return platformNames[p]
	}
	return fmt.Sprintf("platform(%d)", p)
}

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool { return int(p) < len(platformNames) }

// ParsePlatform parses a platform name, ignoring case.
func ParsePlatform(s string) (Platform, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range platformNames {
		if n == key {
			return Platform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown platform %q", s)
}

// Record describes one dispatched call. Records are values and are never
// modified after creation. B is the zero I32 for unary operations.
type Record struct {
	Timestamp  time.Time
	Op         numeric.OpKind
	A, B       numeric.Value
	Result     numeric.Value
	Sutra      sutra.Sutra
	Confidence float64
	Reason     string
	// Fallback is set when the classifier's choice was not used to produce
	// Result.
	Fallback bool
	Elapsed  time.Duration
	Mode     classifier.Mode
	Platform Platform
}
