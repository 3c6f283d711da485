package classifier

import (
	"fmt"
	"strings"
)

// Mode selects the routing policy.
type Mode uint8

const (
	// Standard routes every call to straight arithmetic.
	Standard Mode = iota
	// Dynamic applies the pattern rules without the resource hint.
	Dynamic
	// Optimized applies only the cheap rules (trivial, Ekadhikena,
	// Antyayordasake, Nikhilam, Ekanyunena).
	Optimized
	// Adaptive applies the pattern rules and the resource tie-break.
	Adaptive
	// Specific routes every compatible call to one named kernel.
	Specific
)

var modeNames = [...]string{"standard", "dynamic", "optimized", "adaptive", "specific"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", m)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return int(m) < len(modeNames) }

// ParseMode parses a mode name, ignoring case.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == key {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// OptLevel biases tie-breaks. It has no effect on results.
type OptLevel uint8

const (
	Balanced OptLevel = iota
	Size
	Speed
	// Power behaves as if the host were permanently under resource
	// pressure.
	Power
)

var optNames = [...]string{"balanced", "size", "speed", "power"}

func (o OptLevel) String() string {
	if int(o) < len(optNames) {
		return optNames[o]
	}
	return fmt.Sprintf("opt(%d)", o)
}

// Valid reports whether o is a known level.
func (o OptLevel) Valid() bool { return int(o) < len(optNames) }

// ParseOptLevel parses an optimisation level name, ignoring case.
func ParseOptLevel(s string) (OptLevel, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range optNames {
		if n == key {
			return OptLevel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown optimisation level %q", s)
}
