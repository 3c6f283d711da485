package classifier

import (
	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/sutra"
	"github.com/agbru/vedicmath/internal/sysmon"
)

// Reasons recorded with each decision.
const (
	ReasonStandardMode     = "standard mode"
	ReasonDivZero          = "divzero"
	ReasonFloat            = "float operand"
	ReasonSpecific         = "specific"
	ReasonUnsupported      = "unsupported by specific sutra"
	ReasonZero             = "zero operand"
	ReasonUnit             = "unit operand"
	ReasonSingleDigit      = "single-digit"
	ReasonEndsWith5        = "square ending in 5"
	ReasonComplementary    = "matched prefix, last digits sum to 10"
	ReasonNearBase         = "near base"
	ReasonAllNines         = "all-nines multiplier"
	ReasonProportional     = "proportional scaling to a base"
	ReasonLargeOperands    = "large operands"
	ReasonDefault          = "default"
	ReasonResourcePressure = "resource pressure"
	ReasonSquareNearBase   = "square near base"
	ReasonSingleDivisor    = "single-digit divisor"
	ReasonDivisorNearBase  = "divisor near base"
	ReasonTwoDigitDivisor  = "two-digit divisor"
	ReasonShortDivisor     = "short divisor"
	ReasonLongDivisor      = "long divisor"
	ReasonCompletion       = "operand near base"
	ReasonPower            = "power"
)

// Result is a routing decision. Confidence lies in [0, 1] and is advisory.
type Result struct {
	Sutra      sutra.Sutra
	Confidence float64
	Reason     string
}

// Options parameterise a classification.
type Options struct {
	Mode Mode
	Opt  OptLevel
	// Sutra is the kernel used in Specific mode.
	Sutra sutra.Sutra
	// Snapshot is the resource hint, consulted in Adaptive mode when
	// HasSnapshot is set.
	Snapshot    sysmon.Snapshot
	HasSnapshot bool
}

// stressed reports whether the general-purpose kernels should yield to
// straight arithmetic.
func (o Options) stressed() bool {
	if o.Mode != Adaptive {
		return false
	}
	return o.Opt == Power || (o.HasSnapshot && o.Snapshot.Stressed())
}

func decide(s sutra.Sutra, confidence float64, reason string) Result {
	return Result{Sutra: s, Confidence: confidence, Reason: reason}
}

// Classify returns the kernel for a op b. Pow with an integer exponent of 2
// is classified as Square.
func Classify(a, b numeric.Value, op numeric.OpKind, opts Options) Result {
	if op == numeric.Pow && b.IsInteger() && b.Int64() == 2 {
		op = numeric.Square
	}
	if op == numeric.Square {
		b = a
	}

	if (op == numeric.Div || op == numeric.Mod) && b.Float64() == 0 {
		return decide(sutra.Standard, 1.0, ReasonDivZero)
	}
	if opts.Mode == Standard || !opts.Mode.Valid() {
		return decide(sutra.Standard, 1.0, ReasonStandardMode)
	}
	if !a.IsInteger() || !b.IsInteger() {
		return decide(sutra.Standard, 1.0, ReasonFloat)
	}
	if opts.Mode == Specific {
		if opts.Sutra.Supports(op) {
			return decide(opts.Sutra, 1.0, ReasonSpecific)
		}
		return decide(sutra.Standard, 1.0, ReasonUnsupported)
	}

	x, y := a.Int64(), b.Int64()
	switch op {
	case numeric.Mul:
		return classifyMul(x, y, opts)
	case numeric.Square:
		return classifySquare(x, opts)
	case numeric.Div, numeric.Mod:
		return classifyDiv(x, y, opts)
	case numeric.Add, numeric.Sub:
		return classifySum(x, opts)
	}
	return decide(sutra.Standard, 1.0, ReasonPower)
}

// trivial applies the first three multiplication rules.
func trivial(a, b int64) (Result, bool) {
	switch {
	case a == 0 || b == 0:
		return decide(sutra.Standard, 1.0, ReasonZero), true
	case a == 1 || a == -1 || b == 1 || b == -1:
		return decide(sutra.Standard, 1.0, ReasonUnit), true
	case max(numeric.Abs(a), numeric.Abs(b)) < 10:
		return decide(sutra.Standard, 0.9, ReasonSingleDigit), true
	}
	return Result{}, false
}

func classifyMul(a, b int64, opts Options) Result {
	if r, ok := trivial(a, b); ok {
		return r
	}
	if a == b && a > 0 && numeric.EndsWith5(a) {
		return decide(sutra.Ekadhikena, 0.98, ReasonEndsWith5)
	}
	return classifyMulFrom5(a, b, opts)
}

// classifyMulFrom5 applies multiplication rules 5 through 10.
func classifyMulFrom5(a, b int64, opts Options) Result {
	if sutra.AntyayordasakeApplies(a, b) {
		return decide(sutra.Antyayordasake, 0.90, ReasonComplementary)
	}
	if _, ok := sutra.NikhilamBase(a, b); ok {
		return decide(sutra.Nikhilam, 0.88, ReasonNearBase)
	}
	if _, _, ok := sutra.AllNinesOperand(a, b); ok {
		return decide(sutra.Ekanyunena, 0.85, ReasonAllNines)
	}
	if opts.Mode == Optimized {
		return decide(sutra.Standard, 0.5, ReasonDefault)
	}
	if _, ok := sutra.AnurupyenaScale(a, b); ok {
		return decide(sutra.Anurupyena, 0.70, ReasonProportional)
	}
	if numeric.DigitCount(a) > 2 || numeric.DigitCount(b) > 2 {
		if opts.stressed() {
			return decide(sutra.Standard, 0.6, ReasonResourcePressure)
		}
		return decide(sutra.Urdhva, 0.55, ReasonLargeOperands)
	}
	if opts.stressed() {
		return decide(sutra.Standard, 0.6, ReasonResourcePressure)
	}
	return decide(sutra.Standard, 0.5, ReasonDefault)
}

func classifySquare(n int64, opts Options) Result {
	if r, ok := trivial(n, n); ok {
		return r
	}
	if n > 0 && numeric.EndsWith5(n) {
		return decide(sutra.Ekadhikena, 0.98, ReasonEndsWith5)
	}
	if numeric.IsCloseToBase(n, numeric.NearestPow10(n)) {
		return decide(sutra.Yaavadunam, 0.88, ReasonSquareNearBase)
	}
	return classifyMulFrom5(n, n, opts)
}

func classifyDiv(a, d int64, opts Options) Result {
	md := numeric.Abs(d)
	switch {
	case md < 10:
		return decide(sutra.Standard, 0.9, ReasonSingleDivisor)
	case a == 0:
		return decide(sutra.Standard, 1.0, ReasonZero)
	case numeric.IsCloseToBase(d, numeric.NearestPow10(d)):
		return decide(sutra.NikhilamDiv, 0.85, ReasonDivisorNearBase)
	case md < 100:
		return decide(sutra.Paravartya, 0.75, ReasonTwoDigitDivisor)
	case md < 10_000 && opts.Mode != Optimized:
		return decide(sutra.Dhvajanka, 0.65, ReasonShortDivisor)
	}
	return decide(sutra.Standard, 0.5, ReasonLongDivisor)
}

func classifySum(a int64, opts Options) Result {
	if opts.Mode != Optimized {
		if _, ok := sutra.CompletionBase(a); ok {
			return decide(sutra.Puranapuranabhyam, 0.6, ReasonCompletion)
		}
	}
	return decide(sutra.Standard, 0.5, ReasonDefault)
}
