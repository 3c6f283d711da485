package sutra

import "github.com/agbru/vedicmath/internal/numeric"

// completionWindow is the largest distance from its base at which an
// operand is still completed to that base.
const completionWindow = 10

// CompletionBase returns the base B = 10^k nearest |a| and reports whether
// |a| has at least two digits and lies strictly within completionWindow of
// B.
func CompletionBase(a int64) (uint64, bool) {
	m := numeric.Abs(a)
	if m < 10 {
		return 0, false
	}
	base := numeric.NearestPow10(a)
	var gap uint64
	if base >= m {
		gap = base - m
	} else {
		gap = m - base
	}
	return base, gap < completionWindow
}

// PuranapuranabhyamAdd completes a to its base, a = B - delta, performs the
// operation against B and then removes delta again.
func PuranapuranabhyamAdd(a, b int64, subtract bool) (numeric.Int128, Sutra) {
	base, ok := CompletionBase(a)
	if !ok {
		return straightSum(a, b, subtract), Standard
	}
	completed := numeric.U128(base)
	if a < 0 {
		completed = completed.Neg()
	}
	delta := completed.Sub(numeric.I128(a))
	var partial numeric.Int128
	if subtract {
		partial = completed.Sub(numeric.I128(b))
	} else {
		partial = completed.Add(numeric.I128(b))
	}
	return partial.Sub(delta), Puranapuranabhyam
}
