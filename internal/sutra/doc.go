// Package sutra implements the specialised arithmetic kernels of the
// kernel, one per Vedic identity.
//
// Every kernel is total. When its precondition does not hold it returns the
// straight arithmetic answer and reports Standard as the identity actually
// used, so callers can record the fallback without re-deriving the answer.
// Multiplicative kernels work in 128 bits and never wrap; division kernels
// work on int64 magnitudes and return the Euclidean quotient and remainder
// (0 <= r < |d|).
//
// None of the fundamental kernels allocate. Urdhva keeps its digit columns
// in fixed-size arrays sized for the 19 decimal digits of an int64.
package sutra
