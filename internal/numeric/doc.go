// Package numeric is the boundary-preserving numeric layer of the kernel.
//
// A Value is a closed tagged union over {I32, I64, F32, F64}. Binary
// operations take the wider of the two tags and widen further when an exact
// integer result does not fit: I32 -> I64 -> F64. An inexact integer
// division yields F32 when both operands fit in 32 bits, F64 otherwise.
//
// The package also carries the digit and base predicates used by the
// classifier, and Int128, the carry-safe working width of the multiplicative
// kernels.
package numeric
