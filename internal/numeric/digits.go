package numeric

import "math/bits"

// MaxDigits is the decimal digit count of the largest int64 magnitude.
const MaxDigits = 19

// pow10 holds 10^0 .. 10^19; 10^19 is the largest power of ten in a uint64.
var pow10 = [...]uint64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000,
	1_000_000_000, 10_000_000_000, 100_000_000_000, 1_000_000_000_000,
	10_000_000_000_000, 100_000_000_000_000, 1_000_000_000_000_000,
	10_000_000_000_000_000, 100_000_000_000_000_000, 1_000_000_000_000_000_000,
	10_000_000_000_000_000_000,
}

// Pow10 returns 10^k for k in [0, 19]. Out-of-range k returns 0.
func Pow10(k int) uint64 {
	if k < 0 || k >= len(pow10) {
		return 0
	}
	return pow10[k]
}

// Abs returns |n| as a uint64, so that Abs(math.MinInt64) is exact.
func Abs(n int64) uint64 { return abs64(n) }

// DigitCount returns the number of decimal digits of |n|; DigitCount(0) is 1.
func DigitCount(n int64) int {
	return digitCountU(abs64(n))
}

func digitCountU(m uint64) int {
	d := 1
	for d < len(pow10) && m >= pow10[d] {
		d++
	}
	return d
}

// NearestPow10 returns the power of ten nearest to |n|. The boundary
// |n| = 5*10^k resolves upward. NearestPow10(0) is 1.
func NearestPow10(n int64) uint64 {
	m := abs64(n)
	if m == 0 {
		return 1
	}
	d := digitCountU(m)
	base := pow10[d-1]
	if m >= 5*base {
		return pow10[d]
	}
	return base
}

// IsCloseToBase reports whether 0.9*b <= |n| <= 1.1*b, evaluated exactly.
func IsCloseToBase(n int64, b uint64) bool {
	if b == 0 {
		return false
	}
	m := abs64(n)
	mh, ml := bits.Mul64(m, 10)
	lh, ll := bits.Mul64(b, 9)
	hh, hl := bits.Mul64(b, 11)
	return !less128(mh, ml, lh, ll) && !less128(hh, hl, mh, ml)
}

func less128(ah, al, bh, bl uint64) bool {
	return ah < bh || (ah == bh && al < bl)
}

// LastDigit returns the last decimal digit of |n|.
func LastDigit(n int64) int64 {
	return int64(abs64(n) % 10)
}

// LastDigitsSumTo10 reports whether the last digits of |a| and |b| sum to 10.
func LastDigitsSumTo10(a, b int64) bool {
	return LastDigit(a)+LastDigit(b) == 10
}

// SamePrefix reports whether a and b agree on everything but the last
// digit, i.e. a/10 == b/10 under truncated division.
func SamePrefix(a, b int64) bool {
	return a/10 == b/10
}

// EndsWith5 reports whether the last digit of |n| is 5.
func EndsWith5(n int64) bool {
	return LastDigit(n) == 5
}

// AllNines reports whether n = 10^k - 1 for some k >= 1, and returns k.
func AllNines(n int64) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	d := DigitCount(n)
	if uint64(n)+1 == pow10[d] {
		return d, true
	}
	return 0, false
}
