package numeric

import (
	"math"
	"math/big"
	"math/bits"
)

// Int128 is a signed 128-bit integer in two's complement. Addition,
// subtraction and multiplication wrap modulo 2^128, which makes them exact
// whenever the mathematical result fits.
type Int128 struct {
	hi, lo uint64
}

// I128 widens an int64.
func I128(v int64) Int128 {
	return Int128{hi: uint64(v >> 63), lo: uint64(v)}
}

// U128 widens a uint64.
func U128(v uint64) Int128 {
	return Int128{lo: v}
}

// MulExact returns the exact product of two int64 values.
func MulExact(a, b int64) Int128 {
	return I128(a).Mul(I128(b))
}

// Add returns x+y.
func (x Int128) Add(y Int128) Int128 {
	lo, c := bits.Add64(x.lo, y.lo, 0)
	hi, _ := bits.Add64(x.hi, y.hi, c)
	return Int128{hi: hi, lo: lo}
}

// Sub returns x-y.
func (x Int128) Sub(y Int128) Int128 {
	lo, b := bits.Sub64(x.lo, y.lo, 0)
	hi, _ := bits.Sub64(x.hi, y.hi, b)
	return Int128{hi: hi, lo: lo}
}

// Neg returns -x.
func (x Int128) Neg() Int128 {
	return Int128{}.Sub(x)
}

// Mul returns x*y.
func (x Int128) Mul(y Int128) Int128 {
	hi, lo := bits.Mul64(x.lo, y.lo)
	hi += x.hi*y.lo + x.lo*y.hi
	return Int128{hi: hi, lo: lo}
}

// Mul64 returns x*v.
func (x Int128) Mul64(v int64) Int128 {
	return x.Mul(I128(v))
}

// Sign returns -1, 0 or +1.
func (x Int128) Sign() int {
	switch {
	case int64(x.hi) < 0:
		return -1
	case x.hi == 0 && x.lo == 0:
		return 0
	default:
		return 1
	}
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Int128) Cmp(y Int128) int {
	if x.hi != y.hi {
		if int64(x.hi) < int64(y.hi) {
			return -1
		}
		return 1
	}
	if x.lo != y.lo {
		if x.lo < y.lo {
			return -1
		}
		return 1
	}
	return 0
}

// IsInt64 reports whether x fits in an int64.
func (x Int128) IsInt64() bool {
	return x.hi == uint64(int64(x.lo)>>63)
}

// IsInt32 reports whether x fits in an int32.
func (x Int128) IsInt32() bool {
	return x.IsInt64() && FitsInt32(int64(x.lo))
}

// Int64 returns the low 64 bits of x as an int64.
func (x Int128) Int64() int64 {
	return int64(x.lo)
}

// QuoRem64 returns the truncated quotient and remainder of x/d. The
// remainder carries the sign of x. d must be non-zero.
func (x Int128) QuoRem64(d int64) (Int128, int64) {
	neg := x.Sign() < 0
	n := x
	if neg {
		n = x.Neg()
	}
	dd := uint64(d)
	if d < 0 {
		dd = uint64(-d)
	}
	q1, r1 := bits.Div64(0, n.hi, dd)
	q0, r := bits.Div64(r1, n.lo, dd)
	q := Int128{hi: q1, lo: q0}
	rem := int64(r)
	if neg != (d < 0) {
		q = q.Neg()
	}
	if neg {
		rem = -rem
	}
	return q, rem
}

// FloorDivMod64 returns q, r with x = q*d + r and r in [0, d) for d > 0.
func (x Int128) FloorDivMod64(d int64) (Int128, int64) {
	q, r := x.QuoRem64(d)
	if r != 0 && (r < 0) != (d < 0) {
		q = q.Sub(I128(1))
		r += d
	}
	return q, r
}

// FloorDivModU64 returns q, r with x = q*d + r and r in [0, d). It accepts
// divisors above math.MaxInt64, such as 10^19. d must be non-zero.
func (x Int128) FloorDivModU64(d uint64) (Int128, uint64) {
	neg := x.Sign() < 0
	n := x
	if neg {
		n = x.Neg()
	}
	q1, r1 := bits.Div64(0, n.hi, d)
	q0, r := bits.Div64(r1, n.lo, d)
	q := Int128{hi: q1, lo: q0}
	if neg {
		q = q.Neg()
		if r != 0 {
			q = q.Sub(I128(1))
			r = d - r
		}
	}
	return q, r
}

// Big returns x as a big.Int.
func (x Int128) Big() *big.Int {
	neg := x.Sign() < 0
	m := x
	if neg {
		m = x.Neg()
	}
	b := new(big.Int).SetUint64(m.hi)
	b.Lsh(b, 64)
	b.Or(b, new(big.Int).SetUint64(m.lo))
	if neg {
		b.Neg(b)
	}
	return b
}

// Float64 returns the float64 nearest to x, ties to even.
func (x Int128) Float64() float64 {
	if x.IsInt64() {
		return float64(int64(x.lo))
	}
	f, _ := new(big.Float).SetInt(x.Big()).Float64()
	return f
}

// String returns x in base 10.
func (x Int128) String() string {
	return x.Big().String()
}

// abs64 returns |v| as a uint64; abs64(math.MinInt64) is 2^63.
func abs64(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

// FitsInt32 reports whether v is representable as an int32.
func FitsInt32(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}
