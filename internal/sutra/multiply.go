package sutra

import "github.com/agbru/vedicmath/internal/numeric"

// EkadhikenaSquare squares n = 10m + 5 as 100*m*(m+1) + 25. The
// precondition is n >= 0 with last digit 5.
func EkadhikenaSquare(n int64) (numeric.Int128, Sutra) {
	if n < 0 || n%10 != 5 {
		return numeric.MulExact(n, n), Standard
	}
	m := n / 10
	left := numeric.I128(m).Mul64(m + 1).Mul64(100)
	return left.Add(numeric.I128(25)), Ekadhikena
}

// NikhilamBase returns the power of ten nearest the larger operand and
// reports whether both operands lie within 10% of it.
func NikhilamBase(a, b int64) (uint64, bool) {
	base := numeric.NearestPow10(larger(a, b))
	return base, numeric.IsCloseToBase(a, base) && numeric.IsCloseToBase(b, base)
}

// NikhilamMul multiplies two operands close to a common base B using the
// deviations da = B-|a| and db = B-|b|:
//
//	|a|*|b| = (|a| - db)*B + da*db
//
// The right part is negative when the operands straddle B and may exceed B
// when the deviations are large; both cases are normalised by one floor
// division of the right part by B, whose quotient is carried (or borrowed)
// into the left part.
func NikhilamMul(a, b int64) (numeric.Int128, Sutra) {
	base, ok := NikhilamBase(a, b)
	if !ok {
		return numeric.MulExact(a, b), Standard
	}
	ma, mb := numeric.U128(numeric.Abs(a)), numeric.U128(numeric.Abs(b))
	bb := numeric.U128(base)
	da, db := bb.Sub(ma), bb.Sub(mb)
	m := compose(ma.Sub(db), da.Mul(db), base)
	return signed(m, a, b), Nikhilam
}

// compose returns left*base + right after carrying floor(right/base) into
// the left part.
func compose(left, right numeric.Int128, base uint64) numeric.Int128 {
	carry, rest := right.FloorDivModU64(base)
	left = left.Add(carry)
	return left.Mul(numeric.U128(base)).Add(numeric.U128(rest))
}

// larger returns whichever operand has the larger magnitude.
func larger(a, b int64) int64 {
	if numeric.Abs(a) >= numeric.Abs(b) {
		return a
	}
	return b
}

// AntyayordasakeApplies reports whether |a| and |b| share every digit but
// the last and their last digits sum to ten.
func AntyayordasakeApplies(a, b int64) bool {
	ma, mb := numeric.Abs(a), numeric.Abs(b)
	return ma/10 == mb/10 && ma%10+mb%10 == 10
}

// AntyayordasakeMul multiplies 10m+x by 10m+y with x+y = 10 as
// m*(m+1)*100 + x*y.
func AntyayordasakeMul(a, b int64) (numeric.Int128, Sutra) {
	if !AntyayordasakeApplies(a, b) {
		return numeric.MulExact(a, b), Standard
	}
	ma, mb := numeric.Abs(a), numeric.Abs(b)
	m := ma / 10
	left := numeric.U128(m).Mul(numeric.U128(m + 1)).Mul64(100)
	right := numeric.U128((ma % 10) * (mb % 10))
	return signed(left.Add(right), a, b), Antyayordasake
}

// AllNinesOperand returns the digit count k of the operand of the form
// 10^k - 1, preferring b, and the other operand.
func AllNinesOperand(a, b int64) (k int, other int64, ok bool) {
	if k, ok := numeric.AllNines(b); ok {
		return k, a, true
	}
	if k, ok := numeric.AllNines(a); ok {
		return k, b, true
	}
	return 0, 0, false
}

// EkanyunenaMul multiplies M by R = 10^k - 1 as (M-1)*10^k + (10^k - M).
// Multiplicands larger than 10^k degrade to Urdhva.
func EkanyunenaMul(a, b int64) (numeric.Int128, Sutra) {
	k, other, ok := AllNinesOperand(a, b)
	if !ok || other == 0 {
		return numeric.MulExact(a, b), Standard
	}
	base := numeric.Pow10(k)
	m := numeric.Abs(other)
	if m > base {
		return UrdhvaMul(a, b)
	}
	left := numeric.U128(m - 1).Mul(numeric.U128(base))
	p := left.Add(numeric.U128(base - m))
	if other < 0 {
		p = p.Neg()
	}
	return p, Ekanyunena
}

// YaavadunamSquare squares n close to a base B with d = B-|n| as
// (|n| - d)*B + d^2.
func YaavadunamSquare(n int64) (numeric.Int128, Sutra) {
	base := numeric.NearestPow10(n)
	if !numeric.IsCloseToBase(n, base) {
		return numeric.MulExact(n, n), Standard
	}
	m := numeric.U128(numeric.Abs(n))
	d := numeric.U128(base).Sub(m)
	return compose(m.Sub(d), d.Mul(d), base), Yaavadunam
}

// anurupyenaScales are the divisors of common bases tried in order.
var anurupyenaScales = [...]int64{2, 4, 5, 8, 10, 20, 25, 50}

// AnurupyenaScale returns the first scale s that divides both operands and
// leaves quotients of at least two digits close to a common base.
func AnurupyenaScale(a, b int64) (int64, bool) {
	for _, s := range anurupyenaScales {
		if a%s != 0 || b%s != 0 {
			continue
		}
		x, y := a/s, b/s
		if numeric.Abs(x) < 10 || numeric.Abs(y) < 10 {
			continue
		}
		if _, ok := NikhilamBase(x, y); ok {
			return s, true
		}
	}
	return 0, false
}

// AnurupyenaMul scales both operands down by s, multiplies the quotients
// with Nikhilam and scales the product back up by s^2.
func AnurupyenaMul(a, b int64) (numeric.Int128, Sutra) {
	s, ok := AnurupyenaScale(a, b)
	if !ok {
		return numeric.MulExact(a, b), Standard
	}
	inner, _ := NikhilamMul(a/s, b/s)
	return inner.Mul64(s * s), Anurupyena
}
