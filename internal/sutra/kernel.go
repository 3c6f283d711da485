package sutra

import (
	"math"

	"github.com/agbru/vedicmath/internal/numeric"
)

// ─────────────────────────────────────────────────────────────────────────────
// Kernel table
// ─────────────────────────────────────────────────────────────────────────────

// Product evaluates a*b with kernel s. The second result is the identity
// that produced the answer: s itself, a delegate (Ekanyunena degrades to
// Urdhva), or Standard when the precondition did not hold.
func Product(s Sutra, a, b int64) (numeric.Int128, Sutra) {
	switch s {
	case Nikhilam:
		return NikhilamMul(a, b)
	case Antyayordasake:
		return AntyayordasakeMul(a, b)
	case Ekanyunena:
		return EkanyunenaMul(a, b)
	case Urdhva:
		return UrdhvaMul(a, b)
	case Anurupyena:
		return AnurupyenaMul(a, b)
	case Ekadhikena:
		if a == b {
			return EkadhikenaSquare(a)
		}
	case Yaavadunam:
		if a == b {
			return YaavadunamSquare(a)
		}
	}
	return numeric.MulExact(a, b), Standard
}

// SquareOf evaluates n*n with kernel s.
func SquareOf(s Sutra, n int64) (numeric.Int128, Sutra) {
	return Product(s, n, n)
}

// Quotient evaluates the Euclidean division a = q*d + r with kernel s.
// d = 0 and math.MinInt64 / -1 are not divisions any kernel accepts; they
// come back from Standard as q = r = 0.
func Quotient(s Sutra, a, d int64) (q, r int64, used Sutra) {
	switch s {
	case Paravartya:
		return ParavartyaDiv(a, d)
	case Dhvajanka:
		return DhvajankaDiv(a, d)
	case NikhilamDiv:
		return NikhilamDivide(a, d)
	}
	q, r = straightDiv(a, d)
	return q, r, Standard
}

// Sum evaluates a+b, or a-b when subtract is set, with kernel s.
func Sum(s Sutra, a, b int64, subtract bool) (numeric.Int128, Sutra) {
	if s == Puranapuranabhyam {
		return PuranapuranabhyamAdd(a, b, subtract)
	}
	return straightSum(a, b, subtract), Standard
}

func straightDiv(a, d int64) (int64, int64) {
	if d == 0 || (a == math.MinInt64 && d == -1) {
		return 0, 0
	}
	return numeric.DivModEuclid(a, d)
}

func straightSum(a, b int64, subtract bool) numeric.Int128 {
	if subtract {
		return numeric.I128(a).Sub(numeric.I128(b))
	}
	return numeric.I128(a).Add(numeric.I128(b))
}

// signed applies the sign of a*b to a non-negative magnitude.
func signed(m numeric.Int128, a, b int64) numeric.Int128 {
	if (a < 0) != (b < 0) {
		return m.Neg()
	}
	return m
}

// euclid converts the truncated magnitude division |a| = qm*|d| + rm into
// the Euclidean quotient and remainder of a / d.
func euclid(a, d int64, qm, rm uint64) (int64, int64) {
	q := int64(qm)
	r := int64(rm)
	if (a < 0) != (d < 0) {
		q = -q
	}
	if a < 0 {
		r = -r
	}
	if r < 0 {
		if d > 0 {
			q--
			r += d
		} else {
			q++
			r -= d
		}
	}
	return q, r
}
