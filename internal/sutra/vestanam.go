package sutra

import "github.com/agbru/vedicmath/internal/numeric"

// osculator returns the Vestanam multiplier for p and whether it is
// negative. A positive osculator f satisfies 10f = 1 (mod p), a negative one
// 10f = -1 (mod p), so that striking off the last digit d of 10q + d and
// forming q + f*d (or |q - f*d|) preserves divisibility by p.
func osculator(p uint64) (f uint64, negative, ok bool) {
	switch p {
	case 7:
		return 2, true, true
	case 13:
		return 4, false, true
	case 17:
		return 5, true, true
	case 19:
		return 2, false, true
	case 23:
		return 7, false, true
	case 29:
		return 3, false, true
	case 31:
		return 3, true, true
	case 37:
		return 11, true, true
	case 41:
		return 4, true, true
	case 43:
		return 13, false, true
	case 47:
		return 14, true, true
	case 53:
		return 16, false, true
	}
	return 0, false, false
}

// IsDivisible reports whether p divides n. 2, 3 and 5 use the digit rules,
// 11 the alternating digit sum, and the primes with a known osculator the
// Vestanam reduction. Any other divisor is answered by the remainder, with
// Standard as the identity used. p = 0 divides nothing.
func IsDivisible(n, p int64) (bool, Sutra) {
	mp := numeric.Abs(p)
	m := numeric.Abs(n)
	switch mp {
	case 0:
		return false, Standard
	case 2:
		return m%10%2 == 0, Vestanam
	case 5:
		d := m % 10
		return d == 0 || d == 5, Vestanam
	case 3:
		return digitSum(m)%3 == 0, Vestanam
	case 11:
		return alternatingSum(m)%11 == 0, Vestanam
	}
	f, negative, ok := osculator(mp)
	if !ok {
		return m%mp == 0, Standard
	}
	return osculate(m, f, negative)%mp == 0, Vestanam
}

// osculate applies the reduction until the value can no longer shrink.
// Below 10(f+1) a step may not decrease the value.
func osculate(m, f uint64, negative bool) uint64 {
	limit := 10 * (f + 1)
	for m >= limit {
		q, d := m/10, m%10
		switch {
		case !negative:
			m = q + f*d
		case f*d > q:
			m = f*d - q
		default:
			m = q - f*d
		}
	}
	return m
}

func digitSum(m uint64) uint64 {
	var s uint64
	for ; m > 0; m /= 10 {
		s += m % 10
	}
	return s
}

// alternatingSum returns the alternating digit sum of m modulo 11, starting
// with a plus sign at the units digit.
func alternatingSum(m uint64) uint64 {
	var odd, even uint64
	for place := 0; m > 0; place++ {
		if place%2 == 0 {
			odd += m % 10
		} else {
			even += m % 10
		}
		m /= 10
	}
	return (odd + 11*20 - even) % 11
}
