package sutra

import (
	"math"

	"github.com/agbru/vedicmath/internal/numeric"
)

// maxFlagDigits bounds the divisor length Dhvajanka accepts so that the
// working remainder times ten stays inside a uint64.
const maxFlagDigits = 18

// ParavartyaDiv divides by a two-digit divisor D = t*10 + u. Each quotient
// digit k is the largest with k*D <= the partial remainder; k*t comes off
// the remainder's upper position and the transposed k*u is taken from the
// next dividend digit before it is brought down.
func ParavartyaDiv(a, d int64) (q, r int64, used Sutra) {
	md := numeric.Abs(d)
	if md < 10 || md > 99 {
		q, r = straightDiv(a, d)
		return q, r, Standard
	}
	t := int64(md / 10)
	u := int64(md % 10)

	n := numeric.Abs(a)
	var quo uint64
	var rem int64
	for p := numeric.DigitCount(a) - 1; p >= 0; p-- {
		k, next, _ := transpose(rem, int64(n/numeric.Pow10(p)%10), t, u)
		rem = next
		quo = quo*10 + uint64(k)
	}
	q, r = euclid(a, d, quo, uint64(rem))
	return q, r, Paravartya
}

// transpose performs one Paravartya column. rem is the partial remainder
// above the column and digit the dividend digit being brought down. It
// returns the quotient digit, the new remainder and whether the corrected
// digit went negative and borrowed from the upper position.
func transpose(rem, digit, t, u int64) (k, next int64, borrow bool) {
	d := t*10 + u
	partial := rem*10 + digit
	k = min(partial/(t*10), 9)
	for k*d > partial {
		k--
	}
	upper := rem - k*t
	lower := digit - k*u
	return k, upper*10 + lower, lower < 0
}

// DhvajankaDiv divides by the flag: D = f*10^(k-1) + rest with f the leading
// digit. Each quotient digit is first estimated against f*10^(k-1) alone and
// then corrected downward by the rest term. A digit that needs more than k
// corrections abandons the kernel for plain long division.
func DhvajankaDiv(a, d int64) (q, r int64, used Sutra) {
	md := numeric.Abs(d)
	k := numeric.DigitCount(d)
	if md < 10 || k > maxFlagDigits {
		q, r = straightDiv(a, d)
		return q, r, Standard
	}
	place := numeric.Pow10(k - 1)
	flag := md / place * place
	rest := md - flag

	n := numeric.Abs(a)
	var quo, rem uint64
	for p := numeric.DigitCount(a) - 1; p >= 0; p-- {
		rem = rem*10 + n/numeric.Pow10(p)%10
		digit := min(rem/flag, 9)
		for corrections := 0; digit*md > rem; corrections++ {
			if corrections == k {
				q, r = straightDiv(a, d)
				return q, r, Standard
			}
			digit--
		}
		rem = rem - digit*flag - digit*rest
		quo = quo*10 + digit
	}
	q, r = euclid(a, d, quo, rem)
	return q, r, Dhvajanka
}

// NikhilamDivide divides by D close to a base B with complement c = B - D.
// Each round splits the running remainder into t*B + s, adds t to the
// quotient and replaces t*B by the correction t*c, since t*B = t*D + t*c.
// The remainder shrinks by roughly a factor of ten per round; a final
// reduction brings it into [0, D).
func NikhilamDivide(a, d int64) (q, r int64, used Sutra) {
	md := numeric.Abs(d)
	base := numeric.NearestPow10(d)
	if a == math.MinInt64 || md < 2 || !numeric.IsCloseToBase(d, base) {
		q, r = straightDiv(a, d)
		return q, r, Standard
	}

	n := int64(numeric.Abs(a))
	m := int64(md)
	var quo int64
	rem := n
	if base <= math.MaxInt64 {
		b := int64(base)
		c := b - m
		// A divisor above its base makes c negative and lets a round
		// overshoot below zero. The next round lands in [0, D), so the
		// loop stops on any remainder below max(B, D).
		done := max(b, m)
		for rem >= done || rem < 0 {
			t := rem / b
			if rem%b != 0 && rem < 0 {
				t--
			}
			quo += t
			rem = rem - t*b + t*c
		}
	}
	for rem < 0 {
		quo--
		rem += m
	}
	for rem >= m {
		quo++
		rem -= m
	}
	q, r = euclid(a, d, uint64(quo), uint64(rem))
	return q, r, NikhilamDiv
}
