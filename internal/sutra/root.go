package sutra

import (
	"math"

	apperrors "github.com/agbru/vedicmath/internal/errors"
)

// rootEpsilon is how close to zero a polynomial value must be to count as
// a root.
const rootEpsilon = 1e-6

// rootCandidates lists the integers FindSimpleRoot tries, in order.
var rootCandidates = [...]int64{
	0, 1,
	-10, -9, -8, -7, -6, -5, -4, -3, -2, -1,
	2, 3, 4, 5, 6, 7, 8, 9, 10,
}

// FindSimpleRoot returns the first simple integer root of the polynomial
// whose coefficients are given highest degree first (Shunyam Saamyasamuccaye).
// It tries 0, then 1 (the coefficients sum to zero), then -10..10.
// Polynomials of degree zero, and those with no root among the candidates,
// yield ErrNoSimpleRoot.
func FindSimpleRoot(coeffs []float64) (int64, error) {
	if len(coeffs) < 2 {
		return 0, apperrors.ErrNoSimpleRoot
	}
	for _, x := range rootCandidates {
		if math.Abs(Horner(coeffs, float64(x))) < rootEpsilon {
			return x, nil
		}
	}
	return 0, apperrors.ErrNoSimpleRoot
}

// CommonRoot returns the simple root shared by a numerator and denominator
// polynomial, i.e. the factor (x - root) that cancels from the rational
// expression num/den.
func CommonRoot(num, den []float64) (int64, error) {
	rn, err := FindSimpleRoot(num)
	if err != nil {
		return 0, err
	}
	rd, err := FindSimpleRoot(den)
	if err != nil {
		return 0, err
	}
	if rn != rd {
		return 0, apperrors.ErrNoSimpleRoot
	}
	return rn, nil
}

// Horner evaluates the polynomial with coefficients highest degree first
// at x.
func Horner(coeffs []float64, x float64) float64 {
	var p float64
	for _, c := range coeffs {
		p = p*x + c
	}
	return p
}
