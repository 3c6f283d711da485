package sutra

import (
	"math/big"

	apperrors "github.com/agbru/vedicmath/internal/errors"
	"github.com/agbru/vedicmath/internal/numeric"
)

// SolveLinear solves the system
//
//	a1*x + b1*y = c1
//	a2*x + b2*y = c2
//
// by cross multiplication (Sankalana-Vyavakalanabhyam). Integral solutions
// come back under the narrowest integer tag that holds them, other
// solutions as F64. A zero determinant yields ErrNoUniqueSolution.
func SolveLinear(a1, b1, c1, a2, b2, c2 int64) (x, y numeric.Value, err error) {
	det := cross(a1, b2, a2, b1)
	if det.Sign() == 0 {
		return numeric.Value{}, numeric.Value{}, apperrors.ErrNoUniqueSolution
	}
	x = ratio(cross(c1, b2, c2, b1), det)
	y = ratio(cross(a1, c2, a2, c1), det)
	return x, y, nil
}

// cross returns p*q - r*s exactly.
func cross(p, q, r, s int64) *big.Int {
	left := new(big.Int).Mul(big.NewInt(p), big.NewInt(q))
	right := new(big.Int).Mul(big.NewInt(r), big.NewInt(s))
	return left.Sub(left, right)
}

func ratio(num, den *big.Int) numeric.Value {
	q, m := new(big.Int).QuoRem(num, den, new(big.Int))
	if m.Sign() == 0 && q.IsInt64() {
		return numeric.FromInt(q.Int64())
	}
	f, _ := new(big.Rat).SetFrac(num, den).Float64()
	return numeric.FromFloat64(f)
}
