package sutra

import "github.com/agbru/vedicmath/internal/numeric"

const (
	maxDigits  = numeric.MaxDigits + 1
	maxColumns = 2 * maxDigits
)

// UrdhvaMul is the vertical-and-crosswise product. Column p of the product
// collects every a_i*b_j with i+j = p; carries are then propagated from the
// least significant column upward.
func UrdhvaMul(a, b int64) (numeric.Int128, Sutra) {
	var da, db [maxDigits]uint8
	na := splitDigits(numeric.Abs(a), &da)
	nb := splitDigits(numeric.Abs(b), &db)

	var cols [maxColumns]uint64
	for i := 0; i < na; i++ {
		for j := 0; j < nb; j++ {
			cols[i+j] += uint64(da[i]) * uint64(db[j])
		}
	}

	n := na + nb
	var carry uint64
	for p := 0; p < n; p++ {
		v := cols[p] + carry
		cols[p] = v % 10
		carry = v / 10
	}

	var m numeric.Int128
	for p := n - 1; p >= 0; p-- {
		m = m.Mul64(10).Add(numeric.U128(cols[p]))
	}
	return signed(m, a, b), Urdhva
}

// splitDigits stores the decimal digits of m least significant first and
// returns their count.
func splitDigits(m uint64, out *[maxDigits]uint8) int {
	n := 0
	for {
		out[n] = uint8(m % 10)
		n++
		m /= 10
		if m == 0 {
			return n
		}
	}
}
