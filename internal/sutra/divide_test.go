package sutra

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/vedicmath/internal/numeric"
)

func TestDivisionKernels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		sutra Sutra
		a, d  int64
		q, r  int64
		used  Sutra
	}{
		{"nikhilam div", NikhilamDiv, 9506, 97, 98, 0, NikhilamDiv},
		{"nikhilam div remainder", NikhilamDiv, 1234, 98, 12, 58, NikhilamDiv},
		{"nikhilam div above base", NikhilamDiv, 12345, 104, 118, 73, NikhilamDiv},
		{"nikhilam div thousands", NikhilamDiv, 987654321, 998, 989633, 587, NikhilamDiv},
		{"nikhilam div negative dividend", NikhilamDiv, -9507, 97, -99, 96, NikhilamDiv},
		{"nikhilam div negative divisor", NikhilamDiv, 9507, -97, -98, 1, NikhilamDiv},
		{"nikhilam div large", NikhilamDiv, math.MaxInt64, 110, 83848836698679780, 7, NikhilamDiv},
		{"nikhilam div dividend below divisor above base", NikhilamDiv, 100, 101, 0, 100, NikhilamDiv},
		{"nikhilam div overshoot both negative", NikhilamDiv, -836, -105, 8, 4, NikhilamDiv},
		{"nikhilam div overshoot negative divisor", NikhilamDiv, 20666, -106, -194, 102, NikhilamDiv},
		{"nikhilam div overshoot large negative", NikhilamDiv, -97236, -104, 935, 4, NikhilamDiv},
		{"nikhilam div far", NikhilamDiv, 1234, 50, 24, 34, Standard},
		{"nikhilam div min", NikhilamDiv, math.MinInt64, 100, -92233720368547759, 92, Standard},
		{"paravartya", Paravartya, 1234, 23, 53, 15, Paravartya},
		{"paravartya negative dividend", Paravartya, -1234, 23, -54, 8, Paravartya},
		{"paravartya negative divisor", Paravartya, 1234, -23, -53, 15, Paravartya},
		{"paravartya both negative", Paravartya, -1234, -23, 54, 8, Paravartya},
		{"paravartya min", Paravartya, math.MinInt64, 97, -95086309658296658, 18, Paravartya},
		{"paravartya three digits", Paravartya, 1234, 123, 10, 4, Standard},
		{"dhvajanka", Dhvajanka, 987654, 321, 3076, 258, Dhvajanka},
		{"dhvajanka four digits", Dhvajanka, 123456789, 4321, 28571, 1498, Dhvajanka},
		{"dhvajanka negative", Dhvajanka, -987654, 321, -3077, 63, Dhvajanka},
		{"dhvajanka two digits", Dhvajanka, 1234, 23, 53, 15, Dhvajanka},
		{"dhvajanka single digit", Dhvajanka, 1234, 7, 176, 2, Standard},
		{"standard", Standard, -7, 3, -3, 2, Standard},
		{"standard zero divisor", Standard, 7, 0, 0, 0, Standard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, r, used := Quotient(tt.sutra, tt.a, tt.d)
			if q != tt.q || r != tt.r {
				t.Errorf("Quotient(%s, %d, %d) = (%d, %d), want (%d, %d)", tt.sutra, tt.a, tt.d, q, r, tt.q, tt.r)
			}
			if used != tt.used {
				t.Errorf("Quotient(%s, %d, %d) used %s, want %s", tt.sutra, tt.a, tt.d, used, tt.used)
			}
		})
	}
}

// TestParavartyaTranspose walks 1234 / 23 column by column. At the third
// column the transposed 5*3 exceeds the digit 3 and borrows from the upper
// position: 12 - 5*2 = 2 above, 3 - 15 = -12 below, remainder 8.
func TestParavartyaTranspose(t *testing.T) {
	t.Parallel()

	steps := []struct {
		rem, digit int64
		k, next    int64
		borrow     bool
	}{
		{0, 1, 0, 1, false},
		{1, 2, 0, 12, false},
		{12, 3, 5, 8, true},
		{8, 4, 3, 15, true},
	}
	for _, s := range steps {
		k, next, borrow := transpose(s.rem, s.digit, 2, 3)
		if k != s.k || next != s.next || borrow != s.borrow {
			t.Errorf("transpose(%d, %d) = (%d, %d, %v), want (%d, %d, %v)",
				s.rem, s.digit, k, next, borrow, s.k, s.next, s.borrow)
		}
	}

	// 600 / 19: the transposed 3*9 borrows across a zero digit.
	if k, next, borrow := transpose(6, 0, 1, 9); k != 3 || next != 3 || !borrow {
		t.Errorf("transpose(6, 0) = (%d, %d, %v), want (3, 3, true)", k, next, borrow)
	}
	if q, r, used := ParavartyaDiv(600, 19); q != 31 || r != 11 || used != Paravartya {
		t.Errorf("ParavartyaDiv(600, 19) = (%d, %d, %s), want (31, 11, paravartya)", q, r, used)
	}
}

// TestDhvajankaFallsBack exercises a divisor whose flag digit underestimates
// it so badly that the per-digit correction budget runs out.
func TestDhvajankaFallsBack(t *testing.T) {
	t.Parallel()

	// At the digit where the remainder is 100 the flag 10 estimates 9 while
	// the true digit is 5: four corrections against a budget of two.
	q, r, used := DhvajankaDiv(100, 19)
	if q != 5 || r != 5 {
		t.Errorf("DhvajankaDiv(100, 19) = (%d, %d), want (5, 5)", q, r)
	}
	if used != Standard {
		t.Errorf("DhvajankaDiv(100, 19) used %s, want standard", used)
	}
}

// TestDivisionKernels_PropertyBased checks the Euclidean contract of every
// division kernel: a = q*d + r with 0 <= r < |d|, matching DivModEuclid.
func TestDivisionKernels_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	for _, s := range []Sutra{Paravartya, Dhvajanka, NikhilamDiv} {
		properties.Property(s.String()+" matches Euclidean division", prop.ForAll(
			func(a, d int64) bool {
				if d == 0 || (a == math.MinInt64 && d == -1) {
					return true
				}
				q, r, _ := Quotient(s, a, d)
				wq, wr := numeric.DivModEuclid(a, d)
				return q == wq && r == wr
			},
			gen.Int64(), gen.OneGenOf(gen.Int64Range(-10_000, 10_000), gen.Int64()),
		))
	}

	properties.Property("nikhilam div accepts every divisor near a base", prop.ForAll(
		func(a int64, k int, dev int64) bool {
			base, c := nearBase(k, dev)
			d := base - c
			q, r, used := NikhilamDivide(a, d)
			wq, wr := numeric.DivModEuclid(a, d)
			return q == wq && r == wr && (used == NikhilamDiv || a == math.MinInt64)
		},
		gen.Int64(), gen.IntRange(1, 18), gen.Int64(),
	))

	properties.Property("nikhilam div terminates for divisors just above a base", prop.ForAll(
		func(a int64, k int, dev int64, negative bool) bool {
			base := int64(numeric.Pow10(k))
			d := base + 1 + dev%(base/10)
			if negative {
				d = -d
			}
			q, r, used := NikhilamDivide(a, d)
			wq, wr := numeric.DivModEuclid(a, d)
			return q == wq && r == wr && used == NikhilamDiv
		},
		gen.Int64Range(-1_000_000, 1_000_000), gen.IntRange(1, 6), gen.Int64Range(0, 100_000), gen.Bool(),
	))

	properties.TestingRun(t)
}
