// Package workload generates operand pairs from the five distributions the
// benchmark and property tests exercise. Generation is deterministic for a
// given seed.
package workload

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/sutra"
)

// Shape is an operand distribution.
type Shape uint8

const (
	// EndsIn5 squares positive numbers ending in 5.
	EndsIn5 Shape = iota
	// NearBase multiplies two numbers within 10% of the same power of ten.
	NearBase
	// Complementary multiplies pairs sharing a prefix whose last digits sum
	// to 10.
	Complementary
	// LargeDigit multiplies numbers of 6 to 9 digits.
	LargeDigit
	// Uniform draws every operation over uniformly distributed operands.
	Uniform
)

var shapeNames = [...]string{"ends-in-5", "near-base", "complementary", "large-digit", "uniform"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", s)
}

// Shapes returns every shape in declaration order.
func Shapes() []Shape {
	return []Shape{EndsIn5, NearBase, Complementary, LargeDigit, Uniform}
}

// ParseShape parses a shape name, ignoring case.
func ParseShape(name string) (Shape, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range shapeNames {
		if n == key {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown workload %q (want one of %s)", name, strings.Join(shapeNames[:], ", "))
}

// Expected returns the kernel the default classifier should pick for the
// shape, and false when the shape has no single target.
func (s Shape) Expected() (sutra.Sutra, bool) {
	switch s {
	case EndsIn5:
		return sutra.Ekadhikena, true
	case NearBase:
		return sutra.Nikhilam, true
	case Complementary:
		return sutra.Antyayordasake, true
	case LargeDigit:
		return sutra.Urdhva, true
	}
	return sutra.Standard, false
}

// Case is one generated call.
type Case struct {
	Op   numeric.OpKind
	A, B numeric.Value
}

// Generator draws cases from a seeded source. It is not safe for
// concurrent use; give each goroutine its own Generator.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded with seed.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Batch returns n cases of shape s.
func (g *Generator) Batch(s Shape, n int) []Case {
	out := make([]Case, n)
	for i := range out {
		out[i] = g.Next(s)
	}
	return out
}

// Next returns one case of shape s.
func (g *Generator) Next(s Shape) Case {
	switch s {
	case EndsIn5:
		return g.endsIn5()
	case NearBase:
		return g.nearBase()
	case Complementary:
		return g.complementary()
	case LargeDigit:
		return g.largeDigit()
	}
	return g.uniform()
}

// between returns a value in [lo, hi].
func (g *Generator) between(lo, hi int64) int64 {
	return lo + g.rng.Int64N(hi-lo+1)
}

func (g *Generator) endsIn5() Case {
	n := g.between(1, 99_999_999)*10 + 5
	return Case{Op: numeric.Square, A: numeric.FromInt(n)}
}

// nearBase keeps both operands below the base by up to 10% or above it by
// up to 10%, excluding the base itself.
func (g *Generator) nearBase() Case {
	k := int(g.between(2, 9))
	base := int64(numeric.Pow10(k))
	spread := base / 10
	off := func() int64 {
		d := g.between(1, spread)
		if g.rng.IntN(2) == 0 {
			return -d
		}
		return d
	}
	return Case{Op: numeric.Mul, A: numeric.FromInt(base + off()), B: numeric.FromInt(base + off())}
}

func (g *Generator) complementary() Case {
	prefix := g.between(1, 99_999_999)
	last := g.between(1, 8)
	if last >= 5 {
		last++
	}
	return Case{
		Op: numeric.Mul,
		A:  numeric.FromInt(prefix*10 + last),
		B:  numeric.FromInt(prefix*10 + 10 - last),
	}
}

func (g *Generator) largeDigit() Case {
	return Case{
		Op: numeric.Mul,
		A:  numeric.FromInt(g.between(100_000, 999_999_999)),
		B:  numeric.FromInt(g.between(100_000, 999_999_999)),
	}
}

var uniformOps = []numeric.OpKind{numeric.Add, numeric.Sub, numeric.Mul, numeric.Div, numeric.Mod, numeric.Square}

func (g *Generator) uniform() Case {
	op := uniformOps[g.rng.IntN(len(uniformOps))]
	c := Case{Op: op, A: numeric.FromInt(g.between(-1_000_000, 1_000_000))}
	if !op.IsUnary() {
		c.B = numeric.FromInt(g.between(-1_000_000, 1_000_000))
	}
	return c
}
