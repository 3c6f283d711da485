package numeric

import (
	"math"
)

// Apply evaluates a op b with straight arithmetic under the promotion rule.
// It is total: division or modulo by zero yields +/-Inf for float result
// tags and the saturated extreme of the integer tag otherwise. Square
// ignores b.
func Apply(op OpKind, a, b Value) Value {
	switch op {
	case Add:
		return add(a, b)
	case Sub:
		return sub(a, b)
	case Mul:
		return mul(a, b)
	case Div:
		return div(a, b)
	case Mod:
		return mod(a, b)
	case Pow:
		return pow(a, b)
	case Square:
		return mul(a, a)
	}
	return Value{}
}

// ResultTag returns the tag a binary operation starts from before any
// widening.
func ResultTag(a, b Value) Tag { return maxTag(a.tag, b.tag) }

func add(a, b Value) Value {
	tag := ResultTag(a, b)
	switch tag {
	case I32, I64:
		return FromInt128(I128(a.i).Add(I128(b.i)), tag)
	case F32:
		return FromFloat32(a.float32() + b.float32())
	}
	return FromFloat64(a.Float64() + b.Float64())
}

func sub(a, b Value) Value {
	tag := ResultTag(a, b)
	switch tag {
	case I32, I64:
		return FromInt128(I128(a.i).Sub(I128(b.i)), tag)
	case F32:
		return FromFloat32(a.float32() - b.float32())
	}
	return FromFloat64(a.Float64() - b.Float64())
}

func mul(a, b Value) Value {
	tag := ResultTag(a, b)
	switch tag {
	case I32, I64:
		return FromInt128(MulExact(a.i, b.i), tag)
	case F32:
		return FromFloat32(a.float32() * b.float32())
	}
	return FromFloat64(a.Float64() * b.Float64())
}

func div(a, b Value) Value {
	tag := ResultTag(a, b)
	switch tag {
	case I32, I64:
		if b.i == 0 {
			return DivideByZero(a, b)
		}
		q, r := I128(a.i).QuoRem64(b.i)
		if r == 0 {
			return FromInt128(q, tag)
		}
		return InexactQuotient(a, b)
	case F32:
		return FromFloat32(a.float32() / b.float32())
	}
	return FromFloat64(a.Float64() / b.Float64())
}

// InexactQuotient returns a/b for integer operands whose division leaves a
// remainder: F32 when both fit in 32 bits, F64 otherwise.
func InexactQuotient(a, b Value) Value {
	if a.fitsInt32() && b.fitsInt32() {
		return FromFloat32(float32(a.i) / float32(b.i))
	}
	return FromFloat64(float64(a.i) / float64(b.i))
}

func mod(a, b Value) Value {
	tag := ResultTag(a, b)
	switch tag {
	case I32, I64:
		if b.i == 0 {
			return DivideByZero(a, b)
		}
		_, r := DivModEuclid(a.i, b.i)
		return FromInt128(I128(r), tag)
	}
	x, y := a.Float64(), b.Float64()
	if y == 0 {
		return DivideByZero(a, b)
	}
	r := math.Mod(x, y)
	if r < 0 {
		r += math.Abs(y)
	}
	if tag == F32 {
		return FromFloat32(float32(r))
	}
	return FromFloat64(r)
}

func pow(a, b Value) Value {
	tag := ResultTag(a, b)
	if !tag.IsInteger() {
		if tag == F32 {
			return FromFloat32(float32(math.Pow(a.Float64(), b.Float64())))
		}
		return FromFloat64(math.Pow(a.Float64(), b.Float64()))
	}
	base, exp := a.i, b.i
	switch {
	case exp < 0 && (base == 1 || base == -1):
		if exp%2 == 0 {
			return FromInt128(I128(1), tag)
		}
		return FromInt128(I128(base), tag)
	case exp < 0:
		return FromFloat64(math.Pow(float64(base), float64(exp)))
	}
	if r, ok := powExact(base, exp); ok {
		return FromInt128(r, tag)
	}
	return FromFloat64(math.Pow(float64(base), float64(exp)))
}

// powExact computes base^exp by repeated squaring and reports false as soon
// as the result leaves the int64 range.
func powExact(base int64, exp int64) (Int128, bool) {
	switch base {
	case 0:
		if exp == 0 {
			return I128(1), true
		}
		return I128(0), true
	case 1:
		return I128(1), true
	case -1:
		if exp%2 == 0 {
			return I128(1), true
		}
		return I128(-1), true
	}
	result := I128(1)
	b := I128(base)
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(b)
			if !result.IsInt64() {
				return Int128{}, false
			}
		}
		exp >>= 1
		if exp > 0 {
			b = b.Mul(b)
			if !b.IsInt64() {
				return Int128{}, false
			}
		}
	}
	return result, true
}

// DivideByZero returns the sentinel for a zero divisor: +/-Inf (NaN for
// 0/0) under float tags, the saturated extreme of the integer tag otherwise,
// and 0 for an integer 0/0.
func DivideByZero(a, b Value) Value {
	tag := ResultTag(a, b)
	switch tag {
	case I32, I64:
		lo, hi := int64(math.MinInt64), int64(math.MaxInt64)
		if tag == I32 {
			lo, hi = math.MinInt32, math.MaxInt32
		}
		switch {
		case a.i > 0:
			return Value{tag: tag, i: hi}
		case a.i < 0:
			return Value{tag: tag, i: lo}
		}
		return Value{tag: tag}
	}
	x := a.Float64()
	var f float64
	switch {
	case x > 0:
		f = math.Inf(1)
	case x < 0:
		f = math.Inf(-1)
	default:
		f = math.NaN()
	}
	if tag == F32 {
		return FromFloat32(float32(f))
	}
	return FromFloat64(f)
}

// DivModEuclid returns q, r with a = q*b + r and 0 <= r < |b|. b must be
// non-zero; math.MinInt64 / -1 wraps and must be excluded by the caller.
func DivModEuclid(a, b int64) (int64, int64) {
	q, r := a/b, a%b
	if r < 0 {
		if b > 0 {
			q--
			r += b
		} else {
			q++
			r -= b
		}
	}
	return q, r
}
