package numeric

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tag identifies the native representation of a Value. Tags are ordered
// I32 < I64 < F32 < F64 for promotion.
type Tag uint8

const (
	I32 Tag = iota
	I64
	F32
	F64
)

var tagNames = [...]string{"i32", "i64", "f32", "f64"}

// String returns the lower-case tag name.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", t)
}

// IsInteger reports whether t is an integer tag.
func (t Tag) IsInteger() bool { return t <= I64 }

// ParseTag parses a tag name as produced by Tag.String.
func ParseTag(s string) (Tag, bool) {
	for i, n := range tagNames {
		if strings.EqualFold(s, n) {
			return Tag(i), true
		}
	}
	return 0, false
}

// maxTag returns the wider of two tags.
func maxTag(a, b Tag) Tag {
	if a > b {
		return a
	}
	return b
}

// Value is a tagged numeric value. Integer tags keep their payload in i,
// float tags in f. An F32 payload is always exactly representable as float32.
type Value struct {
	tag Tag
	i   int64
	f   float64
}

// FromInt32 returns an I32 value.
func FromInt32(v int32) Value { return Value{tag: I32, i: int64(v)} }

// FromInt64 returns an I64 value.
func FromInt64(v int64) Value { return Value{tag: I64, i: v} }

// FromFloat32 returns an F32 value.
func FromFloat32(v float32) Value { return Value{tag: F32, f: float64(v)} }

// FromFloat64 returns an F64 value.
func FromFloat64(v float64) Value { return Value{tag: F64, f: v} }

// FromInt returns v under the narrowest integer tag that holds it.
func FromInt(v int64) Value {
	if FitsInt32(v) {
		return Value{tag: I32, i: v}
	}
	return Value{tag: I64, i: v}
}

// FromInt128 demotes an exact integer result to a Value. The result keeps
// tag when it fits, widens to I64 when an I32 result does not fit, and falls
// back to F64 beyond the int64 range.
func FromInt128(v Int128, tag Tag) Value {
	switch {
	case tag == I32 && v.IsInt32():
		return Value{tag: I32, i: v.Int64()}
	case tag <= I64 && v.IsInt64():
		return Value{tag: I64, i: v.Int64()}
	default:
		return Value{tag: F64, f: v.Float64()}
	}
}

// Tag returns the value's tag.
func (v Value) Tag() Tag { return v.tag }

// IsInteger reports whether v carries an integer tag.
func (v Value) IsInteger() bool { return v.tag.IsInteger() }

// Int64 returns v as an int64. Floats are truncated toward zero and
// saturate at the int64 range; NaN converts to 0.
func (v Value) Int64() int64 {
	if v.IsInteger() {
		return v.i
	}
	return saturateFloat(v.f, math.MinInt64, math.MaxInt64)
}

// Float64 returns v as a float64, rounding to nearest even when the integer
// payload is not exactly representable.
func (v Value) Float64() float64 {
	if v.IsInteger() {
		return float64(v.i)
	}
	return v.f
}

// Convert returns v under tag to. Conversions to narrower tags saturate at
// the destination range instead of wrapping.
func (v Value) Convert(to Tag) Value {
	switch to {
	case I32:
		if v.IsInteger() {
			return Value{tag: I32, i: min(max(v.i, math.MinInt32), math.MaxInt32)}
		}
		return Value{tag: I32, i: saturateFloat(v.f, math.MinInt32, math.MaxInt32)}
	case I64:
		return Value{tag: I64, i: v.Int64()}
	case F32:
		f := v.Float64()
		switch {
		case f > math.MaxFloat32 && !math.IsInf(f, 1):
			f = math.MaxFloat32
		case f < -math.MaxFloat32 && !math.IsInf(f, -1):
			f = -math.MaxFloat32
		}
		return Value{tag: F32, f: float64(float32(f))}
	default:
		return Value{tag: F64, f: v.Float64()}
	}
}

// Equal compares two values after promotion to their common tag.
func (v Value) Equal(o Value) bool {
	if v.IsInteger() && o.IsInteger() {
		return v.i == o.i
	}
	return v.Float64() == o.Float64()
}

// String formats v. Integers print in base 10 without separators; floats
// use the shortest decimal that round-trips at their precision and always
// carry a fraction or exponent so that Parse keeps a float tag.
func (v Value) String() string {
	switch v.tag {
	case I32, I64:
		return strconv.FormatInt(v.i, 10)
	case F32:
		return floatString(v.f, 32)
	default:
		return floatString(v.f, 64)
	}
}

func floatString(f float64, bitSize int) string {
	if math.IsInf(f, 1) {
		return "+Inf"
	}
	if math.IsInf(f, -1) {
		return "-Inf"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func saturateFloat(f float64, lo, hi int64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f <= float64(lo):
		return lo
	case f >= float64(hi):
		return hi
	default:
		return int64(f)
	}
}

func (v Value) float32() float32 { return float32(v.Float64()) }

// fitsInt32 reports whether an integer-tagged value fits in 32 bits.
func (v Value) fitsInt32() bool { return v.IsInteger() && FitsInt32(v.i) }
