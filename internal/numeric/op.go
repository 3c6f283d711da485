package numeric

import (
	"fmt"
	"strings"
)

// OpKind enumerates the arithmetic operations understood by the kernel.
type OpKind uint8

const (
	Add OpKind = iota
	Sub
	Mul
	Div
	Mod
	Pow
	Square
)

var opNames = [...]string{"add", "sub", "mul", "div", "mod", "pow", "square"}

// String returns the lower-case operation name.
func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("op(%d)", k)
}

// IsUnary reports whether the operation ignores its second operand.
func (k OpKind) IsUnary() bool { return k == Square }

// AllOps lists every operation in declaration order.
func AllOps() []OpKind {
	return []OpKind{Add, Sub, Mul, Div, Mod, Pow, Square}
}

// ParseOpKind accepts operation names and their usual symbols.
func ParseOpKind(s string) (OpKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "+", "plus":
		return Add, nil
	case "sub", "-", "minus":
		return Sub, nil
	case "mul", "*", "x", "times":
		return Mul, nil
	case "div", "/":
		return Div, nil
	case "mod", "%":
		return Mod, nil
	case "pow", "^", "**":
		return Pow, nil
	case "square", "sq":
		return Square, nil
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}
