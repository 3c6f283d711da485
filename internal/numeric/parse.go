package numeric

import (
	"errors"
	"strconv"
	"strings"

	apperrors "github.com/agbru/vedicmath/internal/errors"
)

// Parse reads a decimal number literal. Surrounding whitespace is ignored
// and a leading sign is allowed. A fraction, an exponent, or one of the
// words inf/infinity/nan yields an F64; otherwise the narrowest integer tag
// that holds the value is used, widening to F64 beyond the int64 range.
func Parse(text string) (Value, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Value{}, apperrors.ParseError{Input: s, Reason: "empty input"}
	}

	body := strings.TrimLeft(s, "+-")
	if len(s)-len(body) > 1 {
		return Value{}, apperrors.ParseError{Input: s, Reason: "repeated sign"}
	}
	switch strings.ToLower(body) {
	case "inf", "infinity", "nan":
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, apperrors.ParseError{Input: s, Reason: "malformed special value"}
		}
		return FromFloat64(f), nil
	}

	isFloat, err := scanDecimal(s, body)
	if err != nil {
		return Value{}, err
	}

	if !isFloat {
		n, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return FromInt(n), nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return Value{}, apperrors.ParseError{Input: s, Reason: "malformed integer"}
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, apperrors.ParseError{Input: s, Reason: "malformed float"}
	}
	return FromFloat64(f), nil
}

// scanDecimal validates the unsigned part of a literal and reports whether
// it carries a fraction or an exponent.
func scanDecimal(s, body string) (bool, error) {
	var digits, dots, exps int
	isFloat := false
	prev := byte(0)
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c >= '0' && c <= '9':
			if exps == 0 {
				digits++
			}
		case c == '.':
			dots++
			isFloat = true
			if dots > 1 || exps > 0 {
				return false, apperrors.ParseError{Input: s, Reason: "misplaced decimal point"}
			}
		case c == 'e' || c == 'E':
			exps++
			isFloat = true
			if exps > 1 || digits == 0 || i == len(body)-1 {
				return false, apperrors.ParseError{Input: s, Reason: "malformed exponent"}
			}
		case c == '+' || c == '-':
			if prev != 'e' && prev != 'E' {
				return false, apperrors.ParseError{Input: s, Reason: "unexpected sign"}
			}
			if i == len(body)-1 {
				return false, apperrors.ParseError{Input: s, Reason: "malformed exponent"}
			}
		default:
			return false, apperrors.ParseError{Input: s, Reason: "unexpected character " + strconv.QuoteRune(rune(c))}
		}
		prev = c
	}
	if digits == 0 {
		return false, apperrors.ParseError{Input: s, Reason: "no digits"}
	}
	return isFloat, nil
}
