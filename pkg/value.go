package lox

import (
	"math"
	"strconv"
)

// Value is a runtime value: StringValue, NumberValue, BoolValue or NilValue.
// Values are plain Go values and are copied, never mutated in place.
type Value interface {
	String() string
	value()
}

type StringValue string

type NumberValue float64

type BoolValue bool

type NilValue struct{}

func (StringValue) value() {}
func (NumberValue) value() {}
func (BoolValue) value()   {}
func (NilValue) value()    {}

func (v StringValue) String() string {
	return string(v)
}

// String formats the number in its shortest decimal form, so whole numbers
// print without a fractional part ("1", not "1.0").
func (v NumberValue) String() string {
	f := float64(v)

	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

func (v BoolValue) String() string {
	return strconv.FormatBool(bool(v))
}

func (NilValue) String() string {
	return "nil"
}

// Truthy reports the truthiness of v: nil and false are falsy, everything
// else (including 0 and the empty string) is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return bool(val)
	default:
		return true
	}
}

// numberEpsilon is the tolerance used when comparing two numbers for equality.
const numberEpsilon = 1e-6

// Equal compares two values structurally. Numbers compare equal when they
// differ by at most numberEpsilon.
func Equal(a, b Value) bool {
	if x, ok := a.(NumberValue); ok {
		if y, ok := b.(NumberValue); ok {
			return math.Abs(float64(x)-float64(y)) <= numberEpsilon
		}

		return false
	}

	switch x := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case StringValue:
		y, ok := b.(StringValue)
		return ok && x == y
	case BoolValue:
		y, ok := b.(BoolValue)
		return ok && x == y
	default:
		return false
	}
}

// literalValue converts a literal token into its runtime value.
func literalValue(tok Token) Value {
	switch tok.Typ {
	case TokenNumber:
		if n, ok := tok.Literal.(float64); ok {
			return NumberValue(n)
		}

		n, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return NumberValue(n)
	case TokenString:
		if s, ok := tok.Literal.(string); ok {
			return StringValue(s)
		}

		return StringValue(tok.Lexeme)
	case TokenTrue:
		return BoolValue(true)
	case TokenFalse:
		return BoolValue(false)
	default:
		return NilValue{}
	}
}
