package symbols

import (
	"fmt"
	"math/big"
)

// Constant is the compile-time value of a default parameter or enum member.
//
// Value holds one of nil, bool, int64 (signed integral types), uint64 (unsigned
// integral types), float64 (float and double), *big.Rat (decimal), rune (char),
// string or Reference. IsDefault marks the default value of a struct that has
// no literal form, as produced by `default` or `new()`.
type Constant struct {
	Type      SpecialType
	Value     any
	IsDefault bool
}

// Reference is the source text of a member of a type the program does not
// declare, such as DayOfWeek.Monday. It cannot be folded and is emitted as written.
type Reference string

// Null returns the null constant
func Null() Constant {
	return Constant{}
}

// DefaultStruct returns the default value of a struct without a literal form
func DefaultStruct() Constant {
	return Constant{IsDefault: true}
}

// Int returns a signed integral constant of the given type
func Int(t SpecialType, v int64) Constant {
	return Constant{Type: t, Value: v}
}

// UInt returns an unsigned integral constant of the given type
func UInt(t SpecialType, v uint64) Constant {
	return Constant{Type: t, Value: v}
}

// StringValue returns a string constant
func StringValue(s string) Constant {
	return Constant{Type: SpecialString, Value: s}
}

// Symbolic returns a constant that refers to text as written in source
func Symbolic(text string) Constant {
	return Constant{Value: Reference(text)}
}

// IsNull reports whether the constant is the null value
func (c Constant) IsNull() bool {
	return c.Value == nil && !c.IsDefault
}

// Equal reports whether two constants hold the same value; integral values
// compare numerically regardless of their signedness.
func (c Constant) Equal(o Constant) bool {
	if c.IsDefault || o.IsDefault {
		return c.IsDefault == o.IsDefault
	}
	a, aok := c.integer()
	b, bok := o.integer()
	if aok && bok {
		return a.Cmp(b) == 0
	}
	switch v := c.Value.(type) {
	case *big.Rat:
		w, ok := o.Value.(*big.Rat)
		return ok && v.Cmp(w) == 0
	default:
		return c.Value == o.Value
	}
}

// integer returns the value of an integral constant as a big.Int
func (c Constant) integer() (*big.Int, bool) {
	switch v := c.Value.(type) {
	case int64:
		return big.NewInt(v), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	}
	return nil, false
}

// String renders the constant for diagnostics
func (c Constant) String() string {
	switch v := c.Value.(type) {
	case nil:
		if c.IsDefault {
			return "default"
		}
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	case rune:
		return fmt.Sprintf("%q", v)
	case *big.Rat:
		return v.RatString()
	case Reference:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
