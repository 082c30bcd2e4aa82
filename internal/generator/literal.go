package generator

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/toyz/dispatchgen/internal/csharp"
	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/symbols"
)

// TypeCategory selects how a parameter's default value is written back as a literal
type TypeCategory int

const (
	CategoryPlainValue TypeCategory = iota
	CategoryNullableValue
	CategoryEnum
	CategoryNullableEnum
	CategoryString
	CategoryOther
)

func (c TypeCategory) String() string {
	switch c {
	case CategoryPlainValue:
		return "value"
	case CategoryNullableValue:
		return "nullable value"
	case CategoryEnum:
		return "enum"
	case CategoryNullableEnum:
		return "nullable enum"
	case CategoryString:
		return "string"
	default:
		return "other"
	}
}

// Classify returns the category of a parameter type
func Classify(t *symbols.TypeRef) TypeCategory {
	switch {
	case t.IsString():
		return CategoryString
	case t.IsNullableValue():
		if t.Underlying().Enum() != nil {
			return CategoryNullableEnum
		}
		return CategoryNullableValue
	case t.Enum() != nil:
		return CategoryEnum
	case t.IsValueType():
		return CategoryPlainValue
	}
	return CategoryOther
}

// ResolvedParameter is a constructor parameter with its default rendered as source text
type ResolvedParameter struct {
	*symbols.Parameter
	Category TypeCategory
	Literal  string // empty when the parameter has no default
}

// LiteralResolver renders default values as C# literals
type LiteralResolver struct {
	// EscapeStrings quotes string defaults with escapes. When false the raw
	// value is embedded between double quotes as is.
	EscapeStrings bool
}

// ResolveParameter classifies p and renders its default value, if any
func (r LiteralResolver) ResolveParameter(p *symbols.Parameter) (ResolvedParameter, error) {
	resolved := ResolvedParameter{Parameter: p, Category: Classify(p.Type)}
	if !p.HasDefault {
		return resolved, nil
	}

	lit, err := r.resolve(p.Type, resolved.Category, p.Default, p.Name)
	if err != nil {
		if e, ok := err.(*errors.EnumMemberNotFoundError); ok {
			return resolved, e.WithLocation(p.Location)
		}
		return resolved, err
	}
	resolved.Literal = lit
	return resolved, nil
}

// ResolveDefaultLiteral renders value as a default of a parameter of type t
func (r LiteralResolver) ResolveDefaultLiteral(t *symbols.TypeRef, value symbols.Constant) (string, error) {
	return r.resolve(t, Classify(t), value, "")
}

func (r LiteralResolver) resolve(t *symbols.TypeRef, category TypeCategory, value symbols.Constant, param string) (string, error) {
	if ref, ok := value.Value.(symbols.Reference); ok {
		return string(ref), nil
	}

	switch category {
	case CategoryString:
		if value.IsNull() {
			return "null", nil
		}
		s, ok := value.Value.(string)
		if !ok {
			return "", fmt.Errorf("string parameter has a %s default", value)
		}
		if r.EscapeStrings {
			return csharp.QuoteString(s), nil
		}
		return `"` + s + `"`, nil

	case CategoryNullableEnum, CategoryEnum:
		if value.IsNull() {
			if category == CategoryEnum {
				return "", fmt.Errorf("enum parameter has a null default")
			}
			return "null", nil
		}
		enum := t.Underlying().Enum()
		if value.IsDefault {
			value = symbols.Int(enum.EnumUnderlying, 0)
		}
		member := enum.EnumMemberByValue(value)
		if member == nil {
			return "", errors.NewEnumMemberNotFoundError(enum.DisplayName(), param, value.String())
		}
		return member.FullName(), nil

	case CategoryNullableValue:
		if value.IsNull() {
			return "null", nil
		}
		return literalOf(value)

	case CategoryPlainValue:
		if value.IsDefault {
			return "default", nil
		}
		return literalOf(value)
	}

	switch {
	case value.IsNull():
		return "null", nil
	case value.IsDefault:
		return "default", nil
	}
	return literalOf(value)
}

// literalOf renders a non-null constant in a form that converts back to
// the same value for a parameter of the constant's own type.
func literalOf(c symbols.Constant) (string, error) {
	switch v := c.Value.(type) {
	case nil:
		if c.IsDefault {
			return "default", nil
		}
		return "null", nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case rune:
		return csharp.QuoteChar(v), nil
	case string:
		return csharp.QuoteString(v), nil
	case float64:
		return floatLiteral(c.Type, v), nil
	case *big.Rat:
		return decimalLiteral(v), nil
	case symbols.Reference:
		return string(v), nil
	}
	return "", fmt.Errorf("constant %s has no literal form", c)
}

func floatLiteral(t symbols.SpecialType, v float64) string {
	keyword := "double"
	bits, suffix := 64, ""
	if t == symbols.SpecialSingle {
		keyword, bits, suffix = "float", 32, "F"
	}

	switch {
	case math.IsNaN(v):
		return keyword + ".NaN"
	case math.IsInf(v, 1):
		return keyword + ".PositiveInfinity"
	case math.IsInf(v, -1):
		return keyword + ".NegativeInfinity"
	}

	s := strconv.FormatFloat(v, 'g', -1, bits)
	if suffix == "" && !strings.ContainsAny(s, ".eE") {
		return s
	}
	if suffix == "" {
		suffix = "D"
	}
	return s + suffix
}

// decimalLiteral writes the shortest exact decimal form of r
func decimalLiteral(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String() + "M"
	}

	ten := big.NewInt(10)
	scaled := new(big.Rat).Set(r)
	for digits := 1; digits <= 28; digits++ {
		scaled.Mul(scaled, new(big.Rat).SetInt(ten))
		if scaled.IsInt() {
			return r.FloatString(digits) + "M"
		}
	}
	return strings.TrimRight(r.FloatString(28), "0") + "M"
}
