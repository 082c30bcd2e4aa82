package symbols

import (
	"math"
	"math/big"
	"strings"
)

// wellKnownTypes lists framework types the binder recognizes without reference
// assemblies, keyed by metadata name. Their kind decides value type semantics.
var wellKnownTypes = map[string]TypeKind{
	"System.DateTime":       KindStruct,
	"System.DateTimeOffset": KindStruct,
	"System.DateOnly":       KindStruct,
	"System.TimeOnly":       KindStruct,
	"System.TimeSpan":       KindStruct,
	"System.Guid":           KindStruct,
	"System.Half":           KindStruct,
	"System.Int128":         KindStruct,
	"System.UInt128":        KindStruct,
	"System.Nullable`1":     KindStruct,
	"System.Uri":            KindClass,
	"System.Type":           KindClass,
	"System.Version":        KindClass,
	"System.Exception":      KindClass,
	"System.Attribute":      KindClass,
	"System.Action":         KindDelegate,
	"System.Action`1":       KindDelegate,
	"System.Action`2":       KindDelegate,
	"System.Func`1":         KindDelegate,
	"System.Func`2":         KindDelegate,
	"System.Func`3":         KindDelegate,

	"System.Collections.Generic.List`1":                KindClass,
	"System.Collections.Generic.Dictionary`2":          KindClass,
	"System.Collections.Generic.HashSet`1":             KindClass,
	"System.Collections.Generic.IEnumerable`1":         KindInterface,
	"System.Collections.Generic.ICollection`1":         KindInterface,
	"System.Collections.Generic.IList`1":               KindInterface,
	"System.Collections.Generic.IDictionary`2":         KindInterface,
	"System.Collections.Generic.IReadOnlyCollection`1": KindInterface,
	"System.Collections.Generic.IReadOnlyList`1":       KindInterface,
	"System.Collections.Generic.IReadOnlyDictionary`2": KindInterface,
	"System.Collections.Generic.KeyValuePair`2":        KindStruct,
	"System.Collections.Immutable.ImmutableArray`1":    KindStruct,
	"System.Collections.Immutable.ImmutableList`1":     KindClass,
	"System.Threading.CancellationToken":               KindStruct,
	"System.Threading.Tasks.Task":                      KindClass,
	"System.Threading.Tasks.Task`1":                    KindClass,
}

// wellKnownNamespaces are the namespaces of wellKnownTypes and their parents
var wellKnownNamespaces = func() map[string]bool {
	m := map[string]bool{"System": true}
	for name := range wellKnownTypes {
		parts := strings.Split(name, ".")
		for i := 1; i < len(parts); i++ {
			m[strings.Join(parts[:i], ".")] = true
		}
	}
	return m
}()

// integralRange returns the inclusive bounds of an integral special type
func integralRange(t SpecialType) (min, max *big.Int) {
	switch t {
	case SpecialSByte:
		return big.NewInt(math.MinInt8), big.NewInt(math.MaxInt8)
	case SpecialByte:
		return big.NewInt(0), big.NewInt(math.MaxUint8)
	case SpecialInt16:
		return big.NewInt(math.MinInt16), big.NewInt(math.MaxInt16)
	case SpecialUInt16, SpecialChar:
		return big.NewInt(0), big.NewInt(math.MaxUint16)
	case SpecialInt32:
		return big.NewInt(math.MinInt32), big.NewInt(math.MaxInt32)
	case SpecialUInt32:
		return big.NewInt(0), big.NewInt(math.MaxUint32)
	case SpecialInt64, SpecialIntPtr:
		return big.NewInt(math.MinInt64), big.NewInt(math.MaxInt64)
	case SpecialUInt64, SpecialUIntPtr:
		return big.NewInt(0), new(big.Int).SetUint64(math.MaxUint64)
	}
	return nil, nil
}

// specialConstant returns the named constant field of a predefined type, such as int.MaxValue
func specialConstant(t SpecialType, member string) (value, bool) {
	if t.IsIntegral() || t == SpecialChar {
		min, max := integralRange(t)
		var n *big.Int
		switch member {
		case "MaxValue":
			n = max
		case "MinValue":
			n = min
		default:
			return value{}, false
		}
		if t == SpecialChar {
			return value{kind: valChar, special: SpecialChar, n: n}, true
		}
		return value{kind: valInt, special: t, n: n}, true
	}

	if t.IsFloatingPoint() {
		f, ok := floatConstant(t, member)
		if !ok {
			return value{}, false
		}
		return value{kind: valFloat, special: t, f: f}, true
	}

	if t == SpecialDecimal {
		var r *big.Rat
		switch member {
		case "Zero":
			r = new(big.Rat)
		case "One":
			r = big.NewRat(1, 1)
		case "MinusOne":
			r = big.NewRat(-1, 1)
		case "MaxValue":
			r, _ = new(big.Rat).SetString("79228162514264337593543950335")
		case "MinValue":
			r, _ = new(big.Rat).SetString("-79228162514264337593543950335")
		default:
			return value{}, false
		}
		return value{kind: valDecimal, special: SpecialDecimal, d: r}, true
	}

	return value{}, false
}

func floatConstant(t SpecialType, member string) (float64, bool) {
	switch member {
	case "NaN":
		return math.NaN(), true
	case "PositiveInfinity":
		return math.Inf(1), true
	case "NegativeInfinity":
		return math.Inf(-1), true
	}
	if t == SpecialSingle {
		switch member {
		case "MaxValue":
			return math.MaxFloat32, true
		case "MinValue":
			return -math.MaxFloat32, true
		case "Epsilon":
			return math.SmallestNonzeroFloat32, true
		}
		return 0, false
	}
	switch member {
	case "MaxValue":
		return math.MaxFloat64, true
	case "MinValue":
		return -math.MaxFloat64, true
	case "Epsilon":
		return math.SmallestNonzeroFloat64, true
	}
	return 0, false
}
