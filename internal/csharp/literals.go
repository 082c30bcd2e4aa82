package csharp

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// NumberKind is the natural type of a numeric literal
type NumberKind int

const (
	NumberInt NumberKind = iota
	NumberUInt
	NumberLong
	NumberULong
	NumberFloat
	NumberDouble
	NumberDecimal
)

// String returns the C# keyword of the literal's natural type
func (k NumberKind) String() string {
	switch k {
	case NumberInt:
		return "int"
	case NumberUInt:
		return "uint"
	case NumberLong:
		return "long"
	case NumberULong:
		return "ulong"
	case NumberFloat:
		return "float"
	case NumberDouble:
		return "double"
	case NumberDecimal:
		return "decimal"
	default:
		return "unknown"
	}
}

// IsIntegral reports whether the kind is one of the integral types
func (k NumberKind) IsIntegral() bool {
	return k <= NumberULong
}

// Number is a decoded numeric literal
type Number struct {
	Kind    NumberKind
	Bits    uint64   // magnitude of integral literals
	Float   float64  // value of float and double literals
	Decimal *big.Rat // value of decimal literals
}

// ParseNumber decodes a numeric literal token, including digit separators,
// hexadecimal and binary prefixes, and type suffixes.
func ParseNumber(text string) (Number, error) {
	raw := strings.ReplaceAll(text, "_", "")
	lower := strings.ToLower(raw)

	isHex := strings.HasPrefix(lower, "0x")
	isBin := strings.HasPrefix(lower, "0b")

	// Split the suffix off. Hex digits include d and f, so real suffixes only apply to decimal literals.
	suffix := ""
	for _, s := range []string{"ul", "lu", "u", "l"} {
		if strings.HasSuffix(lower, s) {
			suffix = s
			break
		}
	}
	if suffix == "" && !isHex && !isBin {
		for _, s := range []string{"f", "d", "m"} {
			if strings.HasSuffix(lower, s) {
				suffix = s
				break
			}
		}
	}
	body := lower[:len(lower)-len(suffix)]

	isReal := !isHex && !isBin && (strings.ContainsAny(body, ".e") || suffix == "f" || suffix == "d" || suffix == "m")
	if isReal {
		return parseReal(text, body, suffix)
	}

	var (
		bits uint64
		err  error
	)
	switch {
	case isHex:
		bits, err = strconv.ParseUint(body[2:], 16, 64)
	case isBin:
		bits, err = strconv.ParseUint(body[2:], 2, 64)
	default:
		bits, err = strconv.ParseUint(body, 10, 64)
	}
	if err != nil {
		return Number{}, fmt.Errorf("integral constant %s is too large", text)
	}

	n := Number{Bits: bits}
	switch suffix {
	case "":
		switch {
		case bits <= math.MaxInt32:
			n.Kind = NumberInt
		case bits <= math.MaxUint32:
			n.Kind = NumberUInt
		case bits <= math.MaxInt64:
			n.Kind = NumberLong
		default:
			n.Kind = NumberULong
		}
	case "u":
		if bits <= math.MaxUint32 {
			n.Kind = NumberUInt
		} else {
			n.Kind = NumberULong
		}
	case "l":
		if bits <= math.MaxInt64 {
			n.Kind = NumberLong
		} else {
			n.Kind = NumberULong
		}
	default:
		n.Kind = NumberULong
	}
	return n, nil
}

func parseReal(text, body, suffix string) (Number, error) {
	switch suffix {
	case "m":
		r, ok := new(big.Rat).SetString(body)
		if !ok {
			return Number{}, fmt.Errorf("invalid decimal literal %s", text)
		}
		return Number{Kind: NumberDecimal, Decimal: r}, nil
	case "f":
		f, err := strconv.ParseFloat(body, 32)
		if err != nil {
			return Number{}, fmt.Errorf("invalid float literal %s", text)
		}
		return Number{Kind: NumberFloat, Float: f}, nil
	default:
		f, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return Number{}, fmt.Errorf("invalid double literal %s", text)
		}
		return Number{Kind: NumberDouble, Float: f}, nil
	}
}

// UnquoteString decodes a regular string literal token including its quotes
func UnquoteString(token string) (string, error) {
	if len(token) < 2 || token[0] != '"' || token[len(token)-1] != '"' {
		return "", fmt.Errorf("malformed string literal %s", token)
	}
	return unescape(token[1:len(token)-1], token)
}

// UnquoteVerbatim decodes a verbatim string literal token such as @"C:\dir"
func UnquoteVerbatim(token string) (string, error) {
	if len(token) < 3 || !strings.HasPrefix(token, `@"`) || token[len(token)-1] != '"' {
		return "", fmt.Errorf("malformed verbatim string literal %s", token)
	}
	return strings.ReplaceAll(token[2:len(token)-1], `""`, `"`), nil
}

// UnquoteChar decodes a character literal token including its quotes
func UnquoteChar(token string) (rune, error) {
	if len(token) < 3 || token[0] != '\'' || token[len(token)-1] != '\'' {
		return 0, fmt.Errorf("malformed character literal %s", token)
	}
	s, err := unescape(token[1:len(token)-1], token)
	if err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("character literal %s must contain exactly one character", token)
	}
	return r, nil
}

// unescape processes the simple, hexadecimal and unicode escape sequences of C#
func unescape(s, token string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("unterminated escape sequence in %s", token)
		}
		switch s[i] {
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '0':
			b.WriteByte(0)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'e':
			b.WriteByte(0x1b)
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'u', 'U', 'x':
			kind := s[i]
			width := 4
			if kind == 'U' {
				width = 8
			}
			j := i + 1
			for j < len(s) && j-i-1 < width && isHexDigit(s[j]) {
				j++
			}
			digits := s[i+1 : j]
			if len(digits) == 0 || (kind != 'x' && len(digits) != width) {
				return "", fmt.Errorf("invalid \\%c escape sequence in %s", kind, token)
			}
			code, err := strconv.ParseUint(digits, 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid \\%c escape sequence in %s", kind, token)
			}
			b.WriteRune(rune(code))
			i = j - 1
		default:
			return "", fmt.Errorf("unrecognized escape sequence \\%c in %s", s[i], token)
		}
	}
	return b.String(), nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// QuoteString renders s as a regular C# string literal, escaping where required
func QuoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		b.WriteString(escapeRune(r, '"'))
	}
	b.WriteByte('"')
	return b.String()
}

// QuoteChar renders r as a C# character literal
func QuoteChar(r rune) string {
	return "'" + escapeRune(r, '\'') + "'"
}

func escapeRune(r rune, quote rune) string {
	switch r {
	case quote:
		return `\` + string(quote)
	case '\\':
		return `\\`
	case 0:
		return `\0`
	case '\a':
		return `\a`
	case '\b':
		return `\b`
	case '\f':
		return `\f`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\v':
		return `\v`
	}
	if r < 0x20 || r == 0x7f || r == 0x2028 || r == 0x2029 {
		return fmt.Sprintf(`\u%04X`, r)
	}
	if r > 0xFFFF {
		return fmt.Sprintf(`\U%08X`, r)
	}
	return string(r)
}

// IsKeyword reports whether name is a reserved C# keyword that needs an @ prefix to be used as an identifier
func IsKeyword(name string) bool {
	_, ok := reservedKeywords[name]
	return ok
}

// Identifier returns name in a form usable as an identifier in generated code
func Identifier(name string) string {
	if IsKeyword(name) {
		return "@" + name
	}
	return name
}

// TrimVerbatimPrefix removes the @ prefix of a verbatim identifier
func TrimVerbatimPrefix(name string) string {
	return strings.TrimPrefix(name, "@")
}

var reservedKeywords = map[string]struct{}{
	"abstract": {}, "as": {}, "base": {}, "bool": {}, "break": {}, "byte": {}, "case": {}, "catch": {},
	"char": {}, "checked": {}, "class": {}, "const": {}, "continue": {}, "decimal": {}, "default": {},
	"delegate": {}, "do": {}, "double": {}, "else": {}, "enum": {}, "event": {}, "explicit": {},
	"extern": {}, "false": {}, "finally": {}, "fixed": {}, "float": {}, "for": {}, "foreach": {},
	"goto": {}, "if": {}, "implicit": {}, "in": {}, "int": {}, "interface": {}, "internal": {},
	"is": {}, "lock": {}, "long": {}, "namespace": {}, "new": {}, "null": {}, "object": {},
	"operator": {}, "out": {}, "override": {}, "params": {}, "private": {}, "protected": {},
	"public": {}, "readonly": {}, "ref": {}, "return": {}, "sbyte": {}, "sealed": {}, "short": {},
	"sizeof": {}, "stackalloc": {}, "static": {}, "string": {}, "struct": {}, "switch": {}, "this": {},
	"throw": {}, "true": {}, "try": {}, "typeof": {}, "uint": {}, "ulong": {}, "unchecked": {},
	"unsafe": {}, "ushort": {}, "using": {}, "virtual": {}, "void": {}, "volatile": {}, "while": {},
}
