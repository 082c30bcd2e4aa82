package symbols

import (
	"fmt"
	"math"
	"math/big"

	"github.com/toyz/dispatchgen/internal/csharp"
)

type valueKind int

const (
	valNull valueKind = iota
	valDefault
	valNew
	valBool
	valInt
	valChar
	valFloat
	valDecimal
	valString
	valSymbol // member of a type outside the program, kept as written
)

// value is an intermediate result of constant folding
type value struct {
	kind    valueKind
	special SpecialType // natural type of numeric values
	enum    *NamedType  // enum type the value carries, nil for plain numbers
	typ     *TypeRef    // target of default(T) and new T()
	b       bool
	n       *big.Int // valInt and valChar
	f       float64
	d       *big.Rat
	s       string
}

func (v value) isNumeric() bool {
	switch v.kind {
	case valInt, valChar, valFloat, valDecimal:
		return true
	}
	return false
}

func (v value) isIntegral() bool {
	return v.kind == valInt || v.kind == valChar
}

// describe renders the value's type for diagnostics
func (v value) describe() string {
	if v.enum != nil {
		return v.enum.DisplayName()
	}
	switch v.kind {
	case valNull:
		return "<null>"
	case valDefault:
		return "default"
	case valNew:
		return "new()"
	case valBool:
		return "bool"
	case valString:
		return "string"
	case valSymbol:
		return v.s
	}
	return v.special.Keyword()
}

func (v value) rat() *big.Rat {
	switch v.kind {
	case valDecimal:
		return v.d
	case valFloat:
		return new(big.Rat).SetFloat64(v.f)
	}
	return new(big.Rat).SetInt(v.n)
}

func (v value) float() float64 {
	switch v.kind {
	case valFloat:
		return v.f
	case valDecimal:
		f, _ := v.d.Float64()
		return f
	}
	f, _ := new(big.Float).SetInt(v.n).Float64()
	return f
}

func intValue(t SpecialType, n *big.Int) value {
	if t == SpecialChar {
		return value{kind: valChar, special: SpecialChar, n: n}
	}
	return value{kind: valInt, special: t, n: n}
}

func floatValue(t SpecialType, f float64) value {
	if t == SpecialSingle {
		f = float64(float32(f))
	}
	return value{kind: valFloat, special: t, f: f}
}

// fits reports whether n lies within the range of the integral type t
func fits(n *big.Int, t SpecialType) bool {
	min, max := integralRange(t)
	if min == nil {
		return false
	}
	return n.Cmp(min) >= 0 && n.Cmp(max) <= 0
}

// contains reports whether every value of from is representable in to
func contains(to, from SpecialType) bool {
	toMin, toMax := integralRange(to)
	fromMin, fromMax := integralRange(from)
	if toMin == nil || fromMin == nil {
		return false
	}
	return toMin.Cmp(fromMin) <= 0 && toMax.Cmp(fromMax) >= 0
}

// makeIntegral builds the constant of an integral or char type
func makeIntegral(t SpecialType, n *big.Int) Constant {
	switch {
	case t == SpecialChar:
		return Constant{Type: t, Value: rune(n.Int64())}
	case t.IsUnsigned():
		return UInt(t, n.Uint64())
	default:
		return Int(t, n.Int64())
	}
}

// zeroConstant returns the default value of a special type
func zeroConstant(t SpecialType) Constant {
	switch {
	case t == SpecialBoolean:
		return Constant{Type: t, Value: false}
	case t == SpecialChar, t.IsIntegral():
		return makeIntegral(t, new(big.Int))
	case t.IsFloatingPoint():
		return Constant{Type: t, Value: float64(0)}
	case t == SpecialDecimal:
		return Constant{Type: t, Value: new(big.Rat)}
	case t == SpecialString, t == SpecialObject:
		return Null()
	}
	return DefaultStruct()
}

// constToValue lifts a stored integral constant back into folding form
func constToValue(c Constant) value {
	switch v := c.Value.(type) {
	case int64:
		return intValue(c.Type, big.NewInt(v))
	case uint64:
		return intValue(c.Type, new(big.Int).SetUint64(v))
	case rune:
		return intValue(SpecialChar, big.NewInt(int64(v)))
	}
	return value{kind: valNull}
}

// enumUnderlyingConstant converts an enum member initializer to the enum's underlying type
func enumUnderlyingConstant(v value, enum *NamedType) (Constant, error) {
	if !v.isIntegral() || (v.enum != nil && v.enum != enum) {
		return Constant{}, fmt.Errorf("cannot implicitly convert type '%s' to '%s'", v.describe(), enum.EnumUnderlying)
	}
	if !fits(v.n, enum.EnumUnderlying) {
		return Constant{}, fmt.Errorf("constant value '%s' cannot be converted to '%s'", v.n, enum.EnumUnderlying)
	}
	return makeIntegral(enum.EnumUnderlying, v.n), nil
}

// incrementConstant returns the value of an enum member without an initializer
func incrementConstant(prev Constant, t SpecialType) (Constant, error) {
	n, ok := prev.integer()
	if !ok {
		return Constant{}, fmt.Errorf("previous member has no integral value")
	}
	n = new(big.Int).Add(n, big.NewInt(1))
	if !fits(n, t) {
		return Constant{}, fmt.Errorf("enumerator value is too large to fit in its type '%s'", t)
	}
	return makeIntegral(t, n), nil
}

// evaluator folds constant expressions in a lookup scope
type evaluator struct {
	binder *binder
	scope  *scope
	enum   *NamedType // enum whose member initializers are being evaluated
}

var precedence = map[string]int{
	"*": 5, "/": 5, "%": 5,
	"+": 4, "-": 4,
	"<<": 3, ">>": 3,
	"&": 2,
	"^": 1,
	"|": 0,
}

func (e *evaluator) eval(x *csharp.Expr) (value, error) {
	left, err := e.unary(x.Left)
	if err != nil {
		return value{}, err
	}
	operands := []value{left}
	ops := make([]string, 0, len(x.Ops))
	for _, op := range x.Ops {
		right, err := e.unary(op.Right)
		if err != nil {
			return value{}, err
		}
		operands = append(operands, right)
		ops = append(ops, op.Op)
	}

	for level := 5; level >= 0 && len(ops) > 0; level-- {
		for i := 0; i < len(ops); {
			if precedence[ops[i]] != level {
				i++
				continue
			}
			v, err := e.binary(ops[i], operands[i], operands[i+1])
			if err != nil {
				return value{}, err
			}
			operands[i] = v
			operands = append(operands[:i+1], operands[i+2:]...)
			ops = append(ops[:i], ops[i+1:]...)
		}
	}
	return operands[0], nil
}

func (e *evaluator) unary(u *csharp.Unary) (value, error) {
	if u.Primary != nil {
		return e.primary(u.Primary)
	}
	v, err := e.unary(u.Operand)
	if err != nil {
		return value{}, err
	}

	switch u.Op {
	case "!":
		if v.kind != valBool {
			return value{}, fmt.Errorf("operator '!' cannot be applied to operand of type '%s'", v.describe())
		}
		return value{kind: valBool, b: !v.b}, nil
	case "~":
		return complement(v)
	case "+":
		if v.enum != nil || !v.isNumeric() {
			return value{}, fmt.Errorf("operator '+' cannot be applied to operand of type '%s'", v.describe())
		}
		if v.isIntegral() {
			return intValue(promote(v.special), v.n), nil
		}
		return v, nil
	default:
		return negate(v)
	}
}

func negate(v value) (value, error) {
	if v.enum != nil || !v.isNumeric() {
		return value{}, fmt.Errorf("operator '-' cannot be applied to operand of type '%s'", v.describe())
	}
	switch v.kind {
	case valFloat:
		return floatValue(v.special, -v.f), nil
	case valDecimal:
		return value{kind: valDecimal, special: SpecialDecimal, d: new(big.Rat).Neg(v.d)}, nil
	}

	n := new(big.Int).Neg(v.n)
	switch promote(v.special) {
	case SpecialUInt32:
		if v.n.Cmp(big.NewInt(-math.MinInt32)) == 0 {
			return intValue(SpecialInt32, n), nil
		}
		return intValue(SpecialInt64, n), nil
	case SpecialUInt64:
		if v.n.Cmp(new(big.Int).SetUint64(-math.MinInt64)) == 0 {
			return intValue(SpecialInt64, n), nil
		}
		return value{}, fmt.Errorf("operator '-' cannot be applied to operand of type 'ulong'")
	}
	t := promote(v.special)
	if !fits(n, t) {
		return value{}, fmt.Errorf("the operation overflows at compile time")
	}
	return intValue(t, n), nil
}

func complement(v value) (value, error) {
	if !v.isIntegral() {
		return value{}, fmt.Errorf("operator '~' cannot be applied to operand of type '%s'", v.describe())
	}
	t := promote(v.special)
	if v.enum != nil {
		t = v.special
	}
	var n *big.Int
	if t.IsUnsigned() {
		_, max := integralRange(t)
		n = new(big.Int).Sub(max, v.n)
	} else {
		n = new(big.Int).Not(v.n)
	}
	out := intValue(t, n)
	out.enum = v.enum
	return out, nil
}

// promote applies unary numeric promotion to an integral type
func promote(t SpecialType) SpecialType {
	switch t {
	case SpecialChar, SpecialSByte, SpecialByte, SpecialInt16, SpecialUInt16:
		return SpecialInt32
	case SpecialIntPtr:
		return SpecialInt64
	case SpecialUIntPtr:
		return SpecialUInt64
	}
	return t
}

// binaryIntegralType picks the operand type of an integral binary operation
func binaryIntegralType(l, r value) (SpecialType, error) {
	a, b := promote(l.special), promote(r.special)
	switch {
	case a == SpecialUInt64 || b == SpecialUInt64:
		for _, v := range []value{l, r} {
			if !promote(v.special).IsUnsigned() && v.n.Sign() < 0 {
				return SpecialNone, fmt.Errorf("operator is ambiguous on operands of type '%s' and '%s'", l.describe(), r.describe())
			}
		}
		return SpecialUInt64, nil
	case a == SpecialInt64 || b == SpecialInt64:
		return SpecialInt64, nil
	case a == SpecialUInt32 && b == SpecialUInt32:
		return SpecialUInt32, nil
	case a == SpecialUInt32 || b == SpecialUInt32:
		other := l
		if a == SpecialUInt32 {
			other = r
		}
		if other.n.Sign() >= 0 {
			return SpecialUInt32, nil
		}
		return SpecialInt64, nil
	}
	return SpecialInt32, nil
}

func (e *evaluator) binary(op string, l, r value) (value, error) {
	if l.enum != nil || r.enum != nil {
		return e.enumBinary(op, l, r)
	}

	mismatch := fmt.Errorf("operator '%s' cannot be applied to operands of type '%s' and '%s'", op, l.describe(), r.describe())

	if l.kind == valString || r.kind == valString {
		if op != "+" {
			return value{}, mismatch
		}
		for _, v := range []value{l, r} {
			if v.kind != valString && v.kind != valNull {
				return value{}, mismatch
			}
		}
		return value{kind: valString, s: l.s + r.s}, nil
	}

	if l.kind == valBool || r.kind == valBool {
		if l.kind != r.kind {
			return value{}, mismatch
		}
		switch op {
		case "&":
			return value{kind: valBool, b: l.b && r.b}, nil
		case "|":
			return value{kind: valBool, b: l.b || r.b}, nil
		case "^":
			return value{kind: valBool, b: l.b != r.b}, nil
		}
		return value{}, mismatch
	}

	if !l.isNumeric() || !r.isNumeric() {
		return value{}, mismatch
	}

	switch {
	case l.kind == valDecimal || r.kind == valDecimal:
		if l.kind == valFloat || r.kind == valFloat {
			return value{}, mismatch
		}
		return decimalBinary(op, l.rat(), r.rat(), mismatch)
	case l.kind == valFloat || r.kind == valFloat:
		t := SpecialSingle
		if l.special == SpecialDouble || r.special == SpecialDouble {
			t = SpecialDouble
		}
		return floatBinary(op, t, l.float(), r.float(), mismatch)
	}
	return integralBinary(op, l, r, mismatch)
}

func decimalBinary(op string, a, b *big.Rat, mismatch error) (value, error) {
	d := new(big.Rat)
	switch op {
	case "+":
		d.Add(a, b)
	case "-":
		d.Sub(a, b)
	case "*":
		d.Mul(a, b)
	case "/", "%":
		if b.Sign() == 0 {
			return value{}, fmt.Errorf("division by constant zero")
		}
		d.Quo(a, b)
		if op == "%" {
			q := new(big.Int).Quo(d.Num(), d.Denom())
			d.Sub(a, new(big.Rat).Mul(b, new(big.Rat).SetInt(q)))
		}
	default:
		return value{}, mismatch
	}
	return value{kind: valDecimal, special: SpecialDecimal, d: d}, nil
}

func floatBinary(op string, t SpecialType, a, b float64, mismatch error) (value, error) {
	switch op {
	case "+":
		return floatValue(t, a+b), nil
	case "-":
		return floatValue(t, a-b), nil
	case "*":
		return floatValue(t, a*b), nil
	case "/":
		return floatValue(t, a/b), nil
	case "%":
		return floatValue(t, math.Mod(a, b)), nil
	}
	return value{}, mismatch
}

func integralBinary(op string, l, r value, mismatch error) (value, error) {
	if op == "<<" || op == ">>" {
		return shift(op, l, r)
	}

	t, err := binaryIntegralType(l, r)
	if err != nil {
		return value{}, err
	}

	n := new(big.Int)
	switch op {
	case "+":
		n.Add(l.n, r.n)
	case "-":
		n.Sub(l.n, r.n)
	case "*":
		n.Mul(l.n, r.n)
	case "/", "%":
		if r.n.Sign() == 0 {
			return value{}, fmt.Errorf("division by constant zero")
		}
		if op == "/" {
			n.Quo(l.n, r.n)
		} else {
			n.Rem(l.n, r.n)
		}
	case "&":
		n.And(l.n, r.n)
	case "|":
		n.Or(l.n, r.n)
	case "^":
		n.Xor(l.n, r.n)
	default:
		return value{}, mismatch
	}

	if !fits(n, t) {
		return value{}, fmt.Errorf("the operation overflows at compile time")
	}
	return intValue(t, n), nil
}

// shift wraps to the width of the promoted left operand and masks the count
func shift(op string, l, r value) (value, error) {
	if !fits(r.n, SpecialInt32) {
		return value{}, fmt.Errorf("shift count must be convertible to 'int'")
	}
	t := promote(l.special)
	width := uint(32)
	if t == SpecialInt64 || t == SpecialUInt64 {
		width = 64
	}
	count := uint(r.n.Int64()) & (width - 1)

	n := new(big.Int)
	if op == ">>" {
		n.Rsh(l.n, count)
		return intValue(t, n), nil
	}

	n.Lsh(l.n, count)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), width), big.NewInt(1))
	n.And(n, mask)
	if !t.IsUnsigned() && n.Bit(int(width-1)) == 1 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), width))
	}
	return intValue(t, n), nil
}

func (e *evaluator) enumBinary(op string, l, r value) (value, error) {
	mismatch := fmt.Errorf("operator '%s' cannot be applied to operands of type '%s' and '%s'", op, l.describe(), r.describe())
	if !l.isIntegral() || !r.isIntegral() {
		return value{}, mismatch
	}

	enum := l.enum
	if enum == nil {
		enum = r.enum
	}
	underlying := enum.EnumUnderlying
	result := enum

	switch op {
	case "|", "&", "^":
		if l.enum != r.enum {
			return value{}, mismatch
		}
	case "+":
		if l.enum != nil && r.enum != nil {
			return value{}, mismatch
		}
	case "-":
		switch {
		case l.enum == nil:
			return value{}, mismatch
		case r.enum != nil:
			if l.enum != r.enum {
				return value{}, mismatch
			}
			result = nil
		}
	default:
		return value{}, mismatch
	}

	plain := func(v value) value {
		if v.enum != nil {
			return intValue(underlying, v.n)
		}
		return v
	}
	out, err := integralBinary(op, plain(l), plain(r), mismatch)
	if err != nil {
		return value{}, err
	}
	if !fits(out.n, underlying) {
		return value{}, fmt.Errorf("constant value '%s' cannot be converted to '%s'", out.n, enum.DisplayName())
	}
	out.special = underlying
	out.enum = result
	return out, nil
}

func (e *evaluator) primary(p *csharp.Primary) (value, error) {
	switch {
	case p.Cast != nil:
		target, err := e.binder.bindType(e.scope, p.Cast.Type)
		if err != nil {
			return value{}, err
		}
		v, err := e.unary(p.Cast.Operand)
		if err != nil {
			return value{}, err
		}
		return convertExplicit(v, target)
	case p.Paren != nil:
		return e.eval(p.Paren)
	case p.Literal != nil:
		return literal(p.Literal)
	case p.Default != nil:
		if p.Default.Type == nil {
			return value{kind: valDefault}, nil
		}
		target, err := e.binder.bindType(e.scope, p.Default.Type)
		if err != nil {
			return value{}, err
		}
		return defaultOf(target), nil
	case p.Nameof != nil:
		last := p.Nameof.Parts[len(p.Nameof.Parts)-1]
		return value{kind: valString, s: csharp.TrimVerbatimPrefix(last.Name)}, nil
	case p.New != nil:
		if p.New.Type == nil {
			return value{kind: valNew}, nil
		}
		target, err := e.binder.bindType(e.scope, p.New.Type)
		if err != nil {
			return value{}, err
		}
		if !target.IsValueType() && !target.IsUnresolved() {
			return value{}, fmt.Errorf("'new %s()' is not a constant", target)
		}
		v := defaultOf(target)
		if v.kind == valDefault {
			v.kind = valNew
		}
		return v, nil
	default:
		return e.name(p.Name)
	}
}

// defaultOf returns the value of default(T)
func defaultOf(target *TypeRef) value {
	if enum := target.Enum(); enum != nil {
		v := intValue(enum.EnumUnderlying, new(big.Int))
		v.enum = enum
		return v
	}
	switch s := target.Special(); {
	case target.Kind == NullableRef:
		return value{kind: valNull}
	case s == SpecialBoolean:
		return value{kind: valBool}
	case s == SpecialChar, s.IsIntegral():
		return intValue(s, new(big.Int))
	case s.IsFloatingPoint():
		return floatValue(s, 0)
	case s == SpecialDecimal:
		return value{kind: valDecimal, special: s, d: new(big.Rat)}
	case !target.IsValueType() && !target.IsUnresolved() && target.Kind != TypeParameterRef:
		return value{kind: valNull}
	}
	return value{kind: valDefault, typ: target}
}

func literal(lit *csharp.Literal) (value, error) {
	switch {
	case lit.Null:
		return value{kind: valNull}, nil
	case lit.Bool != nil:
		return value{kind: valBool, b: *lit.Bool == "true"}, nil
	case lit.String != nil:
		s, err := csharp.UnquoteString(*lit.String)
		return value{kind: valString, s: s}, err
	case lit.Verbatim != nil:
		s, err := csharp.UnquoteVerbatim(*lit.Verbatim)
		return value{kind: valString, s: s}, err
	case lit.Char != "":
		r, err := csharp.UnquoteChar(lit.Char)
		return intValue(SpecialChar, big.NewInt(int64(r))), err
	case lit.Interp != nil:
		return value{}, fmt.Errorf("interpolated string %s is not a constant", *lit.Interp)
	}

	num, err := csharp.ParseNumber(lit.Number)
	if err != nil {
		return value{}, err
	}
	switch num.Kind {
	case csharp.NumberInt:
		return intValue(SpecialInt32, new(big.Int).SetUint64(num.Bits)), nil
	case csharp.NumberUInt:
		return intValue(SpecialUInt32, new(big.Int).SetUint64(num.Bits)), nil
	case csharp.NumberLong:
		return intValue(SpecialInt64, new(big.Int).SetUint64(num.Bits)), nil
	case csharp.NumberULong:
		return intValue(SpecialUInt64, new(big.Int).SetUint64(num.Bits)), nil
	case csharp.NumberFloat:
		return floatValue(SpecialSingle, num.Float), nil
	case csharp.NumberDouble:
		return floatValue(SpecialDouble, num.Float), nil
	}
	return value{kind: valDecimal, special: SpecialDecimal, d: num.Decimal}, nil
}

// name resolves a simple or qualified name to an enum member, a const field or
// a predefined constant. Members of types the program cannot see are kept as
// written.
func (e *evaluator) name(qn *csharp.QualifiedName) (value, error) {
	n := len(qn.Parts)
	last := csharp.TrimVerbatimPrefix(qn.Parts[n-1].Name)

	if n == 1 && !qn.Global && qn.Alias == "" {
		return e.simpleName(last)
	}

	qualifier := &csharp.QualifiedName{Global: qn.Global, Alias: qn.Alias, Parts: qn.Parts[:n-1]}
	sym := e.binder.bindName(e.scope, qualifier, "")
	if sym.alias != nil {
		ref, err := e.binder.bindType(sym.aliasScope, sym.alias)
		if err != nil {
			return value{}, err
		}
		if ref.Kind == NamedRef {
			sym = symbol{typ: ref.Type}
		}
	}
	if !sym.found() {
		return value{kind: valSymbol, s: e.binder.writtenName(e.scope, qualifier) + "." + last}, nil
	}
	if sym.typ == nil {
		return value{}, fmt.Errorf("'%s' does not denote a constant", qualifiedText(qn))
	}
	return e.memberOf(sym.typ, last)
}

// simpleName looks an unqualified name up in the enum being evaluated, then
// in the const fields of the enclosing types, then through using static
// directives.
func (e *evaluator) simpleName(name string) (value, error) {
	if e.enum != nil {
		for _, m := range e.enum.EnumMembers {
			if m.Name == name {
				return e.member(m)
			}
		}
	}

	for s := e.scope; s != nil; s = s.parent {
		if s.typ == nil {
			continue
		}
		if c := s.typ.ConstantField(name); c != nil {
			return e.binder.evaluateConst(c)
		}
	}

	var unseen []string
	for s := e.scope; s != nil; s = s.parent {
		for _, u := range s.usings {
			if !u.Static || u.Target.Name == nil {
				continue
			}
			sym := e.binder.bindName(s, u.Target.Name, "")
			if sym.typ == nil || (sym.typ.IsExternal && sym.typ.Special == SpecialNone) {
				unseen = append(unseen, qualifiedText(u.Target.Name))
				continue
			}
			if v, err := e.memberOf(sym.typ, name); err == nil {
				return v, nil
			}
		}
	}
	if len(unseen) == 1 {
		return value{kind: valSymbol, s: unseen[0] + "." + name}, nil
	}
	return value{}, fmt.Errorf("the name '%s' does not denote a constant", name)
}

// memberOf evaluates name as a constant member of t
func (e *evaluator) memberOf(t *NamedType, name string) (value, error) {
	if t.IsEnum() {
		for _, m := range t.EnumMembers {
			if m.Name == name {
				return e.member(m)
			}
		}
		return value{}, fmt.Errorf("'%s' does not contain a definition for '%s'", t.DisplayName(), name)
	}
	if c := t.ConstantField(name); c != nil {
		return e.binder.evaluateConst(c)
	}
	if t.Special != SpecialNone {
		if v, ok := specialConstant(t.Special, name); ok {
			return v, nil
		}
	} else if t.IsExternal {
		return value{kind: valSymbol, s: t.DisplayName() + "." + name}, nil
	}
	return value{}, fmt.Errorf("'%s.%s' is not a constant", t.DisplayName(), name)
}

// member evaluates an enum member reference. Inside the enum's own
// initializers the member is a plain underlying value.
func (e *evaluator) member(m *EnumMember) (value, error) {
	c, err := e.binder.evaluateEnumMember(m)
	if err != nil {
		return value{}, err
	}
	v := constToValue(c)
	if m.Containing != e.enum {
		v.enum = m.Containing
	}
	return v, nil
}

// convertExplicit applies a cast to a constant
func convertExplicit(v value, target *TypeRef) (value, error) {
	fail := fmt.Errorf("cannot convert constant of type '%s' to '%s'", v.describe(), target)

	if v.kind == valSymbol {
		if target.Underlying().Enum() != nil {
			return value{}, fail
		}
		return value{kind: valSymbol, s: "(" + target.String() + ")" + v.s}, nil
	}

	switch target.Kind {
	case NullableRef:
		if v.kind == valNull || v.kind == valDefault {
			return value{kind: valNull}, nil
		}
		return convertExplicit(v, target.Elem)
	case TupleRef, ArrayRef:
		if v.kind == valNull && target.Kind == ArrayRef {
			return v, nil
		}
		if v.kind == valDefault {
			return value{kind: valDefault, typ: target}, nil
		}
		return value{}, fail
	case TypeParameterRef:
		if v.kind == valDefault {
			return value{kind: valDefault, typ: target}, nil
		}
		return value{}, fail
	}

	if enum := target.Enum(); enum != nil {
		if v.kind == valDefault {
			return defaultOf(target), nil
		}
		out, err := convertNumeric(v, enum.EnumUnderlying, fail)
		if err != nil {
			return value{}, err
		}
		out.enum = enum
		return out, nil
	}

	s := target.Special()
	switch {
	case v.kind == valDefault:
		return defaultOf(target), nil
	case s == SpecialBoolean:
		if v.kind == valBool {
			return v, nil
		}
	case s == SpecialChar, s.IsIntegral(), s.IsFloatingPoint(), s == SpecialDecimal:
		return convertNumeric(v, s, fail)
	case s == SpecialString:
		if v.kind == valString || v.kind == valNull {
			return value{kind: v.kind, s: v.s}, nil
		}
	case v.kind == valNull && !target.IsValueType():
		return v, nil
	}
	return value{}, fail
}

// convertNumeric performs a checked explicit numeric conversion
func convertNumeric(v value, to SpecialType, fail error) (value, error) {
	if !v.isNumeric() {
		return value{}, fail
	}

	overflow := fmt.Errorf("constant value cannot be converted to '%s'", to)
	switch {
	case to.IsFloatingPoint():
		return floatValue(to, v.float()), nil
	case to == SpecialDecimal:
		if v.kind == valFloat && (math.IsNaN(v.f) || math.IsInf(v.f, 0)) {
			return value{}, overflow
		}
		return value{kind: valDecimal, special: to, d: v.rat()}, nil
	}

	var n *big.Int
	switch v.kind {
	case valFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return value{}, overflow
		}
		n, _ = big.NewFloat(math.Trunc(v.f)).Int(nil)
	case valDecimal:
		n = new(big.Int).Quo(v.d.Num(), v.d.Denom())
	default:
		n = v.n
	}
	if !fits(n, to) {
		return value{}, overflow
	}
	return intValue(to, n), nil
}

// convertImplicit converts a folded value to the constant stored for a
// parameter of the target type.
func convertImplicit(v value, target *TypeRef) (Constant, error) {
	fail := fmt.Errorf("cannot implicitly convert type '%s' to '%s'", v.describe(), target)

	switch target.Kind {
	case NullableRef:
		switch v.kind {
		case valNull, valDefault, valNew:
			return Null(), nil
		}
		return convertImplicit(v, target.Elem)
	case TupleRef:
		if v.kind == valDefault || v.kind == valNew {
			return DefaultStruct(), nil
		}
		return Constant{}, fail
	case ArrayRef:
		if v.kind == valNull || v.kind == valDefault {
			return Null(), nil
		}
		return Constant{}, fail
	case TypeParameterRef:
		switch v.kind {
		case valDefault:
			return DefaultStruct(), nil
		case valNull:
			return Null(), nil
		}
		return Constant{}, fail
	}

	if enum := target.Enum(); enum != nil {
		switch {
		case v.kind == valDefault || v.kind == valNew:
			return zeroConstant(enum.EnumUnderlying), nil
		case v.enum == enum:
			return makeIntegral(enum.EnumUnderlying, v.n), nil
		case v.enum == nil && v.kind == valInt && v.n.Sign() == 0:
			return zeroConstant(enum.EnumUnderlying), nil
		}
		return Constant{}, fail
	}

	if v.enum != nil {
		return Constant{}, fail
	}
	if v.kind == valSymbol {
		return Symbolic(v.s), nil
	}

	if s := target.Special(); s != SpecialNone {
		return convertSpecial(v, s, fail)
	}

	switch {
	case target.IsUnresolved():
		switch v.kind {
		case valNull:
			return Null(), nil
		case valDefault, valNew:
			return DefaultStruct(), nil
		}
	case target.IsValueType():
		if v.kind == valDefault || v.kind == valNew {
			return DefaultStruct(), nil
		}
	default:
		if v.kind == valNull || v.kind == valDefault {
			return Null(), nil
		}
	}
	return Constant{}, fail
}

func convertSpecial(v value, s SpecialType, fail error) (Constant, error) {
	switch v.kind {
	case valDefault, valNew:
		return zeroConstant(s), nil
	case valNull:
		if !s.IsValueType() {
			return Null(), nil
		}
		return Constant{}, fail
	}

	switch {
	case s == SpecialString:
		if v.kind == valString {
			return StringValue(v.s), nil
		}
	case s == SpecialBoolean:
		if v.kind == valBool {
			return Constant{Type: s, Value: v.b}, nil
		}
	case s == SpecialChar:
		if v.kind == valChar {
			return makeIntegral(s, v.n), nil
		}
	case s.IsIntegral():
		if v.isIntegral() && implicitIntegral(v.special, s, v.n) {
			return makeIntegral(s, v.n), nil
		}
	case s.IsFloatingPoint():
		switch {
		case v.isIntegral():
			return Constant{Type: s, Value: floatValue(s, v.float()).f}, nil
		case v.kind == valFloat && (s == SpecialDouble || v.special == SpecialSingle):
			return Constant{Type: s, Value: v.f}, nil
		}
	case s == SpecialDecimal:
		if v.isIntegral() || v.kind == valDecimal {
			return Constant{Type: s, Value: v.rat()}, nil
		}
	}
	return Constant{}, fail
}

// implicitIntegral reports whether a constant of type from with value n
// converts implicitly to the integral type to
func implicitIntegral(from, to SpecialType, n *big.Int) bool {
	switch {
	case from == to:
		return true
	case from == SpecialInt32:
		return fits(n, to)
	case from == SpecialInt64 && to == SpecialUInt64:
		return n.Sign() >= 0
	}
	return contains(to, from)
}
