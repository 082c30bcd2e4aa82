package symbols

import (
	"fmt"
	"strings"

	"github.com/toyz/dispatchgen/internal/csharp"
	"github.com/toyz/dispatchgen/internal/errors"
)

// SpecialType identifies the predefined types that have a C# keyword
type SpecialType int

const (
	SpecialNone SpecialType = iota
	SpecialObject
	SpecialString
	SpecialBoolean
	SpecialChar
	SpecialSByte
	SpecialByte
	SpecialInt16
	SpecialUInt16
	SpecialInt32
	SpecialUInt32
	SpecialInt64
	SpecialUInt64
	SpecialSingle
	SpecialDouble
	SpecialDecimal
	SpecialIntPtr
	SpecialUIntPtr
)

var specialKeywords = map[SpecialType]string{
	SpecialObject:  "object",
	SpecialString:  "string",
	SpecialBoolean: "bool",
	SpecialChar:    "char",
	SpecialSByte:   "sbyte",
	SpecialByte:    "byte",
	SpecialInt16:   "short",
	SpecialUInt16:  "ushort",
	SpecialInt32:   "int",
	SpecialUInt32:  "uint",
	SpecialInt64:   "long",
	SpecialUInt64:  "ulong",
	SpecialSingle:  "float",
	SpecialDouble:  "double",
	SpecialDecimal: "decimal",
	SpecialIntPtr:  "nint",
	SpecialUIntPtr: "nuint",
}

var specialMetadataNames = map[SpecialType]string{
	SpecialObject:  "Object",
	SpecialString:  "String",
	SpecialBoolean: "Boolean",
	SpecialChar:    "Char",
	SpecialSByte:   "SByte",
	SpecialByte:    "Byte",
	SpecialInt16:   "Int16",
	SpecialUInt16:  "UInt16",
	SpecialInt32:   "Int32",
	SpecialUInt32:  "UInt32",
	SpecialInt64:   "Int64",
	SpecialUInt64:  "UInt64",
	SpecialSingle:  "Single",
	SpecialDouble:  "Double",
	SpecialDecimal: "Decimal",
	SpecialIntPtr:  "IntPtr",
	SpecialUIntPtr: "UIntPtr",
}

// keywordTypes maps predefined type keywords to their special type
var keywordTypes = func() map[string]SpecialType {
	m := make(map[string]SpecialType, len(specialKeywords))
	for special, keyword := range specialKeywords {
		m[keyword] = special
	}
	return m
}()

// Keyword returns the C# keyword of the special type
func (s SpecialType) Keyword() string {
	return specialKeywords[s]
}

// String returns the keyword, or "none"
func (s SpecialType) String() string {
	if k, ok := specialKeywords[s]; ok {
		return k
	}
	return "none"
}

// IsIntegral reports whether the special type is an integral numeric type
func (s SpecialType) IsIntegral() bool {
	switch s {
	case SpecialSByte, SpecialByte, SpecialInt16, SpecialUInt16, SpecialInt32, SpecialUInt32,
		SpecialInt64, SpecialUInt64, SpecialIntPtr, SpecialUIntPtr:
		return true
	}
	return false
}

// IsUnsigned reports whether the special type is an unsigned integral type
func (s SpecialType) IsUnsigned() bool {
	switch s {
	case SpecialByte, SpecialUInt16, SpecialUInt32, SpecialUInt64, SpecialUIntPtr:
		return true
	}
	return false
}

// IsFloatingPoint reports whether the special type is float or double
func (s SpecialType) IsFloatingPoint() bool {
	return s == SpecialSingle || s == SpecialDouble
}

// IsValueType reports whether the special type is a value type
func (s SpecialType) IsValueType() bool {
	return s != SpecialNone && s != SpecialObject && s != SpecialString
}

// TypeKind classifies named types
type TypeKind int

const (
	KindUnknown TypeKind = iota
	KindClass
	KindStruct
	KindInterface
	KindEnum
	KindDelegate
	KindRecordClass
	KindRecordStruct
)

// String returns the declaration keyword of the kind
func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindDelegate:
		return "delegate"
	case KindRecordClass:
		return "record"
	case KindRecordStruct:
		return "record struct"
	default:
		return "unknown"
	}
}

// Accessibility is the declared accessibility of a type or member
type Accessibility int

const (
	AccessibilityPrivate Accessibility = iota
	AccessibilityPrivateProtected
	AccessibilityProtected
	AccessibilityInternal
	AccessibilityProtectedInternal
	AccessibilityPublic
)

// String returns the modifiers that declare the accessibility
func (a Accessibility) String() string {
	switch a {
	case AccessibilityPrivateProtected:
		return "private protected"
	case AccessibilityProtected:
		return "protected"
	case AccessibilityInternal:
		return "internal"
	case AccessibilityProtectedInternal:
		return "protected internal"
	case AccessibilityPublic:
		return "public"
	default:
		return "private"
	}
}

// Namespace is a namespace declared by the program's sources
type Namespace struct {
	Name     string // fully qualified, empty for the global namespace
	Parent   *Namespace
	children map[string]*Namespace
	types    map[string]*NamedType
}

func newNamespace(name string, parent *Namespace) *Namespace {
	return &Namespace{
		Name:     name,
		Parent:   parent,
		children: make(map[string]*Namespace),
		types:    make(map[string]*NamedType),
	}
}

// child returns the named child namespace, creating it when create is true
func (n *Namespace) child(name string, create bool) *Namespace {
	if c, ok := n.children[name]; ok || !create {
		return c
	}
	full := name
	if n.Name != "" {
		full = n.Name + "." + name
	}
	c := newNamespace(full, n)
	n.children[name] = c
	return c
}

// Type returns the type declared directly in the namespace with the given name and arity
func (n *Namespace) Type(name string, arity int) *NamedType {
	return n.types[typeKey(name, arity)]
}

// typeKey is the lookup key of a type by name and generic arity
func typeKey(name string, arity int) string {
	if arity == 0 {
		return name
	}
	return fmt.Sprintf("%s`%d", name, arity)
}

// NamedType is a class, struct, interface, enum, delegate or record
type NamedType struct {
	Name           string
	Namespace      string     // containing namespace, empty for the global namespace
	Containing     *NamedType // containing type of nested types
	Kind           TypeKind
	Special        SpecialType
	Accessibility  Accessibility
	IsAbstract     bool
	IsStatic       bool
	IsExternal     bool // referenced but not declared in the program's sources
	TypeParameters []string
	Attributes     []*AttributeData
	Constructors   []*Method
	EnumUnderlying SpecialType
	EnumMembers    []*EnumMember
	Location       errors.SourceLocation

	nested       map[string]*NamedType
	constants    map[string]*ConstField
	declarations []*typeDeclaration
	written      string // source text of unresolved external names
}

// ConstantField returns the constant field with the given name
func (t *NamedType) ConstantField(name string) *ConstField {
	return t.constants[name]
}

// NestedType returns the nested type with the given name and arity
func (t *NamedType) NestedType(name string, arity int) *NamedType {
	if t.nested == nil {
		return nil
	}
	return t.nested[typeKey(name, arity)]
}

// IsRecord reports whether the type is a record class or record struct
func (t *NamedType) IsRecord() bool {
	return t.Kind == KindRecordClass || t.Kind == KindRecordStruct
}

// IsEnum reports whether the type is an enum
func (t *NamedType) IsEnum() bool {
	return t.Kind == KindEnum
}

// IsGeneric reports whether the type or any containing type declares type parameters
func (t *NamedType) IsGeneric() bool {
	for c := t; c != nil; c = c.Containing {
		if len(c.TypeParameters) > 0 {
			return true
		}
	}
	return false
}

// IsValueType reports whether the type is a struct, record struct, enum or predefined value type
func (t *NamedType) IsValueType() bool {
	if t.Special != SpecialNone {
		return t.Special.IsValueType()
	}
	switch t.Kind {
	case KindStruct, KindRecordStruct, KindEnum:
		return true
	}
	return false
}

// IsUnresolved reports whether the type is a name that could not be bound to any known type
func (t *NamedType) IsUnresolved() bool {
	return t.IsExternal && t.Kind == KindUnknown
}

// MetadataName returns the CLR metadata name, e.g. Ns.Outer+Inner`1
func (t *NamedType) MetadataName() string {
	name := typeKey(t.Name, len(t.TypeParameters))
	if t.Containing != nil {
		return t.Containing.MetadataName() + "+" + name
	}
	if t.Namespace == "" {
		return name
	}
	return t.Namespace + "." + name
}

// DisplayName returns the fully qualified name without type arguments, e.g. Ns.Outer.Inner
func (t *NamedType) DisplayName() string {
	if t.written != "" {
		return t.written
	}
	if t.Special != SpecialNone {
		return t.Special.Keyword()
	}
	if t.Containing != nil {
		return t.Containing.DisplayName() + "." + t.Name
	}
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// EffectiveAccessibility returns the most restrictive accessibility along the containing type chain
func (t *NamedType) EffectiveAccessibility() Accessibility {
	access := t.Accessibility
	for c := t.Containing; c != nil; c = c.Containing {
		if c.Accessibility < access {
			access = c.Accessibility
		}
	}
	return access
}

// HasAttribute reports whether the type carries an attribute whose class is exactly attr
func (t *NamedType) HasAttribute(attr *NamedType) bool {
	if attr == nil {
		return false
	}
	for _, a := range t.Attributes {
		if a.Class == attr {
			return true
		}
	}
	return false
}

// PublicConstructors returns the public instance constructors in declaration order
func (t *NamedType) PublicConstructors() []*Method {
	var ctors []*Method
	for _, ctor := range t.Constructors {
		if ctor.Accessibility == AccessibilityPublic && !ctor.IsStatic {
			ctors = append(ctors, ctor)
		}
	}
	return ctors
}

// EnumMemberByValue returns the first enum member whose constant equals value
func (t *NamedType) EnumMemberByValue(value Constant) *EnumMember {
	for _, m := range t.EnumMembers {
		if m.Value.Equal(value) {
			return m
		}
	}
	return nil
}

// String implements fmt.Stringer
func (t *NamedType) String() string {
	return t.DisplayName()
}

// AttributeData is an attribute application on a type
type AttributeData struct {
	Name     string     // name as written
	Class    *NamedType // bound attribute class, nil when it could not be resolved
	Location errors.SourceLocation
}

// Method is a constructor of a named type
type Method struct {
	ContainingType *NamedType
	Accessibility  Accessibility
	Parameters     []*Parameter
	IsPrimary      bool // declared by the type's parameter list
	IsImplicit     bool // synthesized parameterless constructor
	IsStatic       bool
	Location       errors.SourceLocation
}

// Signature renders the constructor as Name(type, type)
func (m *Method) Signature() string {
	types := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		types[i] = p.Type.String()
	}
	return fmt.Sprintf("%s(%s)", m.ContainingType.Name, strings.Join(types, ", "))
}

// Parameter is a constructor parameter with its static type and optional default
type Parameter struct {
	Name       string
	Type       *TypeRef
	Modifier   string // params, ref, in, out, ref readonly, scoped ...
	HasDefault bool
	Default    Constant
	Location   errors.SourceLocation
}

// ArgumentModifier returns the modifier the parameter requires at a call site
func (p *Parameter) ArgumentModifier() string {
	fields := strings.Fields(p.Modifier)
	for i, f := range fields {
		switch f {
		case "out":
			return "out"
		case "in":
			return "in"
		case "ref":
			if i+1 < len(fields) && fields[i+1] == "readonly" {
				return "in"
			}
			return "ref"
		}
	}
	return ""
}

// EnumMember is a named constant of an enum
type EnumMember struct {
	Name       string
	Containing *NamedType
	Value      Constant
	Location   errors.SourceLocation

	syntax *csharp.EnumMember
	index  int
	state  evalState
	err    error
}

// FullName returns the fully qualified member reference, e.g. Ns.Color.Red
func (m *EnumMember) FullName() string {
	return m.Containing.DisplayName() + "." + csharp.Identifier(m.Name)
}

// ConstField is a const field of a class, struct or record. Its value is
// folded the first time an expression refers to it.
type ConstField struct {
	Name       string
	Containing *NamedType
	Location   errors.SourceLocation

	syntax *csharp.ConstDeclarator
	typ    *csharp.TypeSyntax
	scope  *scope
	value  value
	state  evalState
	err    error
}

type evalState int

const (
	evalPending evalState = iota
	evalRunning
	evalDone
)
