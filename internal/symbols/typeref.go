package symbols

import (
	"strings"
)

// TypeRefKind distinguishes the shapes a type reference can take
type TypeRefKind int

const (
	NamedRef TypeRefKind = iota
	NullableRef
	ArrayRef
	TupleRef
	TypeParameterRef
)

// TypeRef is a bound reference to a type as used in a signature
type TypeRef struct {
	Kind      TypeRefKind
	Type      *NamedType      // NamedRef
	Args      []*TypeRef      // NamedRef type arguments
	Elem      *TypeRef        // NullableRef and ArrayRef element
	Ranks     []int           // ArrayRef dimensions per rank specifier
	Elements  []*TupleElement // TupleRef
	Name      string          // TypeParameterRef
	Annotated bool            // nullable reference annotation
}

// TupleElement is one element of a tuple type
type TupleElement struct {
	Type *TypeRef
	Name string
}

// Named returns a reference to a non-generic named type
func Named(t *NamedType) *TypeRef {
	return &TypeRef{Kind: NamedRef, Type: t}
}

// NullableOf wraps a value type reference in Nullable<T>
func NullableOf(elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: NullableRef, Elem: elem}
}

// IsValueType reports whether the referenced type is a value type
func (r *TypeRef) IsValueType() bool {
	switch r.Kind {
	case NullableRef, TupleRef:
		return true
	case NamedRef:
		return r.Type.IsValueType()
	}
	return false
}

// IsNullableValue reports whether the reference is Nullable<T>
func (r *TypeRef) IsNullableValue() bool {
	return r.Kind == NullableRef
}

// Underlying returns T for Nullable<T> and the reference itself otherwise
func (r *TypeRef) Underlying() *TypeRef {
	if r.Kind == NullableRef {
		return r.Elem
	}
	return r
}

// Enum returns the enum type the reference names, or nil
func (r *TypeRef) Enum() *NamedType {
	if r.Kind == NamedRef && r.Type.IsEnum() {
		return r.Type
	}
	return nil
}

// Special returns the special type the reference names, or SpecialNone
func (r *TypeRef) Special() SpecialType {
	if r.Kind == NamedRef {
		return r.Type.Special
	}
	return SpecialNone
}

// IsString reports whether the reference names System.String
func (r *TypeRef) IsString() bool {
	return r.Special() == SpecialString
}

// IsUnresolved reports whether the reference names a type that could not be bound
func (r *TypeRef) IsUnresolved() bool {
	return r.Kind == NamedRef && r.Type.IsUnresolved()
}

// String renders the reference the way C# displays a fully qualified type
func (r *TypeRef) String() string {
	var b strings.Builder
	r.write(&b)
	return b.String()
}

func (r *TypeRef) write(b *strings.Builder) {
	switch r.Kind {
	case NullableRef:
		r.Elem.write(b)
		b.WriteByte('?')
		return
	case ArrayRef:
		r.Elem.write(b)
		for _, rank := range r.Ranks {
			b.WriteByte('[')
			b.WriteString(strings.Repeat(",", rank-1))
			b.WriteByte(']')
		}
	case TupleRef:
		b.WriteByte('(')
		for i, e := range r.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			e.Type.write(b)
			if e.Name != "" {
				b.WriteByte(' ')
				b.WriteString(e.Name)
			}
		}
		b.WriteByte(')')
	case TypeParameterRef:
		b.WriteString(r.Name)
	default:
		b.WriteString(r.Type.DisplayName())
		if len(r.Args) > 0 {
			b.WriteByte('<')
			for i, arg := range r.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				arg.write(b)
			}
			b.WriteByte('>')
		}
	}
	if r.Annotated {
		b.WriteByte('?')
	}
}
