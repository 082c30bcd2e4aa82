package symbols

import (
	"fmt"
	"strings"

	"github.com/toyz/dispatchgen/internal/csharp"
	"github.com/toyz/dispatchgen/internal/errors"
)

// typeDeclaration is one syntactic declaration of a (possibly partial) type
type typeDeclaration struct {
	tree     *csharp.SyntaxTree
	symbol   *NamedType
	syntax   *csharp.TypeDecl
	enum     *csharp.EnumDecl
	delegate *csharp.DelegateDecl
	outer    *scope // scope the declaration appears in
	inner    *scope // scope of the declaration's body
}

func (d *typeDeclaration) modifiers() []string {
	switch {
	case d.syntax != nil:
		return d.syntax.Modifiers
	case d.enum != nil:
		return d.enum.Modifiers
	case d.delegate != nil:
		return d.delegate.Modifiers
	}
	return nil
}

func (d *typeDeclaration) attributes() []*csharp.AttributeSection {
	switch {
	case d.syntax != nil:
		return d.syntax.Attributes
	case d.enum != nil:
		return d.enum.Attributes
	case d.delegate != nil:
		return d.delegate.Attributes
	}
	return nil
}

// scope is one level of name lookup: a namespace declaration or a type body
type scope struct {
	parent *scope
	ns     *Namespace
	typ    *NamedType
	usings []*csharp.Using
}

// symbol is the result of looking up a name
type symbol struct {
	ns         *Namespace
	extNs      string // namespace known only from the framework table
	typ        *NamedType
	typeParam  string
	alias      *csharp.TypeSyntax // using alias target
	aliasScope *scope
}

func (s symbol) found() bool {
	return s.ns != nil || s.extNs != "" || s.typ != nil || s.typeParam != "" || s.alias != nil
}

// binder populates a Program from its syntax trees
type binder struct {
	program *Program
}

func (b *binder) rootScope() *scope {
	return &scope{ns: b.program.global}
}

// declareAll creates namespaces and type symbols for every declaration
func (b *binder) declareAll() {
	var globalUsings []*csharp.Using
	for _, tree := range b.program.trees {
		for _, u := range tree.Root.Usings {
			if u.Global {
				globalUsings = append(globalUsings, u)
			}
		}
	}

	for _, tree := range b.program.trees {
		usings := append([]*csharp.Using{}, globalUsings...)
		for _, u := range tree.Root.Usings {
			if !u.Global {
				usings = append(usings, u)
			}
		}
		fileScope := &scope{ns: b.program.global, usings: usings}
		b.declareMembers(tree, fileScope, b.program.global, tree.Root.Members)
	}
}

func (b *binder) declareMembers(tree *csharp.SyntaxTree, sc *scope, ns *Namespace, members []*csharp.Member) {
	for _, m := range members {
		switch {
		case m.Namespace != nil:
			inner, current := sc, ns
			parts := m.Namespace.Name.Parts
			for i, part := range parts {
				current = current.child(csharp.TrimVerbatimPrefix(part.Name), true)
				next := &scope{parent: inner, ns: current}
				if i == len(parts)-1 {
					next.usings = m.Namespace.Usings
				}
				inner = next
			}
			b.declareMembers(tree, inner, current, m.Namespace.Members)
		case m.Enum != nil:
			b.declareEnum(tree, sc, ns, nil, m.Enum)
		case m.Delegate != nil:
			b.declareDelegate(tree, sc, ns, m.Delegate)
		case m.Type != nil:
			b.declareType(tree, sc, ns, nil, m.Type)
		}
	}
}

// lookupOrCreate returns the type with the given identity, creating it on first declaration.
// Later declarations of the same identity are partial parts of the same type.
func (b *binder) lookupOrCreate(ns *Namespace, containing *NamedType, name string, typeParams []string, kind TypeKind) *NamedType {
	key := typeKey(name, len(typeParams))

	table := ns.types
	if containing != nil {
		if containing.nested == nil {
			containing.nested = make(map[string]*NamedType)
		}
		table = containing.nested
	}
	if t, ok := table[key]; ok {
		return t
	}

	t := &NamedType{
		Name:           name,
		Namespace:      ns.Name,
		Containing:     containing,
		Kind:           kind,
		TypeParameters: typeParams,
	}
	table[key] = t
	b.program.types = append(b.program.types, t)
	b.program.byMetadata[t.MetadataName()] = t
	return t
}

func (b *binder) declareType(tree *csharp.SyntaxTree, sc *scope, ns *Namespace, containing *NamedType, decl *csharp.TypeDecl) {
	typeParams := make([]string, len(decl.TypeParams))
	for i, tp := range decl.TypeParams {
		typeParams[i] = csharp.TrimVerbatimPrefix(tp.Name)
	}

	t := b.lookupOrCreate(ns, containing, csharp.TrimVerbatimPrefix(decl.Name), typeParams, declaredKind(decl))
	if t.Location.IsEmpty() {
		t.Location = location(tree, decl.Pos)
	}

	td := &typeDeclaration{
		tree:   tree,
		symbol: t,
		syntax: decl,
		outer:  sc,
		inner:  &scope{parent: sc, typ: t},
	}
	t.declarations = append(t.declarations, td)
	b.program.declared[decl] = td
	if len(decl.Attributes) > 0 {
		b.program.annotated = append(b.program.annotated, &Declaration{Tree: tree, Syntax: decl})
	}

	for _, member := range decl.Members {
		switch {
		case member.Type != nil:
			b.declareType(tree, td.inner, ns, t, member.Type)
		case member.Enum != nil:
			b.declareEnum(tree, td.inner, ns, t, member.Enum)
		case member.Const != nil:
			b.declareConsts(tree, td.inner, t, member.Const)
		}
	}
}

func (b *binder) declareConsts(tree *csharp.SyntaxTree, sc *scope, t *NamedType, decl *csharp.ConstDecl) {
	if t.constants == nil {
		t.constants = make(map[string]*ConstField)
	}
	for _, d := range decl.Declarators {
		name := csharp.TrimVerbatimPrefix(d.Name)
		if _, ok := t.constants[name]; ok {
			continue
		}
		t.constants[name] = &ConstField{
			Name:       name,
			Containing: t,
			Location:   location(tree, d.Pos),
			syntax:     d,
			typ:        decl.Type,
			scope:      sc,
		}
	}
}

func (b *binder) declareEnum(tree *csharp.SyntaxTree, sc *scope, ns *Namespace, containing *NamedType, decl *csharp.EnumDecl) {
	t := b.lookupOrCreate(ns, containing, csharp.TrimVerbatimPrefix(decl.Name), nil, KindEnum)
	if t.Location.IsEmpty() {
		t.Location = location(tree, decl.Pos)
	}
	t.declarations = append(t.declarations, &typeDeclaration{
		tree:   tree,
		symbol: t,
		enum:   decl,
		outer:  sc,
		inner:  sc,
	})
}

func (b *binder) declareDelegate(tree *csharp.SyntaxTree, sc *scope, ns *Namespace, decl *csharp.DelegateDecl) {
	name, arity := delegateName(decl.Signature)
	if name == "" {
		return
	}
	typeParams := make([]string, arity)
	for i := range typeParams {
		typeParams[i] = fmt.Sprintf("T%d", i+1)
	}

	t := b.lookupOrCreate(ns, nil, name, typeParams, KindDelegate)
	if t.Location.IsEmpty() {
		t.Location = location(tree, decl.Pos)
	}
	t.declarations = append(t.declarations, &typeDeclaration{
		tree:     tree,
		symbol:   t,
		delegate: decl,
		outer:    sc,
		inner:    sc,
	})
}

// delegateName extracts the declared name and arity from a delegate signature
func delegateName(signature []*csharp.HeadItem) (string, int) {
	for i, item := range signature {
		if item.Token != "(" && item.Token != "<" {
			continue
		}
		if i == 0 {
			return "", 0
		}
		name := csharp.TrimVerbatimPrefix(signature[i-1].Token)
		if item.Token == "(" {
			return name, 0
		}
		arity, depth := 1, 0
		for _, next := range signature[i+1:] {
			switch next.Token {
			case "<":
				depth++
			case ">":
				if depth == 0 {
					return name, arity
				}
				depth--
			case ",":
				if depth == 0 {
					arity++
				}
			}
		}
		return name, arity
	}
	return "", 0
}

func declaredKind(decl *csharp.TypeDecl) TypeKind {
	switch decl.Kind {
	case "record":
		if decl.RecordKind == "struct" {
			return KindRecordStruct
		}
		return KindRecordClass
	case "struct":
		return KindStruct
	case "interface":
		return KindInterface
	default:
		return KindClass
	}
}

// bindAll binds modifiers, attributes, enum members and constructors of every declared type
func (b *binder) bindAll() {
	for _, t := range b.program.types {
		b.bindModifiers(t)
		b.bindAttributes(t)
	}

	for _, t := range b.program.types {
		if t.IsEnum() {
			b.bindEnum(t)
		}
	}
	for _, t := range b.program.types {
		if !t.IsEnum() {
			continue
		}
		for _, m := range t.EnumMembers {
			if _, err := b.evaluateEnumMember(m); err != nil {
				b.fail(t, err)
				break
			}
		}
	}

	for _, t := range b.program.types {
		switch t.Kind {
		case KindClass, KindStruct, KindRecordClass, KindRecordStruct:
			if err := b.bindConstructors(t); err != nil {
				b.fail(t, err)
			}
		}
	}
}

func (b *binder) fail(t *NamedType, err error) {
	if _, exists := b.program.bindErrors[t]; exists {
		return
	}
	b.program.bindErrors[t] = err
	b.program.errorOrder = append(b.program.errorOrder, t)
}

func (b *binder) bindModifiers(t *NamedType) {
	mods := make(map[string]bool)
	for _, d := range t.declarations {
		for _, m := range d.modifiers() {
			mods[m] = true
		}
	}

	t.IsAbstract = mods["abstract"]
	t.IsStatic = mods["static"]

	switch {
	case mods["public"]:
		t.Accessibility = AccessibilityPublic
	case mods["protected"] && mods["internal"]:
		t.Accessibility = AccessibilityProtectedInternal
	case mods["private"] && mods["protected"]:
		t.Accessibility = AccessibilityPrivateProtected
	case mods["protected"]:
		t.Accessibility = AccessibilityProtected
	case mods["internal"]:
		t.Accessibility = AccessibilityInternal
	case mods["private"], mods["file"]:
		t.Accessibility = AccessibilityPrivate
	case t.Containing == nil:
		t.Accessibility = AccessibilityInternal
	default:
		t.Accessibility = AccessibilityPrivate
	}
}

func (b *binder) bindAttributes(t *NamedType) {
	for _, d := range t.declarations {
		for _, section := range d.attributes() {
			if section.Target != "" && section.Target != "type" {
				continue
			}
			for _, attr := range section.Attributes {
				t.Attributes = append(t.Attributes, &AttributeData{
					Name:     qualifiedText(attr.Name),
					Class:    b.bindAttributeClass(d.outer, attr.Name),
					Location: location(d.tree, attr.Pos),
				})
			}
		}
	}
}

// bindAttributeClass resolves an attribute name, trying the Attribute suffixed
// form first. A using alias stands for the class it names.
func (b *binder) bindAttributeClass(sc *scope, qn *csharp.QualifiedName) *NamedType {
	for _, suffix := range []string{"Attribute", ""} {
		sym := b.bindName(sc, qn, suffix)
		if sym.alias != nil {
			if ref, err := b.bindType(sym.aliasScope, sym.alias); err == nil && ref.Kind == NamedRef {
				sym = symbol{typ: ref.Type}
			}
		}
		if sym.typ != nil && !sym.typ.IsUnresolved() {
			return sym.typ
		}
	}
	return nil
}

func (b *binder) bindEnum(t *NamedType) {
	t.EnumUnderlying = SpecialInt32
	d := t.declarations[0]

	if d.enum.Underlying != nil {
		ref, err := b.bindType(d.outer, d.enum.Underlying)
		switch {
		case err != nil:
			b.fail(t, err)
		case !ref.Special().IsIntegral():
			b.fail(t, errors.NewBindingError(t.DisplayName(), fmt.Sprintf("'%s' is not a valid enum underlying type", ref)).
				WithLocation(location(d.tree, d.enum.Underlying.Pos)))
		default:
			t.EnumUnderlying = ref.Special()
		}
	}

	for i, m := range d.enum.Members {
		t.EnumMembers = append(t.EnumMembers, &EnumMember{
			Name:       csharp.TrimVerbatimPrefix(m.Name),
			Containing: t,
			Location:   location(d.tree, m.Pos),
			syntax:     m,
			index:      i,
		})
	}
}

// evaluateEnumMember computes a member's constant on demand so members may
// reference each other in any order. Cycles are reported as errors.
func (b *binder) evaluateEnumMember(m *EnumMember) (Constant, error) {
	switch m.state {
	case evalDone:
		return m.Value, m.err
	case evalRunning:
		return Constant{}, errors.NewBindingError(m.Containing.DisplayName(),
			fmt.Sprintf("the evaluation of member '%s' refers to itself", m.Name)).WithLocation(m.Location)
	}
	m.state = evalRunning

	t := m.Containing
	var (
		result Constant
		err   error
	)
	switch {
	case m.syntax.Value != nil:
		ev := &evaluator{binder: b, scope: t.declarations[0].outer, enum: t}
		var v value
		v, err = ev.eval(m.syntax.Value)
		if err == nil {
			result, err = enumUnderlyingConstant(v, t)
		}
	case m.index == 0:
		result = zeroConstant(t.EnumUnderlying)
	default:
		var prev Constant
		prev, err = b.evaluateEnumMember(t.EnumMembers[m.index-1])
		if err == nil {
			result, err = incrementConstant(prev, t.EnumUnderlying)
		}
	}

	if err != nil {
		var bindErr *errors.BindingError
		if !errors.As(err, &bindErr) {
			err = errors.NewBindingError(t.DisplayName(), fmt.Sprintf("value of member '%s': %v", m.Name, err)).
				WithLocation(m.Location)
		}
	}

	m.Value, m.err, m.state = result, err, evalDone
	return result, err
}

// evaluateConst folds a const field on first use. The result carries the
// field's declared type, so an enum typed constant stays an enum value.
func (b *binder) evaluateConst(c *ConstField) (value, error) {
	switch c.state {
	case evalDone:
		return c.value, c.err
	case evalRunning:
		return value{}, errors.NewBindingError(c.Containing.DisplayName(),
			fmt.Sprintf("the evaluation of constant '%s' refers to itself", c.Name)).WithLocation(c.Location)
	}
	c.state = evalRunning

	v, err := b.foldConst(c)
	if err != nil {
		var bindErr *errors.BindingError
		if !errors.As(err, &bindErr) {
			err = errors.NewBindingError(c.Containing.DisplayName(), fmt.Sprintf("value of constant '%s': %v", c.Name, err)).
				WithLocation(c.Location)
		}
	}

	c.value, c.err, c.state = v, err, evalDone
	return v, err
}

func (b *binder) foldConst(c *ConstField) (value, error) {
	target, err := b.bindType(c.scope, c.typ)
	if err != nil {
		return value{}, err
	}
	ev := &evaluator{binder: b, scope: c.scope}
	v, err := ev.eval(c.syntax.Value)
	if err != nil {
		return value{}, err
	}
	if _, err := convertImplicit(v, target); err != nil {
		return value{}, err
	}
	if v.kind == valSymbol {
		return v, nil
	}
	return convertExplicit(v, target)
}

// bindConstructors collects the primary, explicit and implicit instance constructors
func (b *binder) bindConstructors(t *NamedType) error {
	primaryAccess := AccessibilityPublic
	if t.IsAbstract {
		primaryAccess = AccessibilityProtected
	}

	hasPrimary := false
	for _, d := range t.declarations {
		if d.syntax == nil || d.syntax.Parameters == nil || hasPrimary {
			continue
		}
		params, err := b.bindParameters(t, d, d.syntax.Parameters)
		if err != nil {
			return err
		}
		t.Constructors = append(t.Constructors, &Method{
			ContainingType: t,
			Accessibility:  primaryAccess,
			Parameters:     params,
			IsPrimary:      true,
			Location:       location(d.tree, d.syntax.Parameters.Pos),
		})
		hasPrimary = true
	}

	explicit, hasParameterless := 0, false
	for _, d := range t.declarations {
		if d.syntax == nil {
			continue
		}
		for _, member := range d.syntax.Members {
			ctor := member.Constructor
			if ctor == nil || csharp.TrimVerbatimPrefix(ctor.Name) != t.Name || hasModifier(ctor.Modifiers, "static") {
				continue
			}
			params, err := b.bindParameters(t, d, ctor.Parameters)
			if err != nil {
				return err
			}
			t.Constructors = append(t.Constructors, &Method{
				ContainingType: t,
				Accessibility:  memberAccessibility(ctor.Modifiers),
				Parameters:     params,
				Location:       location(d.tree, ctor.Pos),
			})
			explicit++
			if len(params) == 0 {
				hasParameterless = true
			}
		}
	}

	implicit := false
	switch t.Kind {
	case KindClass, KindRecordClass:
		implicit = !hasPrimary && explicit == 0 && !t.IsStatic
	case KindStruct, KindRecordStruct:
		implicit = !hasParameterless
	}
	if implicit {
		access := AccessibilityPublic
		if t.IsAbstract {
			access = AccessibilityProtected
		}
		t.Constructors = append(t.Constructors, &Method{
			ContainingType: t,
			Accessibility:  access,
			IsImplicit:     true,
			Location:       t.Location,
		})
	}

	return nil
}

func (b *binder) bindParameters(t *NamedType, d *typeDeclaration, list *csharp.ParameterList) ([]*Parameter, error) {
	params := make([]*Parameter, 0, len(list.Params))
	for _, ps := range list.Params {
		name := csharp.TrimVerbatimPrefix(ps.Name)
		loc := location(d.tree, ps.Pos)

		ref, err := b.bindType(d.inner, ps.Type)
		if err != nil {
			return nil, err
		}

		param := &Parameter{
			Name:     name,
			Type:     ref,
			Modifier: strings.Join(ps.Modifiers, " "),
			Location: loc,
		}

		if ps.Default != nil {
			ev := &evaluator{binder: b, scope: d.inner}
			v, err := ev.eval(ps.Default)
			if err == nil {
				param.Default, err = convertImplicit(v, ref)
			}
			if err != nil {
				var bindErr *errors.BindingError
				if errors.As(err, &bindErr) {
					return nil, bindErr
				}
				return nil, errors.NewBindingError(t.DisplayName(),
					fmt.Sprintf("default value of parameter '%s': %v", name, err)).WithLocation(loc)
			}
			param.HasDefault = true
		}

		params = append(params, param)
	}
	return params, nil
}

func hasModifier(mods []string, want string) bool {
	for _, m := range mods {
		if m == want {
			return true
		}
	}
	return false
}

func memberAccessibility(mods []string) Accessibility {
	switch {
	case hasModifier(mods, "public"):
		return AccessibilityPublic
	case hasModifier(mods, "protected") && hasModifier(mods, "internal"):
		return AccessibilityProtectedInternal
	case hasModifier(mods, "private") && hasModifier(mods, "protected"):
		return AccessibilityPrivateProtected
	case hasModifier(mods, "protected"):
		return AccessibilityProtected
	case hasModifier(mods, "internal"):
		return AccessibilityInternal
	default:
		return AccessibilityPrivate
	}
}

// bindType binds a type as written in a signature
func (b *binder) bindType(sc *scope, ts *csharp.TypeSyntax) (*TypeRef, error) {
	var ref *TypeRef
	if len(ts.Tuple) > 0 {
		elements := make([]*TupleElement, len(ts.Tuple))
		for i, e := range ts.Tuple {
			t, err := b.bindType(sc, e.Type)
			if err != nil {
				return nil, err
			}
			elements[i] = &TupleElement{Type: t, Name: csharp.TrimVerbatimPrefix(e.Name)}
		}
		ref = &TypeRef{Kind: TupleRef, Elements: elements}
	} else {
		var err error
		ref, err = b.bindNamedType(sc, ts.Name)
		if err != nil {
			return nil, err
		}
	}

	if ts.Nullable {
		if ref.IsValueType() && ref.Kind != NullableRef {
			ref = NullableOf(ref)
		} else {
			ref.Annotated = true
		}
	}

	if len(ts.Ranks) > 0 {
		ranks := make([]int, len(ts.Ranks))
		for i, r := range ts.Ranks {
			ranks[i] = len(r.Commas) + 1
		}
		ref = &TypeRef{Kind: ArrayRef, Elem: ref, Ranks: ranks, Annotated: ts.ArrayNullable}
	}

	return ref, nil
}

func (b *binder) bindNamedType(sc *scope, qn *csharp.QualifiedName) (*TypeRef, error) {
	last := qn.Parts[len(qn.Parts)-1]
	args := make([]*TypeRef, 0, len(last.Args))
	for _, a := range last.Args {
		ref, err := b.bindType(sc, a)
		if err != nil {
			return nil, err
		}
		args = append(args, ref)
	}

	sym := b.bindName(sc, qn, "")
	switch {
	case sym.alias != nil && len(qn.Parts) == 1 && !qn.Global && qn.Alias == "":
		return b.bindType(sym.aliasScope, sym.alias)
	case sym.typeParam != "":
		return &TypeRef{Kind: TypeParameterRef, Name: sym.typeParam}, nil
	case sym.typ != nil:
		if sym.typ.IsExternal && sym.typ.MetadataName() == "System.Nullable`1" && len(args) == 1 {
			return NullableOf(args[0]), nil
		}
		return &TypeRef{Kind: NamedRef, Type: sym.typ, Args: args}, nil
	}

	return &TypeRef{Kind: NamedRef, Type: b.unresolved(b.writtenName(sc, qn)), Args: args}, nil
}

// bindName resolves a qualified name to a namespace or type. suffix is appended
// to the last part, which is how attribute names are tried with "Attribute".
func (b *binder) bindName(sc *scope, qn *csharp.QualifiedName, suffix string) symbol {
	n := len(qn.Parts)
	partName := func(i int) string {
		name := csharp.TrimVerbatimPrefix(qn.Parts[i].Name)
		if i == n-1 {
			name += suffix
		}
		return name
	}

	var (
		sym   symbol
		start int
	)
	switch {
	case qn.Global || qn.Alias == "global":
		sym = symbol{ns: b.program.global}
	case qn.Alias != "":
		sym = b.lookupSimple(sc, qn.Alias, 0)
		if sym.alias != nil && sym.alias.Name != nil {
			sym = b.bindName(sym.aliasScope, sym.alias.Name, "")
		}
		if sym.ns == nil && sym.extNs == "" {
			return symbol{}
		}
	default:
		sym = b.lookupSimple(sc, partName(0), len(qn.Parts[0].Args))
		start = 1
	}

	for i := start; i < n; i++ {
		if sym.alias != nil {
			if sym.alias.Name == nil {
				return symbol{}
			}
			sym = b.bindName(sym.aliasScope, sym.alias.Name, "")
		}
		sym = b.lookupMember(sym, partName(i), len(qn.Parts[i].Args))
		if !sym.found() {
			return symbol{}
		}
	}
	return sym
}

// lookupSimple resolves an unqualified name by walking the scope chain outward
func (b *binder) lookupSimple(sc *scope, name string, arity int) symbol {
	if arity == 0 {
		if special, ok := keywordTypes[name]; ok {
			return symbol{typ: b.special(special)}
		}
	}

	for s := sc; s != nil; s = s.parent {
		if s.typ != nil {
			if arity == 0 {
				for _, tp := range s.typ.TypeParameters {
					if tp == name {
						return symbol{typeParam: name}
					}
				}
			}
			if nt := s.typ.NestedType(name, arity); nt != nil {
				return symbol{typ: nt}
			}
			continue
		}

		if nt := s.ns.Type(name, arity); nt != nil {
			return symbol{typ: nt}
		}
		if arity == 0 {
			if child := s.ns.child(name, false); child != nil {
				return symbol{ns: child}
			}
		}
		if s.ns.Name != "" {
			if sym := b.external(s.ns.Name+"."+name, arity); sym.found() {
				return sym
			}
		}

		if arity == 0 {
			for _, u := range s.usings {
				if u.Alias == name {
					aliasScope := s.parent
					if aliasScope == nil {
						aliasScope = b.rootScope()
					}
					return symbol{alias: u.Target, aliasScope: aliasScope}
				}
			}
		}
		for _, u := range s.usings {
			if u.Alias != "" || u.Static || u.Target.Name == nil {
				continue
			}
			target := qualifiedText(u.Target.Name)
			if ns := b.program.namespaceByName(target); ns != nil {
				if nt := ns.Type(name, arity); nt != nil {
					return symbol{typ: nt}
				}
			}
			if sym := b.external(target+"."+name, arity); sym.typ != nil {
				return sym
			}
		}
	}

	if arity == 0 && wellKnownNamespaces[name] {
		return symbol{extNs: name}
	}
	return symbol{}
}

// lookupMember resolves name as a member of a namespace or type
func (b *binder) lookupMember(sym symbol, name string, arity int) symbol {
	switch {
	case sym.typ != nil:
		if nt := sym.typ.NestedType(name, arity); nt != nil {
			return symbol{typ: nt}
		}
	case sym.ns != nil:
		if nt := sym.ns.Type(name, arity); nt != nil {
			return symbol{typ: nt}
		}
		if arity == 0 {
			if child := sym.ns.child(name, false); child != nil {
				return symbol{ns: child}
			}
		}
		full := name
		if sym.ns.Name != "" {
			full = sym.ns.Name + "." + name
		}
		return b.external(full, arity)
	case sym.extNs != "":
		return b.external(sym.extNs+"."+name, arity)
	}
	return symbol{}
}

// external resolves a fully qualified name against the framework table
func (b *binder) external(full string, arity int) symbol {
	if arity == 0 {
		for special, name := range specialMetadataNames {
			if full == "System."+name {
				return symbol{typ: b.special(special)}
			}
		}
	}

	key := typeKey(full, arity)
	if kind, ok := wellKnownTypes[key]; ok {
		if t, cached := b.program.externals[key]; cached {
			return symbol{typ: t}
		}
		dot := strings.LastIndex(full, ".")
		typeParams := make([]string, arity)
		for i := range typeParams {
			typeParams[i] = fmt.Sprintf("T%d", i+1)
		}
		t := &NamedType{
			Name:           full[dot+1:],
			Namespace:      full[:dot],
			Kind:           kind,
			Accessibility:  AccessibilityPublic,
			IsExternal:     true,
			TypeParameters: typeParams,
		}
		b.program.externals[key] = t
		return symbol{typ: t}
	}

	if arity == 0 && wellKnownNamespaces[full] {
		return symbol{extNs: full}
	}
	return symbol{}
}

// special returns the symbol of a predefined type
func (b *binder) special(s SpecialType) *NamedType {
	if t, ok := b.program.specials[s]; ok {
		return t
	}
	kind := KindStruct
	if !s.IsValueType() {
		kind = KindClass
	}
	t := &NamedType{
		Name:          specialMetadataNames[s],
		Namespace:     "System",
		Kind:          kind,
		Special:       s,
		Accessibility: AccessibilityPublic,
		IsExternal:    true,
	}
	b.program.specials[s] = t
	return t
}

// unresolved returns the placeholder symbol of a name no scope could resolve
func (b *binder) unresolved(written string) *NamedType {
	key := "?" + written
	if t, ok := b.program.externals[key]; ok {
		return t
	}
	t := &NamedType{
		Name:          written,
		Kind:          KindUnknown,
		Accessibility: AccessibilityPublic,
		IsExternal:    true,
		written:       written,
	}
	b.program.externals[key] = t
	return t
}

// writtenName renders an unresolved name, expanding a leading using alias
func (b *binder) writtenName(sc *scope, qn *csharp.QualifiedName) string {
	if qn.Global || qn.Alias != "" || len(qn.Parts) < 2 {
		return qualifiedText(qn)
	}
	first := b.lookupSimple(sc, csharp.TrimVerbatimPrefix(qn.Parts[0].Name), 0)
	if first.alias == nil || first.alias.Name == nil {
		return qualifiedText(qn)
	}
	rest := &csharp.QualifiedName{Parts: qn.Parts[1:]}
	return qualifiedText(first.alias.Name) + "." + qualifiedText(rest)
}
