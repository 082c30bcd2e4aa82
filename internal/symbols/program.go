package symbols

import (
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/dispatchgen/internal/csharp"
	"github.com/toyz/dispatchgen/internal/errors"
)

// Source is one C# source unit of a program
type Source struct {
	Path string `json:"path"`
	Text string `json:"text"`
}

// Declaration is a type declaration carrying at least one attribute list,
// as found by the syntax-level scan of a program.
type Declaration struct {
	Tree   *csharp.SyntaxTree
	Syntax *csharp.TypeDecl
}

// Name returns the declared simple name
func (d *Declaration) Name() string {
	return csharp.TrimVerbatimPrefix(d.Syntax.Name)
}

// Location returns where the declaration starts
func (d *Declaration) Location() errors.SourceLocation {
	return location(d.Tree, d.Syntax.Pos)
}

// Program is an immutable snapshot of a set of bound C# sources. Every query
// answers from the snapshot; adding sources produces a new Program.
type Program struct {
	assemblyName string
	trees        []*csharp.SyntaxTree
	global       *Namespace

	types      []*NamedType
	byMetadata map[string]*NamedType
	declared   map[*csharp.TypeDecl]*typeDeclaration
	annotated  []*Declaration
	bindErrors map[*NamedType]error
	errorOrder []*NamedType

	specials  map[SpecialType]*NamedType
	externals map[string]*NamedType
}

// Compile parses the sources and binds them into a program snapshot. Syntax
// errors of all sources are collected into a single *errors.MultipleErrors.
func Compile(assemblyName string, sources ...Source) (*Program, error) {
	trees, err := parseSources(sources)
	if err != nil {
		return nil, err
	}
	return NewProgram(assemblyName, trees...), nil
}

// NewProgram binds already parsed syntax trees into a program snapshot
func NewProgram(assemblyName string, trees ...*csharp.SyntaxTree) *Program {
	p := &Program{
		assemblyName: assemblyName,
		trees:        trees,
		global:       newNamespace("", nil),
		byMetadata:   make(map[string]*NamedType),
		declared:     make(map[*csharp.TypeDecl]*typeDeclaration),
		bindErrors:   make(map[*NamedType]error),
		specials:     make(map[SpecialType]*NamedType),
		externals:    make(map[string]*NamedType),
	}

	b := &binder{program: p}
	b.declareAll()
	b.bindAll()

	return p
}

func parseSources(sources []Source) ([]*csharp.SyntaxTree, error) {
	var multi *errors.MultipleErrors
	trees := make([]*csharp.SyntaxTree, 0, len(sources))
	for _, src := range sources {
		tree, err := csharp.Parse(src.Path, src.Text)
		if err != nil {
			var genErr errors.GeneratorError
			if !errors.As(err, &genErr) {
				genErr = errors.WrapParseError(src.Path, err)
			}
			errors.AddToMultiple(&multi, genErr)
			continue
		}
		trees = append(trees, tree)
	}
	if err := multi.ErrOrNil(); err != nil {
		return nil, err
	}
	return trees, nil
}

// WithSources returns a new snapshot containing this program's sources plus
// the given ones. The receiver is left unchanged.
func (p *Program) WithSources(sources ...Source) (*Program, error) {
	extra, err := parseSources(sources)
	if err != nil {
		return nil, err
	}
	trees := make([]*csharp.SyntaxTree, 0, len(p.trees)+len(extra))
	trees = append(trees, p.trees...)
	trees = append(trees, extra...)
	return NewProgram(p.assemblyName, trees...), nil
}

// AssemblyName returns the identity of the compiled program, which may be empty
func (p *Program) AssemblyName() string {
	return p.assemblyName
}

// Trees returns the syntax trees of the program in input order
func (p *Program) Trees() []*csharp.SyntaxTree {
	return p.trees
}

// Sources returns the source units of the program in input order
func (p *Program) Sources() []Source {
	sources := make([]Source, len(p.trees))
	for i, tree := range p.trees {
		sources[i] = Source{Path: tree.Path, Text: tree.Text}
	}
	return sources
}

// Types returns every type declared in the program's sources in declaration order
func (p *Program) Types() []*NamedType {
	return p.types
}

// TypeByMetadataName resolves a source-declared type by its metadata name,
// e.g. Fluxor.DispatchableAttribute or Ns.Outer+Inner.
func (p *Program) TypeByMetadataName(name string) *NamedType {
	return p.byMetadata[name]
}

// AnnotatedDeclarations returns every type declaration that carries at least
// one attribute list, in tree order and then in document order.
func (p *Program) AnnotatedDeclarations() []*Declaration {
	return p.annotated
}

// DeclaredSymbol resolves a declaration to its bound type. Declarations that
// do not belong to this program, or whose signatures could not be bound,
// return a *errors.BindingError.
func (p *Program) DeclaredSymbol(decl *Declaration) (*NamedType, error) {
	if decl == nil || decl.Syntax == nil {
		return nil, errors.NewBindingError("<nil>", "no declaration")
	}
	td, ok := p.declared[decl.Syntax]
	if !ok {
		return nil, errors.NewBindingError(decl.Name(), "declaration is not part of this program").
			WithLocation(decl.Location())
	}
	if err, failed := p.bindErrors[td.symbol]; failed {
		return nil, err
	}
	return td.symbol, nil
}

// Diagnostics returns the binding errors of the program in declaration order
func (p *Program) Diagnostics() []error {
	errs := make([]error, 0, len(p.errorOrder))
	for _, t := range p.errorOrder {
		errs = append(errs, p.bindErrors[t])
	}
	return errs
}

// ImportedNamespaces returns the namespaces imported by using directives in
// scope at the declaration that are neither declared by the program's sources
// nor System itself, sorted. Unresolved type names in a signature may come
// from any of them.
func (p *Program) ImportedNamespaces(decl *Declaration) []string {
	td, ok := p.declared[decl.Syntax]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	for s := td.outer; s != nil; s = s.parent {
		for _, u := range s.usings {
			if u.Alias != "" || u.Static || u.Target.Name == nil {
				continue
			}
			name := qualifiedText(u.Target.Name)
			if name == "System" || p.namespaceByName(name) != nil {
				continue
			}
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// namespaceByName returns the source-declared namespace with the given full name
func (p *Program) namespaceByName(name string) *Namespace {
	ns := p.global
	if name == "" {
		return ns
	}
	for _, part := range strings.Split(name, ".") {
		ns = ns.child(part, false)
		if ns == nil {
			return nil
		}
	}
	return ns
}

// qualifiedText renders a qualified name as written, without type arguments
func qualifiedText(qn *csharp.QualifiedName) string {
	names := make([]string, len(qn.Parts))
	for i, part := range qn.Parts {
		names[i] = csharp.TrimVerbatimPrefix(part.Name)
	}
	text := strings.Join(names, ".")
	switch {
	case qn.Global:
		return "global::" + text
	case qn.Alias != "":
		return qn.Alias + "::" + text
	}
	return text
}

func location(tree *csharp.SyntaxTree, pos lexer.Position) errors.SourceLocation {
	file := pos.Filename
	if tree != nil {
		file = tree.Path
	}
	return errors.SourceLocation{
		File:   file,
		Line:   pos.Line,
		Column: pos.Column,
	}
}
