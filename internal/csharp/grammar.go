package csharp

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File represents the root of a C# compilation unit
type File struct {
	Pos              lexer.Position
	Usings           []*Using                  `parser:"@@*"`
	GlobalAttributes []*GlobalAttributeSection `parser:"@@*"`
	Members          []*Member                 `parser:"@@*"`
}

// Using represents a using directive
type Using struct {
	Pos    lexer.Position
	Global bool        `parser:"@'global'?"`
	Static bool        `parser:"'using' @'static'?"`
	Alias  string      `parser:"(@Ident '=')?"`
	Target *TypeSyntax `parser:"@@ ';'"`
}

// GlobalAttributeSection represents an assembly or module level attribute list
type GlobalAttributeSection struct {
	Pos        lexer.Position
	Target     string       `parser:"'[' @('assembly' | 'module') ':'"`
	Attributes []*Attribute `parser:"@@ (',' @@)* ','? ']'"`
}

// Member represents a namespace or type declared at namespace level
type Member struct {
	Namespace *Namespace    `parser:"  @@"`
	Enum      *EnumDecl     `parser:"| @@"`
	Delegate  *DelegateDecl `parser:"| @@"`
	Type      *TypeDecl     `parser:"| @@"`
}

// Namespace represents a block or file-scoped namespace declaration
type Namespace struct {
	Pos        lexer.Position
	Name       *QualifiedName `parser:"'namespace' @@"`
	FileScoped bool           `parser:"( @';' | '{' )"`
	Usings     []*Using       `parser:"@@*"`
	Members    []*Member      `parser:"@@*"`
	Closed     bool           `parser:"(@'}' ';'?)?"`
}

// DelegateDecl represents a delegate type declared at namespace level; its signature is not interpreted
type DelegateDecl struct {
	Pos        lexer.Position
	Attributes []*AttributeSection `parser:"@@*"`
	Modifiers  []string            `parser:"@('public' | 'private' | 'protected' | 'internal' | 'file' | 'unsafe' | 'new')*"`
	Signature  []*HeadItem         `parser:"'delegate' @@* ';'"`
}

// AttributeSection represents a bracketed attribute list
type AttributeSection struct {
	Pos        lexer.Position
	Target     string       `parser:"'[' (@Ident ':')?"`
	Attributes []*Attribute `parser:"@@ (',' @@)* ','? ']'"`
}

// Attribute represents a single attribute application
type Attribute struct {
	Pos  lexer.Position
	Name *QualifiedName `parser:"@@"`
	Args *ParenGroup    `parser:"@@?"`
}

// TypeDecl represents a record, class, struct or interface declaration
type TypeDecl struct {
	Pos         lexer.Position
	Attributes  []*AttributeSection `parser:"@@*"`
	Modifiers   []string            `parser:"@('public' | 'private' | 'protected' | 'internal' | 'file' | 'static' | 'sealed' | 'abstract' | 'partial' | 'readonly' | 'ref' | 'unsafe' | 'new')*"`
	Kind        string              `parser:"@('record' | 'class' | 'struct' | 'interface')"`
	RecordKind  string              `parser:"@('class' | 'struct')?"`
	Name        string              `parser:"@Ident"`
	TypeParams  []*TypeParam        `parser:"('<' @@ (',' @@)* '>')?"`
	Parameters  *ParameterList      `parser:"@@?"`
	Bases       []*BaseType         `parser:"(':' @@ (',' @@)*)?"`
	Constraints []*Constraint       `parser:"@@*"`
	Members     []*TypeMember       `parser:"( '{' @@* '}' ';'?"`
	Semicolon   bool                `parser:"| @';' )"`
}

// TypeParam represents a generic type parameter
type TypeParam struct {
	Attributes []*AttributeSection `parser:"@@*"`
	Variance   string              `parser:"@('in' | 'out')?"`
	Name       string              `parser:"@Ident"`
}

// BaseType represents an entry of a base list, optionally with primary constructor arguments
type BaseType struct {
	Type *TypeSyntax `parser:"@@"`
	Args *ParenGroup `parser:"@@?"`
}

// Constraint represents a where clause; its content is not interpreted
type Constraint struct {
	Parameter string            `parser:"'where' @Ident ':'"`
	Tokens    []*ConstraintItem `parser:"@@+"`
}

// ConstraintItem is a single token of a where clause
type ConstraintItem struct {
	Token string `parser:"@~('{' | ';' | 'where')"`
}

// TypeMember represents one member of a type body
type TypeMember struct {
	Enum        *EnumDecl        `parser:"  @@"`
	Type        *TypeDecl        `parser:"| @@"`
	Constructor *ConstructorDecl `parser:"| @@"`
	Const       *ConstDecl       `parser:"| @@"`
	Other       *OtherMember     `parser:"| @@"`
}

// ConstDecl represents a constant field declaration
type ConstDecl struct {
	Pos         lexer.Position
	Attributes  []*AttributeSection `parser:"@@*"`
	Modifiers   []string            `parser:"@('public' | 'private' | 'protected' | 'internal' | 'file' | 'new')*"`
	Type        *TypeSyntax         `parser:"'const' @@"`
	Declarators []*ConstDeclarator  `parser:"@@ (',' @@)* ';'"`
}

// ConstDeclarator is one name = value pair of a constant field declaration
type ConstDeclarator struct {
	Pos   lexer.Position
	Name  string `parser:"@Ident"`
	Value *Expr  `parser:"'=' @@"`
}

// EnumDecl represents an enum declaration
type EnumDecl struct {
	Pos        lexer.Position
	Attributes []*AttributeSection `parser:"@@*"`
	Modifiers  []string            `parser:"@('public' | 'private' | 'protected' | 'internal' | 'file' | 'new')*"`
	Name       string              `parser:"'enum' @Ident"`
	Underlying *TypeSyntax         `parser:"(':' @@)?"`
	Members    []*EnumMember       `parser:"'{' (@@ (',' @@)* ','?)? '}' ';'?"`
}

// EnumMember represents a single enum member with an optional explicit value
type EnumMember struct {
	Pos        lexer.Position
	Attributes []*AttributeSection `parser:"@@*"`
	Name       string              `parser:"@Ident"`
	Value      *Expr               `parser:"('=' @@)?"`
}

// ConstructorDecl represents an explicit instance or static constructor
type ConstructorDecl struct {
	Pos         lexer.Position
	Attributes  []*AttributeSection `parser:"@@*"`
	Modifiers   []string            `parser:"@('public' | 'private' | 'protected' | 'internal' | 'static' | 'extern' | 'unsafe' | 'file')*"`
	Name        string              `parser:"@Ident"`
	Parameters  *ParameterList      `parser:"@@"`
	Initializer *CtorInitializer    `parser:"@@?"`
	Body        *Block              `parser:"( @@"`
	Expression  []*HeadItem         `parser:"| '=>' @@* ';'"`
	Extern      bool                `parser:"| @';' )"`
}

// CtorInitializer represents a this(...) or base(...) constructor initializer
type CtorInitializer struct {
	Kind string      `parser:"':' @('this' | 'base')"`
	Args *ParenGroup `parser:"@@"`
}

// OtherMember is any member that does not influence generation (fields,
// properties, methods, events, operators). Its tokens are skipped structurally.
type OtherMember struct {
	Pos       lexer.Position
	Head      []*HeadItem `parser:"@@*"`
	Semicolon bool        `parser:"( @';'"`
	Body      *Block      `parser:"| @@"`
	Tail      *MemberTail `parser:"  @@? )"`
}

// MemberTail continues a member after a braced block, as in property initializers
type MemberTail struct {
	Semicolon bool        `parser:"  @';'"`
	Tokens    []*TailItem `parser:"| ('=' | '.') @@* ';'"`
}

// TailItem is a nested block or a single token of a member tail
type TailItem struct {
	Block *Block `parser:"  @@"`
	Token string `parser:"| @~('{' | '}' | ';')"`
}

// HeadItem is a single token of a member head
type HeadItem struct {
	Token string `parser:"@~('{' | '}' | ';')"`
}

// Block is a balanced braced token sequence
type Block struct {
	Items []*BlockItem `parser:"'{' @@* '}'"`
}

// BlockItem is a nested block or a single token inside a block
type BlockItem struct {
	Block *Block `parser:"  @@"`
	Token string `parser:"| @~('{' | '}' | ';')"`
	Semi  bool   `parser:"| @';'"`
}

// ParenGroup is a balanced parenthesized token sequence
type ParenGroup struct {
	Items []*ParenItem `parser:"'(' @@* ')'"`
}

// ParenItem is a nested group or a single token inside parentheses
type ParenItem struct {
	Group *ParenGroup `parser:"  @@"`
	Token string      `parser:"| @~('(' | ')')"`
}

// ParameterList represents a parenthesized parameter list
type ParameterList struct {
	Pos    lexer.Position
	Params []*Parameter `parser:"'(' (@@ (',' @@)*)? ')'"`
}

// Parameter represents a formal parameter with an optional default value
type Parameter struct {
	Pos        lexer.Position
	Attributes []*AttributeSection `parser:"@@*"`
	Modifiers  []string            `parser:"@('params' | 'ref' | 'out' | 'in' | 'this' | 'scoped' | 'readonly')*"`
	Type       *TypeSyntax         `parser:"@@"`
	Name       string              `parser:"@Ident"`
	Default    *Expr               `parser:"('=' @@)?"`
}

// TypeSyntax represents a type reference as written in source
type TypeSyntax struct {
	Pos           lexer.Position
	Tuple         []*TupleElement `parser:"( '(' @@ (',' @@)+ ')'"`
	Name          *QualifiedName  `parser:"| @@ )"`
	Nullable      bool            `parser:"@'?'?"`
	Ranks         []*ArrayRank    `parser:"@@*"`
	ArrayNullable bool            `parser:"@'?'?"`
}

// TupleElement represents one element of a tuple type
type TupleElement struct {
	Type *TypeSyntax `parser:"@@"`
	Name string      `parser:"@Ident?"`
}

// ArrayRank represents one array rank specifier
type ArrayRank struct {
	Commas []string `parser:"'[' @','* ']'"`
}

// QualifiedName represents a possibly qualified, possibly generic name
type QualifiedName struct {
	Pos    lexer.Position
	Global bool        `parser:"(@'global' '::')?"`
	Alias  string      `parser:"(@Ident '::')?"`
	Parts  []*NamePart `parser:"@@ ('.' @@)*"`
}

// NamePart is one dotted segment of a qualified name
type NamePart struct {
	Name string        `parser:"@Ident"`
	Args []*TypeSyntax `parser:"('<' @@ (',' @@)* '>')?"`
}

// Expr represents a constant expression: a unary operand followed by binary operations
type Expr struct {
	Pos  lexer.Position
	Left *Unary      `parser:"@@"`
	Ops  []*BinaryOp `parser:"@@*"`
}

// BinaryOp is an operator and its right operand
type BinaryOp struct {
	Op    string `parser:"@('|' | '&' | '^' | '+' | '-' | '*' | '/' | '%' | '<' '<' | '>' '>')"`
	Right *Unary `parser:"@@"`
}

// Unary represents a prefix operator application or a primary expression
type Unary struct {
	Op      string   `parser:"( @('-' | '+' | '~' | '!')"`
	Operand *Unary   `parser:"  @@"`
	Primary *Primary `parser:"| @@ )"`
}

// Primary represents the operand forms accepted in constant expressions
type Primary struct {
	Pos     lexer.Position
	Cast    *CastExpr      `parser:"  @@"`
	Paren   *Expr          `parser:"| '(' @@ ')'"`
	Literal *Literal       `parser:"| @@"`
	Default *DefaultExpr   `parser:"| @@"`
	Nameof  *QualifiedName `parser:"| 'nameof' '(' @@ ')'"`
	New     *NewExpr       `parser:"| @@"`
	Name    *QualifiedName `parser:"| @@"`
}

// CastExpr represents an explicit conversion such as (Color)3
type CastExpr struct {
	Type    *TypeSyntax `parser:"'(' @@ ')'"`
	Operand *Unary      `parser:"@@"`
}

// DefaultExpr represents default or default(T)
type DefaultExpr struct {
	Keyword bool        `parser:"@'default'"`
	Type    *TypeSyntax `parser:"('(' @@ ')')?"`
}

// NewExpr represents a parameterless object creation such as new() or new T()
type NewExpr struct {
	Keyword bool        `parser:"@'new'"`
	Type    *TypeSyntax `parser:"@@? '(' ')'"`
}

// Literal represents a literal token
type Literal struct {
	Null     bool    `parser:"  @'null'"`
	Bool     *string `parser:"| @('true' | 'false')"`
	Number   string  `parser:"| @Number"`
	String   *string `parser:"| @String"`
	Verbatim *string `parser:"| @Verbatim"`
	Char     string  `parser:"| @Char"`
	Interp   *string `parser:"| @Interpolated"`
}
