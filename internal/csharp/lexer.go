package csharp

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes the subset of C# needed to bind type declarations.
// Rule order matters: the first matching rule wins.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "Directive", Pattern: `#[^\n]*`},
	{Name: "Verbatim", Pattern: `@"(?:""|[^"])*"`},
	{Name: "Interpolated", Pattern: `\$@?"(?:\\.|[^"\\])*"`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"`},
	{Name: "Char", Pattern: `'(?:\\.[^'\n]*|[^'\\\n])'`},
	{Name: "Ident", Pattern: `@?[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Number", Pattern: `(?:0[xX][0-9a-fA-F_]+|0[bB][01_]+|[0-9][0-9_]*(?:\.[0-9][0-9_]*)?(?:[eE][+-]?[0-9]+)?|\.[0-9][0-9_]*(?:[eE][+-]?[0-9]+)?)(?:[uU][lL]?|[lL][uU]?|[fFdDmM])?`},
	{Name: "Operator", Pattern: `::|\?\?=?|\?\.|=>|==|!=|<=|>=|&&|\|\||\+\+|--|[-+*/%&|^!~?:;,.=<>(){}\[\]]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// elidedTokens are dropped before parsing
var elidedTokens = []string{"Whitespace", "Comment", "Directive"}
