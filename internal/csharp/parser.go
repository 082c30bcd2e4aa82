package csharp

import (
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/toyz/dispatchgen/internal/errors"
)

// Parser parses C# source text into syntax trees
type Parser struct {
	parser *participle.Parser[File]
}

// SyntaxTree is one parsed source unit of a program
type SyntaxTree struct {
	Path string // logical path of the unit
	Text string // source text the tree was parsed from
	Root *File
}

// NewParser creates a new C# parser
func NewParser() *Parser {
	parser := participle.MustBuild[File](
		participle.Lexer(Lexer),
		participle.Elide(elidedTokens...),
		participle.UseLookahead(1024),
	)

	return &Parser{
		parser: parser,
	}
}

// defaultParser is shared by the package level helpers; participle parsers are safe for concurrent use
var defaultParser = NewParser()

// Parse parses source text with the package default parser
func Parse(path, source string) (*SyntaxTree, error) {
	return defaultParser.ParseSource(path, source)
}

// ParseSource parses a single source unit into a syntax tree.
// Parse failures are reported as *errors.SyntaxError carrying the offending position.
func (p *Parser) ParseSource(path, source string) (*SyntaxTree, error) {
	root, err := p.parser.ParseString(path, source)
	if err != nil {
		return nil, toSyntaxError(path, err)
	}

	return &SyntaxTree{
		Path: path,
		Text: source,
		Root: root,
	}, nil
}

// toSyntaxError converts a participle error into the generator's error model
func toSyntaxError(path string, err error) *errors.SyntaxError {
	var perr participle.Error
	if !errors.As(err, &perr) {
		syntaxErr := errors.NewSyntaxError(err.Error())
		syntaxErr.WithLocation(errors.SourceLocation{File: path})
		return syntaxErr
	}

	pos := perr.Position()
	file := pos.Filename
	if file == "" {
		file = path
	}

	syntaxErr := errors.NewSyntaxError(perr.Message())
	syntaxErr.WithLocation(errors.SourceLocation{
		File:   file,
		Line:   pos.Line,
		Column: pos.Column,
	})

	var unexpected *participle.UnexpectedTokenError
	if errors.As(err, &unexpected) {
		syntaxErr.Token = unexpected.Unexpected.Value
		syntaxErr.WithContext("token", unexpected.Unexpected.Value)
	}
	if strings.Contains(perr.Message(), "unexpected token \"<EOF>\"") {
		syntaxErr.WithSuggestion("Check for an unbalanced brace or a missing semicolon")
	}

	return syntaxErr
}
