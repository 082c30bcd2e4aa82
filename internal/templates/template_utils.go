package templates

import (
	"strings"
	"unicode"
)

// TemplateUtils provides common utilities for template generation
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// Indent prefixes every non-empty line of text with n spaces
func (tu *TemplateUtils) Indent(n int, text string) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.SplitAfter(text, "\n")

	var b strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			b.WriteString(prefix)
		}
		b.WriteString(line)
	}
	return b.String()
}

// ParameterDeclaration renders a parameter as it appears in a signature
func (tu *TemplateUtils) ParameterDeclaration(p ParameterData) string {
	var b strings.Builder
	if p.Modifier != "" {
		b.WriteString(p.Modifier)
		b.WriteByte(' ')
	}
	b.WriteString(p.Type)
	b.WriteByte(' ')
	b.WriteString(p.Name)
	if p.HasDefault {
		b.WriteString(" = ")
		b.WriteString(p.Default)
	}
	return b.String()
}

// ArgumentList renders the positional arguments that forward the parameters
func (tu *TemplateUtils) ArgumentList(params []ParameterData) string {
	args := make([]string, len(params))
	for i, p := range params {
		if p.ArgumentModifier != "" {
			args[i] = p.ArgumentModifier + " " + p.Name
			continue
		}
		args[i] = p.Name
	}
	return strings.Join(args, ", ")
}

// ToIdentifier turns arbitrary text, such as an assembly name, into a C#
// identifier by dropping every character that cannot appear in one.
func (tu *TemplateUtils) ToIdentifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	id := b.String()
	if id != "" && unicode.IsDigit([]rune(id)[0]) {
		id = "_" + id
	}
	return id
}

// DefaultTemplateUtils provides a global instance for convenience
var DefaultTemplateUtils = NewTemplateUtils()
