package generator

import (
	"context"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/symbols"
)

// Collection is the outcome of Collect
type Collection struct {
	Types      []*AnnotatedType
	Exclusions []Exclusion
}

// Collect resolves the candidate declarations against program and keeps the
// records that carry marker. Candidates that cannot be resolved are excluded,
// never reported as errors. Accepted types keep discovery order. The context
// is checked once per candidate.
func Collect(ctx context.Context, program *symbols.Program, candidates []*symbols.Declaration, marker *symbols.NamedType) (*Collection, error) {
	if marker == nil {
		return nil, errors.NewPreconditionError("marker", errors.New(errors.PreconditionErrorCode, "marker type is required"))
	}

	result := &Collection{}
	seen := make(map[*symbols.NamedType]bool)

	for _, decl := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapCanceled("collection", err)
		}

		symbol, err := program.DeclaredSymbol(decl)
		if err != nil {
			result.exclude(decl, "declaration could not be resolved", err)
			continue
		}
		if seen[symbol] {
			continue
		}

		if !symbol.IsRecord() || !symbol.HasAttribute(marker) {
			continue
		}
		seen[symbol] = true

		if symbol.IsGeneric() {
			result.exclude(decl, "generic records are not supported", nil)
			continue
		}
		switch symbol.EffectiveAccessibility() {
		case symbols.AccessibilityPublic, symbols.AccessibilityInternal, symbols.AccessibilityProtectedInternal:
		default:
			result.exclude(decl, "record is not accessible outside its containing type", nil)
			continue
		}

		result.Types = append(result.Types, &AnnotatedType{
			Symbol:       symbol,
			Declaration:  decl,
			Name:         symbol.Name,
			Namespace:    symbol.Namespace,
			Constructors: symbol.PublicConstructors(),
		})
	}

	return result, nil
}

func (c *Collection) exclude(decl *symbols.Declaration, reason string, err error) {
	c.Exclusions = append(c.Exclusions, Exclusion{
		Name:     decl.Name(),
		Location: decl.Location(),
		Reason:   reason,
		Err:      err,
	})
}
