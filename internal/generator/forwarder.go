package generator

import (
	"strings"

	"github.com/toyz/dispatchgen/internal/csharp"
	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/symbols"
	"github.com/toyz/dispatchgen/internal/templates"
)

// Emitter renders one forwarder per public constructor of an annotated type
type Emitter struct {
	options  Options
	resolver LiteralResolver
}

// NewEmitter creates an emitter for the given options
func NewEmitter(opts Options) *Emitter {
	opts = opts.WithDefaults()
	return &Emitter{
		options:  opts,
		resolver: LiteralResolver{EscapeStrings: opts.EscapeStrings},
	}
}

// EmitForwarders renders the forwarders of every public constructor of t in
// declaration order. The first constructor that fails aborts the type.
func (e *Emitter) EmitForwarders(t *AnnotatedType) ([]string, error) {
	forwarders := make([]string, 0, len(t.Constructors))
	for _, ctor := range t.Constructors {
		text, err := e.EmitForwarder(t, ctor)
		if err != nil {
			return nil, err
		}
		forwarders = append(forwarders, text)
	}
	return forwarders, nil
}

// EmitForwarder renders the forwarder of a single constructor
func (e *Emitter) EmitForwarder(t *AnnotatedType, ctor *symbols.Method) (string, error) {
	data, err := e.forwarderData(t, ctor)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := templates.RenderForwarder(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (e *Emitter) forwarderData(t *AnnotatedType, ctor *symbols.Method) (templates.ForwarderData, error) {
	params := make([]templates.ParameterData, 0, len(ctor.Parameters))
	for _, p := range ctor.Parameters {
		resolved, err := e.resolver.ResolveParameter(p)
		if err != nil {
			if _, ok := err.(errors.GeneratorError); ok {
				return templates.ForwarderData{}, err
			}
			return templates.ForwarderData{}, errors.NewBindingError(t.Symbol.DisplayName(), err.Error()).WithLocation(p.Location)
		}

		params = append(params, templates.ParameterData{
			Modifier:         p.Modifier,
			ArgumentModifier: p.ArgumentModifier(),
			Type:             p.Type.String(),
			Name:             csharp.Identifier(p.Name),
			HasDefault:       p.HasDefault,
			Default:          resolved.Literal,
		})
	}

	return templates.ForwarderData{
		Access:         forwarderAccess(t.Symbol),
		Name:           e.forwarderName(t),
		DispatcherType: e.options.DispatcherType,
		DispatchMethod: e.options.DispatchMethod,
		TypeName:       t.Symbol.DisplayName(),
		Parameters:     params,
	}, nil
}

func (e *Emitter) forwarderName(t *AnnotatedType) string {
	if !e.options.QualifyNames {
		return e.options.FunctionPrefix + csharp.TrimVerbatimPrefix(t.Name)
	}
	// Dots become single underscores and underscores inside a name are
	// doubled, so two distinct qualified names never yield the same forwarder.
	parts := strings.Split(t.Symbol.DisplayName(), ".")
	for i, part := range parts {
		parts[i] = strings.ReplaceAll(templates.DefaultTemplateUtils.ToIdentifier(part), "_", "__")
	}
	return e.options.FunctionPrefix + strings.Join(parts, "_")
}

// forwarderAccess keeps forwarders of internal records from exposing them publicly
func forwarderAccess(t *symbols.NamedType) string {
	switch t.EffectiveAccessibility() {
	case symbols.AccessibilityInternal, symbols.AccessibilityProtectedInternal:
		return "internal"
	}
	return "public"
}
