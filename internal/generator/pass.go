package generator

import (
	"context"
	"strings"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/symbols"
	"github.com/toyz/dispatchgen/internal/templates"
)

// Pass runs one generation pass: bootstrap, collect, resolve, emit and
// assemble. A Pass holds no state between runs and may be shared by
// concurrent callers.
type Pass struct {
	options Options
}

// NewPass creates a pass with the given options
func NewPass(opts Options) (*Pass, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Pass{options: opts}, nil
}

// Options returns the effective options of the pass
func (p *Pass) Options() Options {
	return p.options
}

// Run executes the pass against the host's program. Units reach the host
// only when every stage succeeds; a failed pass delivers nothing.
func (p *Pass) Run(ctx context.Context, host Host) (*Result, error) {
	if host == nil {
		return nil, errors.NewPreconditionError("host", errors.New(errors.PreconditionErrorCode, "host is required"))
	}
	program := host.Program()
	if program == nil {
		return nil, errors.NewPreconditionError("program", errors.New(errors.PreconditionErrorCode, "host returned no program"))
	}

	result := &Result{}
	assembler := NewAssembler()

	bootstrap, err := EnsureMarkerExists(program, p.options)
	if err != nil {
		return nil, errors.WrapGenerateError(p.options.MarkerUnitName(), "bootstrap", err)
	}
	if !bootstrap.Present {
		if assembler.Add(*bootstrap.Unit) {
			program, err = host.Resnapshot(program, *bootstrap.Unit)
			if err != nil {
				return nil, err
			}
		}
		result.MarkerGenerated = true
	}

	metadataName := p.options.MarkerMetadataName()
	marker := program.TypeByMetadataName(metadataName)
	if marker == nil {
		return nil, errors.NewMarkerUnavailableError(metadataName)
	}

	collection, err := Collect(ctx, program, program.AnnotatedDeclarations(), marker)
	if err != nil {
		return nil, err
	}
	result.Types = collection.Types
	result.Exclusions = collection.Exclusions

	identity, err := ProgramIdentity(program, p.options.AssemblyName)
	if err != nil {
		return nil, err
	}
	result.Identity = identity

	emitter := NewEmitter(p.options)
	var forwarders []string
	for _, t := range collection.Types {
		text, err := emitter.EmitForwarders(t)
		if err != nil {
			return nil, errors.WrapGenerateError(t.Symbol.DisplayName(), "emit", err)
		}
		forwarders = append(forwarders, text...)
	}
	result.Forwarders = len(forwarders)

	unit, err := p.extensionsUnit(program, identity, collection.Types, forwarders)
	if err != nil {
		return nil, err
	}
	assembler.Add(unit)

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapCanceled("assembly", err)
	}
	if err := assembler.Commit(host); err != nil {
		return nil, err
	}
	result.Units = assembler.Units()
	return result, nil
}

// ExtensionsUnitName returns the logical name of the aggregate unit for a program identity
func ExtensionsUnitName(identity string) string {
	return ExtensionsClassName(identity) + ".g.cs"
}

// ExtensionsClassName returns the container class name for a program identity
func ExtensionsClassName(identity string) string {
	return identity + "DispatcherExtensions"
}

func (p *Pass) extensionsUnit(program *symbols.Program, identity string, types []*AnnotatedType, forwarders []string) (Unit, error) {
	name := ExtensionsUnitName(identity)

	var b strings.Builder
	err := templates.RenderExtensions(&b, templates.ExtensionsData{
		Namespace:  p.options.Namespace,
		ClassName:  ExtensionsClassName(identity),
		Usings:     p.usings(program, types),
		Forwarders: forwarders,
	})
	if err != nil {
		return Unit{}, errors.WrapGenerateError(name, "render", err)
	}
	return Unit{Name: name, Text: b.String()}, nil
}

// usings returns the external namespaces the records' signatures may rely on
func (p *Pass) usings(program *symbols.Program, types []*AnnotatedType) []string {
	imports := templates.NewImportManager("System", p.options.Namespace)
	for _, t := range types {
		imports.AddUsings(program.ImportedNamespaces(t.Declaration)...)
	}
	return imports.Usings()
}
