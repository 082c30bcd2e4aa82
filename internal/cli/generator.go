package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/generator"
	"github.com/toyz/dispatchgen/internal/symbols"
	"github.com/toyz/dispatchgen/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	config      Config
	scanner     *DirectoryScanner
	resolver    *ProjectResolver
	reporter    *DiagnosticReporter
	diagnostics *utils.DiagnosticSystem
	summary     GenerationSummary
}

// NewGenerator creates a new CLI generator for config
func NewGenerator(config Config, diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(config.DiagnosticLevel())
	}
	if reporter == nil {
		reporter = NewDiagnosticReporter(config.Verbose)
	}
	return &Generator{
		config:      config,
		scanner:     NewDirectoryScanner(),
		resolver:    NewProjectResolver(),
		reporter:    reporter,
		diagnostics: diagnostics,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run scans the configured sources, runs one generation pass over them and
// writes the resulting units into the output directory. Nothing is written
// unless the pass succeeds and every unit could be staged on disk.
func (g *Generator) Run(ctx context.Context) (*generator.Result, error) {
	startTime := time.Now()
	g.summary = GenerationSummary{}

	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	g.diagnostics.Verbose("Starting code generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Scanning sources: %v", g.config.Sources)

	g.diagnostics.PhaseHeader("Scanning")
	sources, err := g.scanner.ScanSources(g.config.Sources)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, errors.ConfigurationError("sources", "no C# sources found").
			WithSuggestion("Check that the directories contain .cs files or use the './...' pattern").
			WithContext("sources", g.config.Sources)
	}
	g.summary.SourcesRead = len(sources)
	g.diagnostics.PhaseItem(formatCount(len(sources), "source file"))
	g.diagnostics.Indent()
	for _, src := range sources {
		g.diagnostics.Verbose("%s", src.Path)
	}
	g.diagnostics.Unindent()

	assemblyName, err := g.resolver.ResolveAssemblyName(g.config.AssemblyName, g.config.Sources)
	if err != nil {
		return nil, err
	}
	if assemblyName != "" {
		g.diagnostics.Debug("Resolved assembly name: %s", assemblyName)
	} else {
		g.diagnostics.Debug("No project file found; identity falls back to a source hash")
	}

	g.diagnostics.PhaseHeader("Compiling")
	program, err := symbols.Compile(assemblyName, sources...)
	if err != nil {
		return nil, err
	}
	for _, diag := range program.Diagnostics() {
		g.diagnostics.Verbose("%v", diag)
	}
	g.diagnostics.PhaseItem(formatCount(len(program.Types()), "type") + " bound")

	pass, err := generator.NewPass(g.config.Options())
	if err != nil {
		return nil, err
	}

	g.diagnostics.PhaseHeader("Generating")
	sink := NewFileSink(g.config.Output)
	result, err := pass.Run(ctx, generator.NewProgramHost(program, sink))
	if err != nil {
		return nil, err
	}
	if err := sink.Flush(); err != nil {
		return nil, err
	}

	g.reporter.ReportExclusions(result.Exclusions)

	g.summary.Identity = result.Identity
	g.summary.RecordsFound = len(result.Types)
	g.summary.RecordsSkipped = len(result.Exclusions)
	g.summary.ForwardersGenerated = result.Forwarders
	g.summary.MarkerGenerated = result.MarkerGenerated
	g.summary.GeneratedFiles = sink.Written()
	g.summary.UnchangedFiles = sink.Unchanged()

	for _, t := range result.Types {
		g.diagnostics.Verbose("%s: %s", t.Symbol.DisplayName(), formatCount(len(t.Constructors), "constructor"))
	}
	for _, file := range g.summary.GeneratedFiles {
		g.diagnostics.PhaseProgress("Writing " + file)
	}
	for _, file := range g.summary.UnchangedFiles {
		g.diagnostics.PhaseProgress("Unchanged " + file)
	}

	g.diagnostics.Verbose("Generation took %s", time.Since(startTime).Round(time.Millisecond))
	return result, nil
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
