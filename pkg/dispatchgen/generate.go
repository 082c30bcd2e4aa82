// Package dispatchgen generates Fluxor-style dispatcher extension methods for
// C# records carrying the Dispatchable marker attribute.
package dispatchgen

import (
	"context"
	"strings"

	"golang.org/x/tools/txtar"

	"github.com/toyz/dispatchgen/internal/cli"
	"github.com/toyz/dispatchgen/internal/generator"
	"github.com/toyz/dispatchgen/internal/symbols"
)

// Options controls the names and formatting of generated code
type Options = generator.Options

// Source is a named C# source text
type Source = symbols.Source

// Unit is a generated source text and its logical file name
type Unit = generator.Unit

// DefaultOptions returns the options that reproduce Fluxor's dispatcher extensions
func DefaultOptions() Options {
	return generator.DefaultOptions()
}

// Exclusion describes a marked declaration that produced no forwarders
type Exclusion struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Reason   string `json:"reason"`
}

// Output is the result of a successful Generate call
type Output struct {
	Identity        string      `json:"identity"`
	MarkerGenerated bool        `json:"markerGenerated"`
	Records         []string    `json:"records"`
	Forwarders      int         `json:"forwarders"`
	Exclusions      []Exclusion `json:"exclusions,omitempty"`
	Units           []Unit      `json:"units"`
}

// Generate compiles sources as one program named assemblyName and returns the
// units a generation pass produces for it. An empty assemblyName makes the
// identity depend on the source texts.
func Generate(ctx context.Context, assemblyName string, sources []Source, opts Options) (*Output, error) {
	program, err := symbols.Compile(assemblyName, sources...)
	if err != nil {
		return nil, err
	}

	pass, err := generator.NewPass(opts.WithDefaults())
	if err != nil {
		return nil, err
	}

	sink := generator.NewMemorySink()
	result, err := pass.Run(ctx, generator.NewProgramHost(program, sink))
	if err != nil {
		return nil, err
	}

	out := &Output{
		Identity:        result.Identity,
		MarkerGenerated: result.MarkerGenerated,
		Forwarders:      result.Forwarders,
		Units:           sink.Units(),
	}
	for _, t := range result.Types {
		out.Records = append(out.Records, t.Symbol.DisplayName())
	}
	for _, ex := range result.Exclusions {
		e := Exclusion{Name: ex.Name, Reason: ex.Reason}
		if !ex.Location.IsEmpty() {
			e.Location = ex.Location.String()
		}
		out.Exclusions = append(out.Exclusions, e)
	}
	return out, nil
}

// MarkerSource returns the marker attribute definition for opts
func MarkerSource(opts Options) (string, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	if err := generator.WriteMarker(&b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ParseArchive returns the C# members of a txtar bundle. Files generated by
// dispatchgen are left out.
func ParseArchive(data []byte) []Source {
	return cli.ArchiveSources("", txtar.Parse(data))
}

// FormatArchive bundles units into txtar form
func FormatArchive(units []Unit) []byte {
	archive := &txtar.Archive{}
	for _, u := range units {
		archive.Files = append(archive.Files, txtar.File{Name: u.Name, Data: []byte(u.Text)})
	}
	return txtar.Format(archive)
}
