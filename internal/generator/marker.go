package generator

import (
	"io"
	"strings"

	"github.com/toyz/dispatchgen/internal/symbols"
	"github.com/toyz/dispatchgen/internal/templates"
)

// EnsureMarkerExists is the first phase of the marker bootstrap. It reports
// the marker as present when the program already resolves it; otherwise it
// returns the unit that defines it. The program itself is never modified.
func EnsureMarkerExists(program *symbols.Program, opts Options) (BootstrapResult, error) {
	opts = opts.WithDefaults()
	if program.TypeByMetadataName(opts.MarkerMetadataName()) != nil {
		return BootstrapResult{Present: true}, nil
	}

	var b strings.Builder
	if err := WriteMarker(&b, opts); err != nil {
		return BootstrapResult{}, err
	}

	return BootstrapResult{
		Unit: &Unit{Name: opts.MarkerUnitName(), Text: b.String()},
	}, nil
}

// WriteMarker renders the marker attribute definition to w
func WriteMarker(w io.Writer, opts Options) error {
	opts = opts.WithDefaults()
	return templates.RenderMarker(w, templates.MarkerData{
		Namespace:  opts.Namespace,
		Visibility: opts.MarkerVisibility,
		ClassName:  opts.MarkerClassName(),
	})
}
