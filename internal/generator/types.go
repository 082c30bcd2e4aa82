package generator

import (
	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/symbols"
)

// AnnotatedType is a record carrying the marker attribute, as accepted by Collect
type AnnotatedType struct {
	Symbol       *symbols.NamedType
	Declaration  *symbols.Declaration // first declaration that carried an attribute list
	Name         string
	Namespace    string
	Constructors []*symbols.Method // public instance constructors in declaration order
}

// Unit is a named block of generated source text
type Unit struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Sink receives generated units
type Sink interface {
	AddGeneratedUnit(name, text string) error
}

// Host supplies the program snapshot of a pass and receives its output
type Host interface {
	Sink

	// Program returns the snapshot the pass starts from
	Program() *symbols.Program

	// Resnapshot returns a new snapshot of program that includes unit
	Resnapshot(program *symbols.Program, unit Unit) (*symbols.Program, error)
}

// BootstrapResult is the outcome of the first bootstrap phase. When Present
// is false, Unit holds the marker definition that must be merged into the
// program before the marker is queried again.
type BootstrapResult struct {
	Present bool
	Unit    *Unit
}

// Exclusion records an annotated declaration that produced no forwarders
type Exclusion struct {
	Name     string
	Location errors.SourceLocation
	Reason   string
	Err      error // binding error, if the declaration could not be resolved
}

// Result summarizes a successful generation pass
type Result struct {
	Identity        string
	MarkerGenerated bool
	Types           []*AnnotatedType
	Exclusions      []Exclusion
	Forwarders      int
	Units           []Unit
}
