package generator

import (
	"sync"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/symbols"
)

// ProgramHost is a Host over an in-memory program snapshot
type ProgramHost struct {
	program *symbols.Program
	sink    Sink
}

// NewProgramHost creates a host for program that delivers units to sink
func NewProgramHost(program *symbols.Program, sink Sink) *ProgramHost {
	return &ProgramHost{program: program, sink: sink}
}

// Program returns the snapshot the pass starts from
func (h *ProgramHost) Program() *symbols.Program {
	return h.program
}

// Resnapshot parses unit and returns a new snapshot that includes it
func (h *ProgramHost) Resnapshot(program *symbols.Program, unit Unit) (*symbols.Program, error) {
	next, err := program.WithSources(symbols.Source{Path: unit.Name, Text: unit.Text})
	if err != nil {
		return nil, errors.WrapGenerateError(unit.Name, "resnapshot", err)
	}
	return next, nil
}

// AddGeneratedUnit forwards the unit to the host's sink
func (h *ProgramHost) AddGeneratedUnit(name, text string) error {
	if h.sink == nil {
		return errors.NewPreconditionError("sink", errors.New(errors.PreconditionErrorCode, "host has no sink"))
	}
	return h.sink.AddGeneratedUnit(name, text)
}

// MemorySink keeps generated units in memory in the order they were added
type MemorySink struct {
	mu    sync.Mutex
	units []Unit
}

// NewMemorySink creates an empty sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// AddGeneratedUnit stores a unit. A second unit with the same name is rejected.
func (s *MemorySink) AddGeneratedUnit(name, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.units {
		if u.Name == name {
			return errors.Newf(errors.GenerationErrorCode, "unit '%s' was already added", name)
		}
	}
	s.units = append(s.units, Unit{Name: name, Text: text})
	return nil
}

// Units returns a copy of the stored units
func (s *MemorySink) Units() []Unit {
	s.mu.Lock()
	defer s.mu.Unlock()

	units := make([]Unit, len(s.units))
	copy(units, s.units)
	return units
}

// Unit returns the stored unit with the given name
func (s *MemorySink) Unit(name string) (Unit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.units {
		if u.Name == name {
			return u, true
		}
	}
	return Unit{}, false
}
