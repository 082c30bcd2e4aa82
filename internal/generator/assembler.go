package generator

import (
	"github.com/toyz/dispatchgen/internal/errors"
)

// Assembler collects the units of a pass and delivers them to a sink. A unit
// name is added at most once; later units with the same name are dropped.
type Assembler struct {
	units     []Unit
	names     map[string]bool
	delivered map[string]bool
}

// NewAssembler creates an empty assembler
func NewAssembler() *Assembler {
	return &Assembler{
		names:     make(map[string]bool),
		delivered: make(map[string]bool),
	}
}

// Add queues unit and reports whether it was accepted
func (a *Assembler) Add(unit Unit) bool {
	if a.names[unit.Name] {
		return false
	}
	a.names[unit.Name] = true
	a.units = append(a.units, unit)
	return true
}

// Units returns the queued units in insertion order
func (a *Assembler) Units() []Unit {
	units := make([]Unit, len(a.units))
	copy(units, a.units)
	return units
}

// Commit delivers every queued unit that has not been delivered yet. It
// stops at the first unit the sink rejects; units delivered before it stay
// delivered, so a retried Commit resumes with the failed one.
func (a *Assembler) Commit(sink Sink) error {
	if sink == nil {
		return errors.NewPreconditionError("sink", errors.New(errors.PreconditionErrorCode, "sink is required"))
	}
	for _, unit := range a.units {
		if a.delivered[unit.Name] {
			continue
		}
		if err := sink.AddGeneratedUnit(unit.Name, unit.Text); err != nil {
			return errors.WrapGenerateError(unit.Name, "commit", err)
		}
		a.delivered[unit.Name] = true
	}
	return nil
}
