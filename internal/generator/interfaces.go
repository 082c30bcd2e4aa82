package generator

import "context"

// Runner defines the interface for running generation passes against a host
type Runner interface {
	Run(ctx context.Context, host Host) (*Result, error)
}

// ForwarderEmitter defines the interface for rendering the forwarders of an annotated type
type ForwarderEmitter interface {
	EmitForwarders(t *AnnotatedType) ([]string, error)
}

var (
	_ Runner           = (*Pass)(nil)
	_ ForwarderEmitter = (*Emitter)(nil)
	_ Host             = (*ProgramHost)(nil)
	_ Sink             = (*MemorySink)(nil)
)
