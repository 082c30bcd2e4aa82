package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrNilWriter is returned when a renderer is invoked without a destination writer
var ErrNilWriter = stderrors.New("writer must not be nil")

// SyntaxError represents a C# source that could not be parsed
type SyntaxError struct {
	*BaseError
	Token string // offending token, if known
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
	}
}

// WithLocation adds location information to the error
func (e *SyntaxError) WithLocation(loc SourceLocation) *SyntaxError {
	e.BaseError.WithLocation(loc)
	return e
}

// BindingError represents a declaration whose symbol could not be resolved.
// Binding errors exclude the declaration from generation; they never fail a pass.
type BindingError struct {
	*BaseError
	TypeName string
}

// NewBindingError creates a new binding error for the named declaration
func NewBindingError(typeName, reason string) *BindingError {
	return &BindingError{
		BaseError: New(BindingErrorCode, fmt.Sprintf("cannot bind '%s': %s", typeName, reason)),
		TypeName:  typeName,
	}
}

// WithLocation adds location information to the error
func (e *BindingError) WithLocation(loc SourceLocation) *BindingError {
	e.BaseError.WithLocation(loc)
	return e
}

// MarkerUnavailableError is returned when the marker attribute still cannot be
// resolved after the bootstrap unit was merged into the program.
type MarkerUnavailableError struct {
	*BaseError
	MetadataName string
}

// NewMarkerUnavailableError creates a new marker unavailable error
func NewMarkerUnavailableError(metadataName string) *MarkerUnavailableError {
	err := &MarkerUnavailableError{
		BaseError:    New(MarkerUnavailableErrorCode, fmt.Sprintf("marker type '%s' is not resolvable after bootstrap", metadataName)),
		MetadataName: metadataName,
	}
	err.WithContext("metadata_name", metadataName)
	err.WithSuggestion("Check that no source declares a conflicting type with the same name")
	return err
}

// EnumMemberNotFoundError is returned when a declared enum default matches no member constant
type EnumMemberNotFoundError struct {
	*BaseError
	EnumType  string
	Parameter string
	Value     string
}

// NewEnumMemberNotFoundError creates a new enum member error
func NewEnumMemberNotFoundError(enumType, parameter, value string) *EnumMemberNotFoundError {
	message := fmt.Sprintf("default value %s of parameter '%s' matches no member of enum '%s'", value, parameter, enumType)
	err := &EnumMemberNotFoundError{
		BaseError: New(EnumMemberNotFoundErrorCode, message),
		EnumType:  enumType,
		Parameter: parameter,
		Value:     value,
	}
	err.WithContext("enum", enumType)
	err.WithContext("parameter", parameter)
	err.WithContext("value", value)
	err.WithSuggestion(fmt.Sprintf("Use one of the members of '%s' as the default value", enumType))
	return err
}

// WithLocation adds location information to the error
func (e *EnumMemberNotFoundError) WithLocation(loc SourceLocation) *EnumMemberNotFoundError {
	e.BaseError.WithLocation(loc)
	return e
}

// PreconditionError reports a violated precondition of a public entry point
type PreconditionError struct {
	*BaseError
	Argument string
}

// NewPreconditionError creates a new precondition error for the given argument
func NewPreconditionError(argument string, cause error) *PreconditionError {
	return &PreconditionError{
		BaseError: Wrap(PreconditionErrorCode, fmt.Sprintf("invalid argument '%s'", argument), cause),
		Argument:  argument,
	}
}

// GenerationError represents an error while emitting or assembling generated units
type GenerationError struct {
	*BaseError
	Unit  string // logical unit being generated
	Stage string // emit, assemble, commit
}

// NewGenerationError creates a new generation error
func NewGenerationError(message string) *GenerationError {
	return &GenerationError{
		BaseError: New(GenerationErrorCode, message),
	}
}

// WithUnit sets the logical unit name
func (e *GenerationError) WithUnit(unit string) *GenerationError {
	e.Unit = unit
	e.BaseError.WithContext("unit", unit)
	return e
}

// WithStage sets the generation stage
func (e *GenerationError) WithStage(stage string) *GenerationError {
	e.Stage = stage
	e.BaseError.WithContext("stage", stage)
	return e
}
