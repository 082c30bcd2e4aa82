package errors

import (
	"fmt"
	"strings"
)

// MultipleErrors collects the failures of one pass, for example a syntax
// error in every broken source file. Code, location and suggestions come from
// the first entry.
type MultipleErrors struct {
	Errors []GeneratorError
}

// NewMultipleErrors returns an empty collection
func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{Errors: []GeneratorError{}}
}

// AddToMultiple appends err, allocating the collection on first use
func AddToMultiple(multiple **MultipleErrors, err GeneratorError) {
	if *multiple == nil {
		*multiple = NewMultipleErrors()
	}
	(*multiple).Add(err)
}

func (e *MultipleErrors) Add(err GeneratorError) {
	e.Errors = append(e.Errors, err)
}

func (e *MultipleErrors) Count() int    { return len(e.Errors) }
func (e *MultipleErrors) IsEmpty() bool { return len(e.Errors) == 0 }

// ErrOrNil returns nil for a nil or empty collection
func (e *MultipleErrors) ErrOrNil() error {
	if e == nil || e.IsEmpty() {
		return nil
	}
	return e
}

func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "multiple errors (%d total):", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, err.Error())
	}
	return b.String()
}

func (e *MultipleErrors) first() GeneratorError {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0]
}

func (e *MultipleErrors) ErrorCode() ErrorCode {
	if first := e.first(); first != nil {
		return first.ErrorCode()
	}
	return UnknownErrorCode
}

func (e *MultipleErrors) Location() SourceLocation {
	if first := e.first(); first != nil {
		return first.Location()
	}
	return SourceLocation{}
}

// Context merges every entry's context, prefixing keys with error_<index>_
func (e *MultipleErrors) Context() map[string]interface{} {
	merged := make(map[string]interface{})
	for i, err := range e.Errors {
		for k, v := range err.Context() {
			merged[fmt.Sprintf("error_%d_%s", i, k)] = v
		}
	}
	return merged
}

func (e *MultipleErrors) Suggestions() []string {
	var all []string
	for _, err := range e.Errors {
		all = append(all, err.Suggestions()...)
	}
	return all
}

// HasCode reports whether any entry carries code
func (e *MultipleErrors) HasCode(code ErrorCode) bool {
	for _, err := range e.Errors {
		if err.ErrorCode() == code {
			return true
		}
	}
	return false
}

// Unwrap exposes every entry to Is and As
func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		errs = append(errs, err)
	}
	return errs
}
