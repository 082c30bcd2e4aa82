package errors

import "fmt"

// GeneratorError is implemented by every error dispatchgen reports. The code
// drives exit status and HTTP status; location and suggestions feed the
// diagnostic reporter.
type GeneratorError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies a failure
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	SyntaxErrorCode
	BindingErrorCode
	PreconditionErrorCode
	GenerationErrorCode
	MarkerUnavailableErrorCode
	EnumMemberNotFoundErrorCode
	TemplateErrorCode
	FileSystemErrorCode
	ConfigurationErrorCode
	CanceledErrorCode
)

var codeNames = [...]string{
	UnknownErrorCode:            "UnknownError",
	SyntaxErrorCode:             "SyntaxError",
	BindingErrorCode:            "BindingError",
	PreconditionErrorCode:       "PreconditionError",
	GenerationErrorCode:         "GenerationError",
	MarkerUnavailableErrorCode:  "MarkerUnavailableError",
	EnumMemberNotFoundErrorCode: "EnumMemberNotFoundError",
	TemplateErrorCode:           "TemplateError",
	FileSystemErrorCode:         "FileSystemError",
	ConfigurationErrorCode:      "ConfigurationError",
	CanceledErrorCode:           "CanceledError",
}

func (e ErrorCode) String() string {
	if e < 0 || int(e) >= len(codeNames) {
		return codeNames[UnknownErrorCode]
	}
	return codeNames[e]
}

// SourceLocation points into a C# source unit. Line and Column are 1-based;
// zero means unknown.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
}

// IsEmpty reports whether the location names no file
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError is the common GeneratorError implementation. The typed errors
// embed it and add their own fields.
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

// New returns an error with the given code
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message, Hints: []string{}}
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap returns an error with the given code whose cause is cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return New(code, message).WithCause(cause)
}

// Wrapf is Wrap with a formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *BaseError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// Error renders "location: message: cause", leaving out the parts that are unset
func (e *BaseError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Loc.IsEmpty() {
		return msg
	}
	return e.Loc.String() + ": " + msg
}

func (e *BaseError) ErrorCode() ErrorCode     { return e.Code }
func (e *BaseError) Location() SourceLocation { return e.Loc }
func (e *BaseError) Suggestions() []string    { return e.Hints }
func (e *BaseError) Unwrap() error            { return e.Cause }

// Context never returns nil
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return e.ContextData
}

func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	return e.WithSuggestions(suggestion)
}

func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}
