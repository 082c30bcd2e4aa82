package utils

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/toyz/dispatchgen/internal/csharp"
)

// ValidationError reports a rejected setting
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

func rejected(field string, value interface{}, format string, args ...interface{}) error {
	return ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)}
}

// Validator checks a single value
type Validator[T any] func(T) error

// ValidatorChain runs validators in order and stops at the first failure
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain returns a chain of validators
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate returns the first failure
func (vc *ValidatorChain[T]) Validate(value T) error {
	for _, check := range vc.validators {
		if err := check(value); err != nil {
			return err
		}
	}
	return nil
}

// NotEmpty rejects blank strings
func NotEmpty(field string) Validator[string] {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return rejected(field, value, "cannot be empty")
		}
		return nil
	}
}

// HasSuffix rejects strings that do not end with suffix
func HasSuffix(field, suffix string) Validator[string] {
	return func(value string) error {
		if !strings.HasSuffix(value, suffix) {
			return rejected(field, value, "must end with '%s'", suffix)
		}
		return nil
	}
}

// MatchesRegex rejects strings that do not match pattern
func MatchesRegex(field, pattern string) Validator[string] {
	re := regexp.MustCompile(pattern)
	return func(value string) error {
		if !re.MatchString(value) {
			return rejected(field, value, "must match pattern '%s'", pattern)
		}
		return nil
	}
}

// Generated names are concatenated with prefixes and suffixes, so verbatim
// identifiers (@class) are not accepted.
var identifierPattern = regexp.MustCompile(`^[\p{L}_][\p{L}\p{Nd}_]*$`)

// IsValidIdentifier accepts a C# identifier that is not a reserved keyword
func IsValidIdentifier(field string) Validator[string] {
	return func(value string) error {
		switch {
		case !identifierPattern.MatchString(value):
			return rejected(field, value, "'%s' is not a valid identifier", value)
		case csharp.IsKeyword(value):
			return rejected(field, value, "'%s' is a reserved keyword", value)
		}
		return nil
	}
}

// IsQualifiedName accepts dotted identifiers such as namespaces
func IsQualifiedName(field string) Validator[string] {
	segment := IsValidIdentifier(field)
	return func(value string) error {
		for _, part := range strings.Split(value, ".") {
			if segment(part) != nil {
				return rejected(field, value, "'%s' is not a valid qualified name", value)
			}
		}
		return nil
	}
}

// IsOneOf accepts only the listed values
func IsOneOf[T comparable](field string, allowed ...T) Validator[T] {
	return func(value T) error {
		for _, candidate := range allowed {
			if value == candidate {
				return nil
			}
		}
		return rejected(field, value, "must be one of %v", allowed)
	}
}

// IsListenAddress accepts host:port pairs
func IsListenAddress(field string) Validator[string] {
	return func(value string) error {
		if _, _, err := net.SplitHostPort(value); err != nil {
			return rejected(field, value, "must be a host:port address: %v", err)
		}
		return nil
	}
}

// Custom turns a predicate into a validator
func Custom[T any](field string, message string, ok func(T) bool) Validator[T] {
	return func(value T) error {
		if !ok(value) {
			return rejected(field, value, "%s", message)
		}
		return nil
	}
}

// Conditional runs validator only when condition holds
func Conditional[T any](condition func(T) bool, validator Validator[T]) Validator[T] {
	return func(value T) error {
		if !condition(value) {
			return nil
		}
		return validator(value)
	}
}
