package generator

import (
	"strings"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/utils"
)

// Options controls the names and formatting of generated code
type Options struct {
	AssemblyName     string // program identity; falls back to the program's own name, then a source hash
	Namespace        string // namespace of the marker and the extensions class
	MarkerName       string // marker attribute name without the Attribute suffix
	MarkerVisibility string // internal or public
	DispatcherType   string // type of the extension receiver
	DispatchMethod   string // method invoked on the receiver
	FunctionPrefix   string // prefix of every forwarder name
	QualifyNames     bool   // include the namespace in forwarder names
	EscapeStrings    bool   // escape string defaults instead of embedding them verbatim
}

// DefaultOptions returns the options that reproduce Fluxor's dispatcher extensions
func DefaultOptions() Options {
	return Options{
		Namespace:        "Fluxor",
		MarkerName:       "Dispatchable",
		MarkerVisibility: "internal",
		DispatcherType:   "IDispatcher",
		DispatchMethod:   "Dispatch",
		FunctionPrefix:   "Dispatch",
	}
}

// WithDefaults fills every empty field from DefaultOptions
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Namespace == "" {
		o.Namespace = d.Namespace
	}
	if o.MarkerName == "" {
		o.MarkerName = d.MarkerName
	}
	if o.MarkerVisibility == "" {
		o.MarkerVisibility = d.MarkerVisibility
	}
	if o.DispatcherType == "" {
		o.DispatcherType = d.DispatcherType
	}
	if o.DispatchMethod == "" {
		o.DispatchMethod = d.DispatchMethod
	}
	if o.FunctionPrefix == "" {
		o.FunctionPrefix = d.FunctionPrefix
	}
	return o
}

// MarkerClassName returns the class name of the marker attribute
func (o Options) MarkerClassName() string {
	return strings.TrimSuffix(o.MarkerName, "Attribute") + "Attribute"
}

// MarkerMetadataName returns the metadata name the marker is resolved by
func (o Options) MarkerMetadataName() string {
	return o.Namespace + "." + o.MarkerClassName()
}

// MarkerUnitName returns the logical name of the marker unit
func (o Options) MarkerUnitName() string {
	return o.MarkerClassName() + ".g.cs"
}

// Validate checks that every configured name is usable in generated code
func (o Options) Validate() error {
	const identifierHint = "Use letters, digits and underscores, starting with a letter"

	checks := []struct {
		key   string
		value string
		check utils.Validator[string]
		hint  string
	}{
		{"namespace", o.Namespace, utils.IsQualifiedName("namespace"), ""},
		{"markerName", o.MarkerName, utils.IsValidIdentifier("markerName"), identifierHint},
		{"dispatchMethod", o.DispatchMethod, utils.IsValidIdentifier("dispatchMethod"), identifierHint},
		{"functionPrefix", o.FunctionPrefix, utils.IsValidIdentifier("functionPrefix"), identifierHint},
		{"dispatcherType", strings.TrimPrefix(o.DispatcherType, "global::"), utils.IsQualifiedName("dispatcherType"), ""},
		{"markerVisibility", o.MarkerVisibility, utils.IsOneOf("markerVisibility", "internal", "public"), ""},
	}

	for _, c := range checks {
		err := c.check(c.value)
		if err == nil {
			continue
		}
		message := err.Error()
		var invalid utils.ValidationError
		if errors.As(err, &invalid) {
			message = invalid.Message
		}
		configErr := errors.ConfigurationError(c.key, message)
		if c.hint != "" {
			configErr = configErr.WithSuggestion(c.hint)
		}
		return configErr
	}
	return nil
}
