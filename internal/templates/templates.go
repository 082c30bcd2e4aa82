package templates

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"github.com/toyz/dispatchgen/internal/errors"
)

// MarkerData holds the values of the marker attribute unit
type MarkerData struct {
	Namespace  string
	Visibility string // internal or public
	ClassName  string // e.g. DispatchableAttribute
}

// ExtensionsData holds the values of the aggregate extensions unit
type ExtensionsData struct {
	Namespace  string
	ClassName  string
	Usings     []string // namespaces imported in addition to System and Namespace
	Forwarders []string // rendered forwarders, unindented
}

// ForwarderData holds the values of one dispatch forwarder
type ForwarderData struct {
	Access         string
	Name           string
	DispatcherType string
	DispatchMethod string
	TypeName       string // fully qualified record type
	Parameters     []ParameterData
}

// ParameterData is one forwarder parameter
type ParameterData struct {
	Modifier         string // declaration modifiers such as params or ref readonly
	ArgumentModifier string // modifier required at the call site: ref, in or out
	Type             string
	Name             string
	HasDefault       bool
	Default          string // rendered literal
}

var funcMap = template.FuncMap{
	"indent":      DefaultTemplateUtils.Indent,
	"declaration": DefaultTemplateUtils.ParameterDeclaration,
	"arguments":   DefaultTemplateUtils.ArgumentList,
}

// executeTemplate executes a named template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Funcs(funcMap).Parse(templateStr)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return buf.String(), nil
}

// ExecuteTemplate executes a Go template with the given data (exported version)
func ExecuteTemplate(name, templateStr string, data interface{}) (string, error) {
	return executeTemplate(name, templateStr, data)
}

// render executes a registered template into w
func render(w io.Writer, name string, data interface{}) error {
	if w == nil {
		return errors.NewPreconditionError("w", errors.ErrNilWriter)
	}
	text, err := executeTemplate(name, DefaultTemplateRegistry.MustGet(name), data)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// RenderMarker writes the marker attribute unit to w
func RenderMarker(w io.Writer, data MarkerData) error {
	return render(w, "marker", data)
}

// RenderExtensions writes the aggregate extensions unit to w
func RenderExtensions(w io.Writer, data ExtensionsData) error {
	return render(w, "extensions", data)
}

// RenderForwarder writes one forwarder to w
func RenderForwarder(w io.Writer, data ForwarderData) error {
	return render(w, "forwarder", data)
}
