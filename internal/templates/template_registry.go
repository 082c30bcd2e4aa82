package templates

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerMarkerTemplates()
	registry.registerExtensionsTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Names returns the registered template names
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

// GeneratedMarker identifies files written by dispatchgen
const GeneratedMarker = "Code generated by dispatchgen. DO NOT EDIT."

const generatedHeader = "// <auto-generated>\n// " + GeneratedMarker + "\n// </auto-generated>\n"

// registerMarkerTemplates registers the marker attribute unit
func (tr *TemplateRegistry) registerMarkerTemplates() {
	tr.templates["marker"] = generatedHeader + `using System;
using System.Runtime.CompilerServices;

namespace {{.Namespace}}
{
    [CompilerGenerated]
    [AttributeUsage(AttributeTargets.Class, Inherited = false)]
    {{.Visibility}} sealed class {{.ClassName}} : Attribute
    {
        public {{.ClassName}}() { }
    }
}
`
}

// registerExtensionsTemplates registers the aggregate extensions unit and its forwarders
func (tr *TemplateRegistry) registerExtensionsTemplates() {
	tr.templates["extensions"] = generatedHeader + `using System;
{{range .Usings}}using {{.}};
{{end}}
using {{.Namespace}};

namespace {{.Namespace}}
{
    public static class {{.ClassName}}
    {
{{range $i, $f := .Forwarders}}{{if $i}}
{{end}}{{indent 8 $f}}{{end}}    }
}
`

	tr.templates["forwarder"] = `{{.Access}} static void {{.Name}}(this {{.DispatcherType}} dispatcher{{range .Parameters}}, {{declaration .}}{{end}})
{
    dispatcher.{{.DispatchMethod}}(new {{.TypeName}}({{arguments .Parameters}}));
}
`
}

// Global template registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
