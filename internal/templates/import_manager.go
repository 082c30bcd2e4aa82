package templates

import (
	"sort"
	"strings"
)

// ImportManager handles using directive generation and deduplication
type ImportManager struct {
	implicit map[string]bool // namespaces the template always imports
	usings   map[string]bool
}

// NewImportManager creates an import manager. The implicit namespaces are
// written by the template itself and are never listed again.
func NewImportManager(implicit ...string) *ImportManager {
	im := &ImportManager{
		implicit: make(map[string]bool),
		usings:   make(map[string]bool),
	}
	for _, ns := range implicit {
		im.implicit[ns] = true
	}
	return im
}

// AddUsing adds a namespace import
func (im *ImportManager) AddUsing(namespace string) {
	namespace = strings.TrimPrefix(strings.TrimSpace(namespace), "global::")
	if namespace != "" && !im.implicit[namespace] {
		im.usings[namespace] = true
	}
}

// AddUsings adds several namespace imports
func (im *ImportManager) AddUsings(namespaces ...string) {
	for _, ns := range namespaces {
		im.AddUsing(ns)
	}
}

// Usings returns the collected namespaces, sorted
func (im *ImportManager) Usings() []string {
	names := make([]string, 0, len(im.usings))
	for ns := range im.usings {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// GenerateUsings renders the collected namespaces as using directives
func (im *ImportManager) GenerateUsings() string {
	var b strings.Builder
	for _, ns := range im.Usings() {
		b.WriteString("using ")
		b.WriteString(ns)
		b.WriteString(";\n")
	}
	return b.String()
}

// IsEmpty reports whether no namespace has been added
func (im *ImportManager) IsEmpty() bool {
	return len(im.usings) == 0
}

// Merge merges another import manager into this one
func (im *ImportManager) Merge(other *ImportManager) {
	for ns := range other.usings {
		im.AddUsing(ns)
	}
}
