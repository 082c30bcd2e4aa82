package cli

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/dispatchgen/internal/errors"
)

// ProjectResolver resolves the assembly identity of the sources being scanned
// from the nearest MSBuild project file
type ProjectResolver struct{}

// NewProjectResolver creates a new project resolver
func NewProjectResolver() *ProjectResolver {
	return &ProjectResolver{}
}

type projectFile struct {
	PropertyGroups []struct {
		AssemblyName string `xml:"AssemblyName"`
	} `xml:"PropertyGroup"`
}

// ResolveAssemblyName returns customName when set. Otherwise it looks for a
// .csproj in the directory of the first source and its parents and returns
// the project's AssemblyName, or the project file name when none is declared.
// An empty name without error means no project file was found.
func (r *ProjectResolver) ResolveAssemblyName(customName string, sources []string) (string, error) {
	if customName != "" {
		return customName, nil
	}
	if len(sources) == 0 {
		return "", nil
	}

	start := strings.TrimSuffix(sources[0], "/...")
	if start == "" {
		start = "."
	}
	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}

	project, err := r.FindProjectFile(start)
	if err != nil || project == "" {
		return "", err
	}
	return r.ParseProjectFile(project)
}

// FindProjectFile returns the first .csproj, in lexical order, of dir or its
// closest ancestor that has one
func (r *ProjectResolver) FindProjectFile(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WrapFileSystemError("resolve path", dir, err)
	}

	for {
		matches, err := filepath.Glob(filepath.Join(current, "*.csproj"))
		if err != nil {
			return "", errors.WrapFileSystemError("glob", current, err)
		}
		if len(matches) > 0 {
			sort.Strings(matches)
			return matches[0], nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

// ParseProjectFile reads the assembly name declared by a project file
func (r *ProjectResolver) ParseProjectFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapFileSystemError("read", path, err)
	}

	var project projectFile
	if err := xml.Unmarshal(content, &project); err != nil {
		return "", errors.WrapParseError(path, err)
	}

	projectName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, group := range project.PropertyGroups {
		name := strings.TrimSpace(group.AssemblyName)
		if name == "" {
			continue
		}
		return strings.ReplaceAll(name, "$(MSBuildProjectName)", projectName), nil
	}
	return projectName, nil
}
