package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/symbols"
	"github.com/toyz/dispatchgen/internal/templates"
)

func sourcePaths(sources []symbols.Source) []string {
	paths := make([]string, len(sources))
	for i, src := range sources {
		paths[i] = src.Path
	}
	return paths
}

func TestDirectoryScanner_ScanSources(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Root.cs"), "namespace Demo;\n")
	writeFile(t, filepath.Join(root, "Actions", "Foo5.cs"), demoSource)
	writeFile(t, filepath.Join(root, "Actions", "Notes.txt"), "not C#")
	writeFile(t, filepath.Join(root, "obj", "Debug", "Assembly.cs"), "namespace Obj;\n")
	writeFile(t, filepath.Join(root, "Generated", "DemoDispatcherExtensions.g.cs"),
		"// "+templates.GeneratedMarker+"\nnamespace Fluxor { }\n")

	scanner := NewDirectoryScanner()

	t.Run("directory without recursion", func(t *testing.T) {
		sources, err := scanner.ScanSources([]string{root})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "Root.cs")}, sourcePaths(sources))
	})

	t.Run("recursive pattern", func(t *testing.T) {
		sources, err := scanner.ScanSources([]string{root + "/..."})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "Actions", "Foo5.cs"),
			filepath.Join(root, "Root.cs"),
		}, sourcePaths(sources))
		assert.Equal(t, demoSource, sources[0].Text)
	})

	t.Run("single file and duplicates", func(t *testing.T) {
		file := filepath.Join(root, "Actions", "Foo5.cs")
		sources, err := scanner.ScanSources([]string{file, root + "/...", file})
		require.NoError(t, err)
		assert.Len(t, sources, 2)
	})

	t.Run("archive", func(t *testing.T) {
		sources, err := scanner.ScanSources([]string{filepath.Join("testdata", "demo.txtar")})
		require.NoError(t, err)
		require.Len(t, sources, 2)
		assert.Contains(t, sources[0].Path, "demo.txtar/Demo.cs")
		assert.Contains(t, sources[1].Path, "demo.txtar/Generic.cs")
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := scanner.ScanSources([]string{filepath.Join(root, "missing")})
		require.Error(t, err)
		assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))
	})

	t.Run("unsupported file", func(t *testing.T) {
		_, err := scanner.ScanSources([]string{filepath.Join(root, "Actions", "Notes.txt")})
		require.Error(t, err)
		assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))
	})
}

func TestArchiveSources(t *testing.T) {
	archive := txtar.Parse([]byte(`-- A.cs --
namespace A;
-- B.g.cs --
// ` + templates.GeneratedMarker + `
namespace Fluxor;
-- C.cs.txt --
ignored
`))

	sources := ArchiveSources("", archive)
	require.Len(t, sources, 1)
	assert.Equal(t, "A.cs", sources[0].Path)
	assert.Equal(t, "namespace A;\n", sources[0].Text)

	prefixed := ArchiveSources("bundle.txtar", archive)
	assert.Equal(t, "bundle.txtar/A.cs", prefixed[0].Path)
}
