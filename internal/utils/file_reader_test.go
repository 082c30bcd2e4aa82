package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReaderCaching(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "Order.cs")
	require.NoError(t, os.WriteFile(testFile, []byte("\ufeffnamespace Shop { public record Order(int Id); }\n"), 0644))

	reader := NewFileReader()

	tree1, err := reader.ParseSourceFile(testFile)
	require.NoError(t, err)
	tree2, err := reader.ParseSourceFile(testFile)
	require.NoError(t, err)
	assert.Same(t, tree1, tree2)

	trees, contents := reader.CachedFiles()
	assert.Equal(t, 1, trees)
	assert.Equal(t, 1, contents)

	content, err := reader.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "namespace Shop { public record Order(int Id); }\n", content)

	reader.Forget(testFile)
	trees, contents = reader.CachedFiles()
	assert.Zero(t, trees)
	assert.Zero(t, contents)

	tree3, err := reader.ParseSourceFile(testFile)
	require.NoError(t, err)
	assert.NotSame(t, tree1, tree3)

	reader.Reset()
	trees, _ = reader.CachedFiles()
	assert.Zero(t, trees)
}

func TestFileReaderErrors(t *testing.T) {
	reader := NewFileReader()

	_, err := reader.ReadFile("")
	assert.ErrorContains(t, err, "cannot be empty")

	_, err = reader.ReadFile(filepath.Join(t.TempDir(), "Missing.cs"))
	assert.ErrorContains(t, err, "does not exist")

	broken := filepath.Join(t.TempDir(), "Broken.cs")
	require.NoError(t, os.WriteFile(broken, []byte("public record A(;"), 0644))
	_, err = reader.ParseSourceFile(broken)
	assert.Error(t, err)
	trees, _ := reader.CachedFiles()
	assert.Zero(t, trees)
}
