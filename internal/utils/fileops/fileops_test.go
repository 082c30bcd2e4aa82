package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dispatchgen/internal/errors"
)

func TestWithin(t *testing.T) {
	ops := NewFileOps()
	root := t.TempDir()

	path, err := ops.Within(root, filepath.Join("Generated", "Demo.g.cs"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Generated", "Demo.g.cs"), path)

	for _, name := range []string{"", filepath.Join("..", "escape.g.cs"), root} {
		_, err := ops.Within(root, name)
		assert.Error(t, err, name)
	}
}

func TestWriteFile(t *testing.T) {
	ops := NewFileOps()
	path := filepath.Join(t.TempDir(), "out", "DispatchableAttribute.g.cs")

	written, err := ops.WriteFile(path, []byte("// <auto-generated/>\n"), 0o644)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = ops.WriteFile(path, []byte("// <auto-generated/>\n"), 0o644)
	require.NoError(t, err)
	assert.False(t, written)

	content, err := ops.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "// <auto-generated/>\n", content)

	_, err = ops.WriteFile("", nil, 0o644)
	assert.EqualError(t, err, "file path cannot be empty")
}

func TestStageAndReplace(t *testing.T) {
	ops := NewFileOps()
	dir := t.TempDir()
	path := filepath.Join(dir, "Extensions.g.cs")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	staged, err := ops.Stage(path, []byte("new"), 0o644)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(staged))

	content, err := ops.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", content)

	require.NoError(t, ops.Replace(staged, path))
	content, err = ops.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", content)
	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err))

	staged, err = ops.Stage(path, []byte("new"), 0o644)
	require.NoError(t, err)
	assert.Empty(t, staged)

	staged, err = ops.Stage(path, []byte("newer"), 0o644)
	require.NoError(t, err)
	ops.Discard(staged, "")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRemoveFile(t *testing.T) {
	ops := NewFileOps()
	path := filepath.Join(t.TempDir(), "Stale.g.cs")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, ops.RemoveFile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	err = ops.RemoveFile(path)
	assert.ErrorContains(t, err, "does not exist")

	_, err = ops.ReadFile("a/../../b.cs")
	assert.ErrorContains(t, err, "does not exist")
}

func TestFileSystemErrors(t *testing.T) {
	ops := NewFileOps()
	dir := t.TempDir()

	_, err := ops.ReadFile(dir)
	require.Error(t, err)
	assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))
}
