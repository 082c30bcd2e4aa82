package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestSourceCache_Load(t *testing.T) {
	cache := NewSourceCache[string]()
	path := filepath.Join(t.TempDir(), "Order.cs")
	writeSource(t, path, "one")

	loads := 0
	load := func() (string, error) {
		loads++
		content, err := os.ReadFile(path)
		return string(content), err
	}

	value, err := cache.Load(path, load)
	require.NoError(t, err)
	assert.Equal(t, "one", value)

	value, err = cache.Load(path, load)
	require.NoError(t, err)
	assert.Equal(t, "one", value)
	assert.Equal(t, 1, loads)

	writeSource(t, path, "three")
	value, err = cache.Load(path, load)
	require.NoError(t, err)
	assert.Equal(t, "three", value)
	assert.Equal(t, 2, loads)
}

func TestSourceCache_StaleEntriesAreEvicted(t *testing.T) {
	cache := NewSourceCache[string]()
	path := filepath.Join(t.TempDir(), "Order.cs")
	writeSource(t, path, "record A;")

	_, err := cache.Load(path, func() (string, error) { return "record A;", nil })
	require.NoError(t, err)

	value, ok := cache.Peek(path)
	assert.True(t, ok)
	assert.Equal(t, "record A;", value)

	writeSource(t, path, "record AB;")
	_, ok = cache.Peek(path)
	assert.False(t, ok)
	assert.Zero(t, cache.Len())

	_, ok = cache.Peek("/nonexistent/file.cs")
	assert.False(t, ok)
}

func TestSourceCache_FailedLoad(t *testing.T) {
	cache := NewSourceCache[string]()
	path := filepath.Join(t.TempDir(), "Broken.cs")
	writeSource(t, path, "record")

	_, err := cache.Load(path, func() (string, error) {
		return "", fmt.Errorf("boom")
	})
	assert.EqualError(t, err, "boom")
	assert.Zero(t, cache.Len())
}

func TestSourceCache_ForgetAndReset(t *testing.T) {
	cache := NewSourceCache[int]()
	dir := t.TempDir()

	for i, name := range []string{"A.cs", "B.cs"} {
		path := filepath.Join(dir, name)
		writeSource(t, path, name)
		_, err := cache.Load(path, func() (int, error) { return i, nil })
		require.NoError(t, err)
	}
	assert.Equal(t, 2, cache.Len())

	cache.Forget(filepath.Join(dir, "A.cs"))
	assert.Equal(t, 1, cache.Len())

	cache.Reset()
	assert.Zero(t, cache.Len())
}

func TestSourceCache_ConcurrentAccess(t *testing.T) {
	cache := NewSourceCache[int]()
	dir := t.TempDir()

	paths := make([]string, 20)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("R%d.cs", i))
		writeSource(t, paths[i], "record R;")
	}

	var wg sync.WaitGroup
	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, path := range paths {
				_, _ = cache.Load(path, func() (int, error) { return i, nil })
				cache.Peek(path)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(paths), cache.Len())
}
