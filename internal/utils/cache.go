package utils

import (
	"os"
	"sync"
	"time"
)

// fileStamp identifies one revision of a file on disk.
type fileStamp struct {
	modTime time.Time
	size    int64
}

func stampOf(path string) (fileStamp, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, false
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}, true
}

func (s fileStamp) matches(other fileStamp) bool {
	return s.size == other.size && s.modTime.Equal(other.modTime)
}

type sourceEntry[V any] struct {
	value V
	stamp fileStamp
}

// SourceCache memoizes values derived from source files. An entry stays valid
// while the file keeps the size and modification time it had when loaded.
type SourceCache[V any] struct {
	mu      sync.Mutex
	entries map[string]sourceEntry[V]
}

// NewSourceCache returns an empty cache
func NewSourceCache[V any]() *SourceCache[V] {
	return &SourceCache[V]{entries: make(map[string]sourceEntry[V])}
}

// Peek returns the value cached for path when the file is unchanged. Stale
// entries are evicted.
func (c *SourceCache[V]) Peek(path string) (V, bool) {
	var zero V

	c.mu.Lock()
	entry, ok := c.entries[path]
	c.mu.Unlock()
	if !ok {
		return zero, false
	}

	if current, ok := stampOf(path); ok && entry.stamp.matches(current) {
		return entry.value, true
	}

	c.Forget(path)
	return zero, false
}

// Load returns the cached value for path, calling load when the file changed
// or was never seen. Failed loads leave the cache untouched.
func (c *SourceCache[V]) Load(path string, load func() (V, error)) (V, error) {
	if value, ok := c.Peek(path); ok {
		return value, nil
	}

	stamp, _ := stampOf(path)
	value, err := load()
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[path] = sourceEntry[V]{value: value, stamp: stamp}
	c.mu.Unlock()
	return value, nil
}

// Forget drops the entry for path
func (c *SourceCache[V]) Forget(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Reset drops every entry
func (c *SourceCache[V]) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]sourceEntry[V])
	c.mu.Unlock()
}

// Len reports the number of cached files
func (c *SourceCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
