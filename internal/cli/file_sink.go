package cli

import (
	"path/filepath"
	"sync"

	"github.com/toyz/dispatchgen/internal/utils/fileops"
)

type stagedUnit struct {
	path string
	text string
}

// FileSink collects generated units for an output directory. Nothing reaches
// the directory until Flush.
type FileSink struct {
	dir string
	ops *fileops.FileOps

	mu        sync.Mutex
	pending   []stagedUnit
	written   []string
	unchanged []string
}

// NewFileSink creates a sink writing below dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir, ops: fileops.NewFileOps()}
}

// AddGeneratedUnit queues a unit for dir/name. Names may not leave the output
// directory. Adding a name again replaces the queued text.
func (s *FileSink) AddGeneratedUnit(name, text string) error {
	path, err := s.ops.Within(s.dir, filepath.FromSlash(name))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pending {
		if s.pending[i].path == path {
			s.pending[i].text = text
			return nil
		}
	}
	s.pending = append(s.pending, stagedUnit{path: path, text: text})
	return nil
}

// Flush writes the queued units. Every changed unit is first written to a
// temporary file beside its target, and targets are renamed over only once
// all units are staged. A unit that cannot be staged leaves every target as
// it was. Files that already hold their text are left untouched.
func (s *FileSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make([]string, len(s.pending))
	for i, unit := range s.pending {
		name, err := s.ops.Stage(unit.path, []byte(unit.text), 0o644)
		if err != nil {
			s.ops.Discard(staged...)
			return err
		}
		staged[i] = name
	}

	for i, unit := range s.pending {
		if staged[i] == "" {
			s.unchanged = append(s.unchanged, unit.path)
			continue
		}
		if err := s.ops.Replace(staged[i], unit.path); err != nil {
			s.ops.Discard(staged[i+1:]...)
			return err
		}
		s.written = append(s.written, unit.path)
	}
	s.pending = nil
	return nil
}

// Written returns the files the sink created or replaced
func (s *FileSink) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.written...)
}

// Unchanged returns the files that already held the generated text
func (s *FileSink) Unchanged() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.unchanged...)
}
