// Package fileops performs the file system writes of dispatchgen: generated
// units into the output directory and their removal by the cleaner.
package fileops

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/dispatchgen/internal/errors"
)

// FileOps reads, writes and removes files below validated paths
type FileOps struct{}

// NewFileOps returns a FileOps
func NewFileOps() *FileOps {
	return &FileOps{}
}

// clean rejects empty paths and paths that climb out of their base after the
// leading "..". When mustExist is set the path has to be present on disk.
func clean(path string, mustExist bool) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	cleaned := filepath.Clean(path)
	if strings.Contains(cleaned, "..") && !strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("path traversal not allowed in file path: %s", path)
	}

	if mustExist {
		if _, err := os.Stat(cleaned); os.IsNotExist(err) {
			return "", fmt.Errorf("file does not exist: %s", cleaned)
		}
	}
	return cleaned, nil
}

// Within joins name onto root. Absolute names and names escaping root are
// rejected.
func (fo *FileOps) Within(root, name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid file name: %q", name)
	}

	joined := filepath.Join(root, name)
	rel, err := filepath.Rel(root, joined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed in file name: %s", name)
	}
	return joined, nil
}

// ReadFile returns the contents of an existing file
func (fo *FileOps) ReadFile(path string) (string, error) {
	cleaned, err := clean(path, true)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(cleaned)
	if err != nil {
		return "", errors.WrapFileSystemError("read", cleaned, err)
	}
	return string(content), nil
}

// WriteFile writes content to path, creating parent directories. A file that
// already holds content is left untouched and reported as not written so
// unchanged units keep their timestamps.
func (fo *FileOps) WriteFile(path string, content []byte, perm os.FileMode) (bool, error) {
	staged, err := fo.Stage(path, content, perm)
	if err != nil || staged == "" {
		return false, err
	}
	if err := fo.Replace(staged, path); err != nil {
		return false, err
	}
	return true, nil
}

// Stage writes content to a temporary file in the directory of path and
// returns its name. It returns "" when path already holds content.
func (fo *FileOps) Stage(path string, content []byte, perm os.FileMode) (string, error) {
	cleaned, err := clean(path, false)
	if err != nil {
		return "", err
	}

	if existing, err := os.ReadFile(cleaned); err == nil && bytes.Equal(existing, content) {
		return "", nil
	}

	dir := filepath.Dir(cleaned)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WrapFileSystemError("create directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(cleaned)+".*.tmp")
	if err != nil {
		return "", errors.WrapFileSystemError("write", cleaned, err)
	}
	_, err = tmp.Write(content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), perm)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", errors.WrapFileSystemError("write", cleaned, err)
	}
	return tmp.Name(), nil
}

// Replace moves a staged file over path
func (fo *FileOps) Replace(staged, path string) error {
	cleaned, err := clean(path, false)
	if err != nil {
		return err
	}
	if err := os.Rename(staged, cleaned); err != nil {
		_ = os.Remove(staged)
		return errors.WrapFileSystemError("write", cleaned, err)
	}
	return nil
}

// Discard removes staged files that were never moved into place
func (fo *FileOps) Discard(staged ...string) {
	for _, name := range staged {
		if name != "" {
			_ = os.Remove(name)
		}
	}
}

// RemoveFile deletes an existing file
func (fo *FileOps) RemoveFile(path string) error {
	cleaned, err := clean(path, true)
	if err != nil {
		return err
	}

	if err := os.Remove(cleaned); err != nil {
		return errors.WrapFileSystemError("remove", cleaned, err)
	}
	return nil
}
