package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/dispatchgen/internal/csharp"
)

// FileReader loads C# sources from disk and keeps both the text and the parsed
// tree of every file until it changes.
type FileReader struct {
	trees *SourceCache[*csharp.SyntaxTree]
	texts *SourceCache[string]
}

// NewFileReader returns a reader with empty caches
func NewFileReader() *FileReader {
	return &FileReader{
		trees: NewSourceCache[*csharp.SyntaxTree](),
		texts: NewSourceCache[string](),
	}
}

// ParseSourceFile returns the syntax tree of a .cs file
func (fr *FileReader) ParseSourceFile(filePath string) (*csharp.SyntaxTree, error) {
	path, err := existingPath(filePath)
	if err != nil {
		return nil, err
	}

	return fr.trees.Load(path, func() (*csharp.SyntaxTree, error) {
		text, err := fr.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return csharp.Parse(path, text)
	})
}

// ReadFile returns the text of a file without its byte order mark
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	path, err := existingPath(filePath)
	if err != nil {
		return "", err
	}

	return fr.texts.Load(path, func() (string, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", filepath.Base(path), err)
		}
		return strings.TrimPrefix(string(raw), "\ufeff"), nil
	})
}

// Forget drops everything cached for filePath
func (fr *FileReader) Forget(filePath string) {
	path := filepath.Clean(filePath)
	fr.trees.Forget(path)
	fr.texts.Forget(path)
}

// Reset empties both caches
func (fr *FileReader) Reset() {
	fr.trees.Reset()
	fr.texts.Reset()
}

// CachedFiles reports how many trees and texts are held
func (fr *FileReader) CachedFiles() (trees, texts int) {
	return fr.trees.Len(), fr.texts.Len()
}

func existingPath(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", fmt.Errorf("file path %w", err)
	}

	path := filepath.Clean(filePath)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", path)
	}
	return path, nil
}
