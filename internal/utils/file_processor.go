package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/dispatchgen/internal/csharp"
	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/templates"
	"github.com/toyz/dispatchgen/internal/utils/fileops"
)

// GeneratedFileSuffix is the suffix of every unit dispatchgen writes
const GeneratedFileSuffix = ".g.cs"

// Directories that never hold project sources
var skippedDirs = map[string]bool{
	"bin":          true,
	"obj":          true,
	"packages":     true,
	"node_modules": true,
	"TestResults":  true,
}

func skipDir(name string) bool {
	return skippedDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// IsGeneratedSource reports whether content carries the dispatchgen header
// before its first namespace
func IsGeneratedSource(content string) bool {
	header, _, _ := strings.Cut(content, "namespace")
	return strings.Contains(header, templates.GeneratedMarker)
}

// FileProcessor finds, parses and cleans the C# files of a project tree
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor returns a processor with its own FileReader cache
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{fileReader: NewFileReader()}
}

// GetFileReader exposes the cache shared by scanning and parsing
func (fp *FileProcessor) GetFileReader() *FileReader {
	return fp.fileReader
}

// walk collects the files below root whose names satisfy match, in lexical
// order. Build output and hidden directories are skipped, root excepted.
// With tolerant set, unreadable entries are ignored.
func walk(root string, match func(name string) bool, tolerant bool) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		switch {
		case err != nil && tolerant:
			return nil
		case err != nil:
			return err
		case entry.IsDir():
			if path != root && skipDir(entry.Name()) {
				return filepath.SkipDir
			}
		case match(entry.Name()):
			found = append(found, path)
		}
		return nil
	})
	return found, err
}

func isSourceName(name string) bool    { return strings.HasSuffix(name, ".cs") }
func isGeneratedName(name string) bool { return strings.HasSuffix(name, GeneratedFileSuffix) }

// SourceFiles returns the C# sources under rootDir that were not written by
// dispatchgen, in lexical order
func (fp *FileProcessor) SourceFiles(rootDir string) ([]string, error) {
	files, err := walk(rootDir, isSourceName, false)
	if err != nil {
		return nil, errors.WrapFileSystemError("walk", rootDir, err)
	}

	sources := files[:0]
	for _, file := range files {
		text, err := fp.fileReader.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if !IsGeneratedSource(text) {
			sources = append(sources, file)
		}
	}
	return sources, nil
}

// HasSourceFiles reports whether dir directly contains a .cs file
func (fp *FileProcessor) HasSourceFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if !entry.IsDir() && isSourceName(entry.Name()) {
			return true, nil
		}
	}
	return false, nil
}

// ParseFiles parses every file and reports the syntax errors of all of them
// together as a *errors.MultipleErrors
func (fp *FileProcessor) ParseFiles(files []string) ([]*csharp.SyntaxTree, error) {
	var failures *errors.MultipleErrors
	trees := make([]*csharp.SyntaxTree, 0, len(files))

	for _, file := range files {
		tree, err := fp.fileReader.ParseSourceFile(file)
		if err == nil {
			trees = append(trees, tree)
			continue
		}
		var genErr errors.GeneratorError
		if !errors.As(err, &genErr) {
			genErr = errors.WrapParseError(file, err)
		}
		errors.AddToMultiple(&failures, genErr)
	}

	if err := failures.ErrOrNil(); err != nil {
		return nil, err
	}
	return trees, nil
}

// CleanDirectories deletes the .g.cs files below dirs that carry the
// dispatchgen header and returns their paths. Missing directories are ignored.
func (fp *FileProcessor) CleanDirectories(dirs []string) ([]string, error) {
	var removed []string
	ops := fileops.NewFileOps()

	for _, dir := range dirs {
		if dir == "" {
			dir = "."
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}

		candidates, err := walk(dir, isGeneratedName, true)
		if err != nil {
			return removed, errors.WrapFileSystemError("clean", dir, err)
		}

		for _, file := range candidates {
			text, err := ops.ReadFile(file)
			if err != nil || !IsGeneratedSource(text) {
				continue
			}
			if err := ops.RemoveFile(file); err != nil {
				return removed, err
			}
			fp.fileReader.Forget(file)
			removed = append(removed, file)
		}
	}
	return removed, nil
}
