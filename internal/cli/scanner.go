package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/txtar"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/symbols"
	"github.com/toyz/dispatchgen/internal/utils"
)

// DirectoryScanner collects C# sources from directories, single files and
// txtar bundles
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// ScanSources reads every source named by inputs. A directory contributes its
// own .cs files; a directory followed by "/..." also contributes those of its
// subdirectories. Files dispatchgen generated are skipped so a second run
// sees the same program as the first. Sources are returned sorted by path
// with duplicates removed.
func (s *DirectoryScanner) ScanSources(inputs []string) ([]symbols.Source, error) {
	seen := make(map[string]bool)
	var sources []symbols.Source

	add := func(src symbols.Source) {
		if seen[src.Path] {
			return
		}
		seen[src.Path] = true
		sources = append(sources, src)
	}

	for _, input := range inputs {
		found, err := s.scanInput(input)
		if err != nil {
			return nil, err
		}
		for _, src := range found {
			add(src)
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

func (s *DirectoryScanner) scanInput(input string) ([]symbols.Source, error) {
	recursive := strings.HasSuffix(input, "/...")
	path := strings.TrimSuffix(input, "/...")
	if path == "" {
		path = "."
	}

	cleanPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", path), err)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.WrapFileSystemError("stat", input, err).
			WithSuggestion("Check that the specified paths exist")
	}

	switch {
	case info.IsDir():
		return s.scanDirectory(cleanPath, recursive)
	case strings.HasSuffix(cleanPath, ".txtar"):
		return s.ScanArchive(cleanPath)
	case strings.HasSuffix(cleanPath, ".cs"):
		src, err := s.readSource(cleanPath)
		if err != nil {
			return nil, err
		}
		return []symbols.Source{src}, nil
	default:
		return nil, errors.FileSystemError("scan", input, "expected a directory, a .cs file or a .txtar bundle")
	}
}

func (s *DirectoryScanner) scanDirectory(dir string, recursive bool) ([]symbols.Source, error) {
	files, err := s.fileProcessor.SourceFiles(dir)
	if err != nil {
		return nil, err
	}

	var sources []symbols.Source
	for _, file := range files {
		if !recursive && filepath.Dir(file) != dir {
			continue
		}
		src, err := s.readSource(file)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// ScanArchive returns the .cs members of a txtar bundle. Member names are
// prefixed with the bundle path so they cannot collide with files on disk.
func (s *DirectoryScanner) ScanArchive(path string) ([]symbols.Source, error) {
	archive, err := txtar.ParseFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return ArchiveSources(path, archive), nil
}

// ArchiveSources returns the .cs members of archive that were not generated
// by dispatchgen, named prefix/member
func ArchiveSources(prefix string, archive *txtar.Archive) []symbols.Source {
	var sources []symbols.Source
	for _, f := range archive.Files {
		text := string(f.Data)
		if !strings.HasSuffix(f.Name, ".cs") || utils.IsGeneratedSource(text) {
			continue
		}
		name := f.Name
		if prefix != "" {
			name = prefix + "/" + f.Name
		}
		sources = append(sources, symbols.Source{Path: name, Text: text})
	}
	return sources
}

func (s *DirectoryScanner) readSource(path string) (symbols.Source, error) {
	text, err := s.fileProcessor.GetFileReader().ReadFile(path)
	if err != nil {
		return symbols.Source{}, err
	}
	return symbols.Source{Path: path, Text: text}, nil
}
