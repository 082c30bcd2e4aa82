package cli

import (
	"fmt"
	"strings"

	"github.com/toyz/dispatchgen/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes every .g.cs file dispatchgen wrote below the
// given directories and returns the removed paths. Files with the same suffix
// written by other tools are kept. Missing directories are ignored.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	dirs := make([]string, 0, len(directories))
	for _, dir := range directories {
		dir = strings.TrimSuffix(dir, "/...")
		if dir == "" {
			dir = "."
		}
		dirs = append(dirs, dir)
	}

	removed, err := c.fileProcessor.CleanDirectories(dirs)
	if err != nil {
		return removed, fmt.Errorf("failed to clean directories %v: %w", directories, err)
	}
	return removed, nil
}
