package generator

import (
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/mod/sumdb/dirhash"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/symbols"
	"github.com/toyz/dispatchgen/internal/templates"
)

var identityNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("github.com/toyz/dispatchgen"))

// ProgramIdentity returns the identifier that prefixes the extensions class.
// It is the override when set, then the program's assembly name, and for
// anonymous programs a name derived from the hash of their sources, so equal
// inputs always produce equal identities.
func ProgramIdentity(program *symbols.Program, override string) (string, error) {
	for _, name := range []string{override, program.AssemblyName()} {
		if id := templates.DefaultTemplateUtils.ToIdentifier(name); id != "" {
			return id, nil
		}
	}

	sum, err := SourceHash(program.Sources())
	if err != nil {
		return "", err
	}
	id := uuid.NewSHA1(identityNamespace, []byte(sum))
	return "G" + strings.ReplaceAll(id.String(), "-", "")[:12], nil
}

// SourceHash returns the dirhash of a set of sources keyed by their paths
func SourceHash(sources []symbols.Source) (string, error) {
	texts := make(map[string]string, len(sources))
	files := make([]string, 0, len(sources))
	for _, src := range sources {
		if _, dup := texts[src.Path]; !dup {
			files = append(files, src.Path)
		}
		texts[src.Path] = src.Text
	}

	sum, err := dirhash.Hash1(files, func(name string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(texts[name])), nil
	})
	if err != nil {
		return "", errors.WrapWithOperation("hash", "sources", err)
	}
	return sum, nil
}
