package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dispatchgen/internal/symbols"
)

func TestProgramIdentity(t *testing.T) {
	sources := []symbols.Source{{Path: "Demo.cs", Text: demoSource}}
	named := compile(t, "My.App-1", sources...)

	id, err := ProgramIdentity(named, "")
	require.NoError(t, err)
	assert.Equal(t, "MyApp1", id)

	id, err = ProgramIdentity(named, "Override")
	require.NoError(t, err)
	assert.Equal(t, "Override", id)

	anonymous := compile(t, "", sources...)
	first, err := ProgramIdentity(anonymous, "")
	require.NoError(t, err)
	assert.Len(t, first, 13)
	assert.True(t, strings.HasPrefix(first, "G"))

	again, err := ProgramIdentity(compile(t, "", sources...), "")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	other, err := ProgramIdentity(compile(t, "", symbols.Source{Path: "Demo.cs", Text: demoSource + "\n"}), "")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}
