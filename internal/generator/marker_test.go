package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/symbols"
)

func TestEnsureMarkerExists(t *testing.T) {
	bare := compile(t, "Demo", symbols.Source{Path: "Demo.cs", Text: demoSource})

	first, err := EnsureMarkerExists(bare, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, first.Present)
	require.NotNil(t, first.Unit)
	assert.Equal(t, "DispatchableAttribute.g.cs", first.Unit.Name)

	// asking twice in one pass yields one unit
	second, err := EnsureMarkerExists(bare, DefaultOptions())
	require.NoError(t, err)
	a := NewAssembler()
	a.Add(*first.Unit)
	a.Add(*second.Unit)
	assert.Len(t, a.Units(), 1)

	next, err := bare.WithSources(symbols.Source{Path: first.Unit.Name, Text: first.Unit.Text})
	require.NoError(t, err)
	present, err := EnsureMarkerExists(next, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, present.Present)
	assert.Nil(t, present.Unit)

	marker := next.TypeByMetadataName("Fluxor.DispatchableAttribute")
	require.NotNil(t, marker)
	assert.Equal(t, symbols.AccessibilityInternal, marker.Accessibility)
	record := next.TypeByMetadataName("FluxorGeneratorsDemo.Cli.Foo5")
	require.NotNil(t, record)
	assert.True(t, record.HasAttribute(marker))
}

func TestWriteMarkerOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Namespace = "Acme.Store"
	opts.MarkerName = "Action"
	opts.MarkerVisibility = "public"

	var b strings.Builder
	require.NoError(t, WriteMarker(&b, opts))
	assert.Contains(t, b.String(), "namespace Acme.Store\n")
	assert.Contains(t, b.String(), "public sealed class ActionAttribute : Attribute")
	assert.Contains(t, b.String(), "public ActionAttribute() { }")

	err := WriteMarker(nil, opts)
	assert.True(t, errors.Is(err, errors.ErrNilWriter))
}
