package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dispatchgen/internal/errors"
)

func TestAssemblerFirstUnitWins(t *testing.T) {
	a := NewAssembler()
	assert.True(t, a.Add(Unit{Name: "DispatchableAttribute.g.cs", Text: "first"}))
	assert.False(t, a.Add(Unit{Name: "DispatchableAttribute.g.cs", Text: "second"}))
	assert.True(t, a.Add(Unit{Name: "DemoDispatcherExtensions.g.cs", Text: "extensions"}))

	units := a.Units()
	require.Len(t, units, 2)
	assert.Equal(t, "first", units[0].Text)

	sink := NewMemorySink()
	require.NoError(t, a.Commit(sink))
	require.NoError(t, a.Commit(sink))
	assert.Len(t, sink.Units(), 2)
}

type failingSink struct {
	fail  string
	units []string
}

func (s *failingSink) AddGeneratedUnit(name, _ string) error {
	if name == s.fail {
		return fmt.Errorf("disk full")
	}
	s.units = append(s.units, name)
	return nil
}

func TestAssemblerCommitFailure(t *testing.T) {
	a := NewAssembler()
	a.Add(Unit{Name: "a.g.cs"})
	a.Add(Unit{Name: "b.g.cs"})

	sink := &failingSink{fail: "b.g.cs"}
	err := a.Commit(sink)
	require.Error(t, err)

	var genErr *errors.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "b.g.cs", genErr.Unit)
	assert.Equal(t, []string{"a.g.cs"}, sink.units)

	sink.fail = ""
	require.NoError(t, a.Commit(sink))
	assert.Equal(t, []string{"a.g.cs", "b.g.cs"}, sink.units)

	assert.Equal(t, errors.PreconditionErrorCode, errors.CodeOf(a.Commit(nil)))
}

func TestMemorySinkRejectsDuplicates(t *testing.T) {
	sink := NewMemorySink()
	require.NoError(t, sink.AddGeneratedUnit("x.g.cs", "one"))
	assert.Error(t, sink.AddGeneratedUnit("x.g.cs", "two"))

	unit, ok := sink.Unit("x.g.cs")
	require.True(t, ok)
	assert.Equal(t, "one", unit.Text)
}
