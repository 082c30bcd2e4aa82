package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/generator"
)

func newTestReporter(verbose bool) (*DiagnosticReporter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewDiagnosticReporter(verbose).WithOutput(&out, &errOut), &out, &errOut
}

func TestDiagnosticReporter_ReportError(t *testing.T) {
	enumErr := errors.NewEnumMemberNotFoundError("Demo.Level", "Value", "5").
		WithLocation(errors.SourceLocation{File: "Levels.cs", Line: 8, Column: 24})
	wrapped := errors.WrapGenerateError("Demo.SetLevel", "emit", enumErr)

	t.Run("generator error", func(t *testing.T) {
		reporter, out, errOut := newTestReporter(false)
		reporter.ReportError(wrapped)

		text := errOut.String()
		assert.Empty(t, out.String())
		assert.Contains(t, text, "ERROR: Code Generation Failed")
		assert.Contains(t, text, "Type: Code Generation Error")
		assert.Contains(t, text, "Location: Levels.cs:8:24")
		assert.Contains(t, text, "   Unit: Demo.SetLevel\n")
		assert.Contains(t, text, "   Stage: emit\n")
		assert.NotContains(t, text, "Error Chain:")
	})

	t.Run("verbose shows the chain", func(t *testing.T) {
		reporter, _, errOut := newTestReporter(true)
		reporter.ReportError(wrapped)
		assert.Contains(t, errOut.String(), "Error Chain:\n    1. Levels.cs:8:24: default value 5")
	})

	t.Run("direct typed error", func(t *testing.T) {
		reporter, _, errOut := newTestReporter(false)
		reporter.ReportError(enumErr)

		text := errOut.String()
		assert.Contains(t, text, "Type: Enum Member Not Found")
		assert.Contains(t, text, "   Enum: Demo.Level\n   Parameter: Value\n   Value: 5\n")
		assert.Contains(t, text, "Suggestions:\n   1. Use one of the members of 'Demo.Level'")
	})

	t.Run("multiple errors", func(t *testing.T) {
		var multi *errors.MultipleErrors
		errors.AddToMultiple(&multi, errors.NewSyntaxError("unexpected token '('").
			WithLocation(errors.SourceLocation{File: "A.cs", Line: 1}))
		errors.AddToMultiple(&multi, errors.NewSyntaxError("unexpected end of file").
			WithLocation(errors.SourceLocation{File: "B.cs", Line: 3}))

		reporter, _, errOut := newTestReporter(false)
		reporter.ReportError(multi)

		text := errOut.String()
		assert.Contains(t, text, "2 errors:")
		assert.Contains(t, text, "Location: A.cs:1")
		assert.Contains(t, text, "Location: B.cs:3")
	})

	t.Run("plain error", func(t *testing.T) {
		reporter, _, errOut := newTestReporter(false)
		reporter.ReportError(fmt.Errorf("boom"))
		assert.Contains(t, errOut.String(), "Message: boom")
		assert.NotContains(t, errOut.String(), "Type:")
	})
}

func TestDiagnosticReporter_ReportExclusions(t *testing.T) {
	reporter, _, errOut := newTestReporter(true)
	reporter.ReportExclusions([]generator.Exclusion{
		{Name: "Box", Reason: "generic records are not supported", Location: errors.SourceLocation{File: "Box.cs", Line: 4, Column: 1}},
		{Name: "Ghost", Reason: "declaration could not be resolved", Err: fmt.Errorf("unknown base type")},
	})

	assert.Equal(t, "! Box.cs:4:1: 'Box' skipped: generic records are not supported\n"+
		"! 'Ghost' skipped: declaration could not be resolved\n"+
		"  cause: unknown base type\n", errOut.String())
}

func TestDiagnosticReporter_ReportSuccess(t *testing.T) {
	reporter, out, _ := newTestReporter(false)
	reporter.ReportSuccess(GenerationSummary{
		SourcesRead:         3,
		RecordsFound:        2,
		RecordsSkipped:      1,
		ForwardersGenerated: 4,
		GeneratedFiles:      []string{"Generated/DemoDispatcherExtensions.g.cs"},
	})

	text := out.String()
	assert.Contains(t, text, "Read 3 source files\n")
	assert.Contains(t, text, "Found 2 dispatchable records\n")
	assert.Contains(t, text, "Generated 4 forwarders\n")
	assert.Contains(t, text, "Skipped 1 records\n")
	assert.Contains(t, text, "  - Generated/DemoDispatcherExtensions.g.cs\n")
}
