package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewDiagnosticSystem(level).WithOutput(&out, &errOut), &out, &errOut
}

func TestDiagnosticLevels(t *testing.T) {
	tests := []struct {
		level   DiagnosticLevel
		want    []string
		notWant []string
	}{
		{DiagnosticSilent, nil, []string{"[INFO]", "[WARN]", "[VERBOSE]"}},
		{DiagnosticError, nil, []string{"[INFO]", "[WARN]"}},
		{DiagnosticInfo, []string{"[INFO] info 1", "[WARN] warn", "[SUCCESS] done"}, []string{"[VERBOSE]", "[DEBUG]"}},
		{DiagnosticVerbose, []string{"[VERBOSE] details"}, []string{"[DEBUG]"}},
		{DiagnosticDebug, []string{"[DEBUG] trace"}, nil},
	}

	for _, tt := range tests {
		d, out, _ := newTestDiagnostics(tt.level)
		assert.Equal(t, tt.level, d.Level())

		d.Info("info %d", 1)
		d.Warn("warn")
		d.Success("done")
		d.Verbose("details")
		d.Debug("trace")

		for _, want := range tt.want {
			assert.Contains(t, out.String(), want)
		}
		for _, notWant := range tt.notWant {
			assert.NotContains(t, out.String(), notWant)
		}
	}
}

func TestDiagnosticErrorsGoToErrorOutput(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticError)
	d.Error("failed: %s", "boom")

	assert.Empty(t, out.String())
	assert.Equal(t, "[ERROR] failed: boom\n", errOut.String())

	silent, _, errOut := newTestDiagnostics(DiagnosticSilent)
	silent.Error("hidden")
	assert.Empty(t, errOut.String())
}

func TestDiagnosticPhases(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)

	d.Header("generating dispatcher extensions")
	d.PhaseHeader("Scanning")
	d.PhaseItem("2 source files")
	d.Indent()
	d.List("Demo.cs")
	d.Unindent()
	d.Unindent()
	d.PhaseProgress("Writing out/DemoDispatcherExtensions.g.cs")
	d.PhaseProgress("Unchanged out/DispatchableAttribute.g.cs")

	assert.Equal(t, "dispatchgen: generating dispatcher extensions\n"+
		"Scanning:\n"+
		"✓ 2 source files\n"+
		"  - Demo.cs\n"+
		"✏ Writing out/DemoDispatcherExtensions.g.cs\n"+
		"- Unchanged out/DispatchableAttribute.g.cs\n", out.String())
}

func TestDiagnosticQuietHidesPhases(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticError)
	assert.Equal(t, DiagnosticError, NewQuietDiagnostics().Level())

	d.Header("hidden")
	d.PhaseHeader("Scanning")
	d.PhaseItem("hidden")
	d.PhaseProgress("Writing hidden")
	d.List("hidden")

	assert.Empty(t, out.String())
}
