package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel selects how much progress output a run prints
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// messageKind describes one tagged line such as "[WARN] ...". Only errors go
// to the error writer.
type messageKind struct {
	tag    string
	min    DiagnosticLevel
	attr   color.Attribute
	stderr bool
}

var (
	errorKind   = messageKind{"ERROR", DiagnosticError, color.FgRed, true}
	warnKind    = messageKind{"WARN", DiagnosticWarn, color.FgYellow, false}
	infoKind    = messageKind{"INFO", DiagnosticInfo, color.FgBlue, false}
	successKind = messageKind{"SUCCESS", DiagnosticInfo, color.FgGreen, false}
	verboseKind = messageKind{"VERBOSE", DiagnosticVerbose, color.FgHiBlack, false}
	debugKind   = messageKind{"DEBUG", DiagnosticDebug, color.FgMagenta, false}
)

// DiagnosticSystem prints the progress of a generation run: phase headers,
// written files and tagged log lines filtered by level.
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
}

// NewDiagnosticSystem writes to the process streams. Verbose levels prefix
// tagged lines with the time of day.
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= DiagnosticVerbose,
		output:    os.Stdout,
		errorOut:  os.Stderr,
	}
}

// NewQuietDiagnostics only reports errors
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

// WithOutput redirects both streams and turns off colors and timestamps
func (d *DiagnosticSystem) WithOutput(out, errOut io.Writer) *DiagnosticSystem {
	d.output, d.errorOut = out, errOut
	d.useColors, d.showTime = false, false
	return d
}

func (d *DiagnosticSystem) Level() DiagnosticLevel {
	return d.level
}

func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	d.log(errorKind, format, args...)
}

func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	d.log(warnKind, format, args...)
}

func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	d.log(infoKind, format, args...)
}

func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	d.log(successKind, format, args...)
}

func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	d.log(verboseKind, format, args...)
}

func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	d.log(debugKind, format, args...)
}

func (d *DiagnosticSystem) log(kind messageKind, format string, args ...interface{}) {
	if d.level < kind.min {
		return
	}

	var line strings.Builder
	line.WriteString(d.prefix())
	if d.showTime {
		line.WriteString(time.Now().Format("15:04:05 "))
	}
	line.WriteString(d.colored(kind.attr).Sprintf("[%s]", kind.tag))
	line.WriteString(" ")
	fmt.Fprintf(&line, format, args...)
	line.WriteString("\n")

	w := d.output
	if kind.stderr {
		w = d.errorOut
	}
	io.WriteString(w, line.String())
}

// Indent and Unindent nest List lines and tagged lines
func (d *DiagnosticSystem) Indent() { d.indent++ }

func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// The remaining helpers print untagged progress lines at the info level.

func (d *DiagnosticSystem) progress() bool {
	return d.level >= DiagnosticInfo
}

// List prints "- item" at the current indentation
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.progress() {
		fmt.Fprintf(d.output, "%s- %s\n", d.prefix(), fmt.Sprintf(format, args...))
	}
}

// Header prints the banner of a run
func (d *DiagnosticSystem) Header(message string) {
	if d.progress() {
		d.colored(color.FgCyan).Fprintf(d.output, "dispatchgen: %s\n", message)
	}
}

// PhaseHeader opens a phase such as "Scanning:"
func (d *DiagnosticSystem) PhaseHeader(phase string) {
	if d.progress() {
		d.colored(color.FgBlue).Fprintf(d.output, "%s:\n", phase)
	}
}

// PhaseItem reports a completed step of the current phase
func (d *DiagnosticSystem) PhaseItem(message string) {
	if d.progress() {
		d.colored(color.FgGreen).Fprint(d.output, "✓ ")
		fmt.Fprintln(d.output, message)
	}
}

// PhaseProgress reports a file; "Writing ..." lines are highlighted
func (d *DiagnosticSystem) PhaseProgress(message string) {
	if !d.progress() {
		return
	}
	if strings.HasPrefix(message, "Writing") {
		d.colored(color.FgMagenta).Fprint(d.output, "✏ ")
		fmt.Fprintln(d.output, message)
		return
	}
	fmt.Fprintf(d.output, "- %s\n", message)
}

func (d *DiagnosticSystem) colored(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if d.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (d *DiagnosticSystem) prefix() string {
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors honors NO_COLOR and FORCE_COLOR before falling back to the
// terminal detection of fatih/color
func shouldUseColors() bool {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return false
	case os.Getenv("FORCE_COLOR") != "":
		return true
	default:
		return !color.NoColor
	}
}
