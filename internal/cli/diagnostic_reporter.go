package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/generator"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
	colors  bool
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to the process streams
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stdout,
		errOut:  os.Stderr,
		colors:  !color.NoColor,
	}
}

// WithOutput redirects the reporter and disables colors
func (r *DiagnosticReporter) WithOutput(out, errOut io.Writer) *DiagnosticReporter {
	r.out = out
	r.errOut = errOut
	r.colors = false
	return r
}

func (r *DiagnosticReporter) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.colors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	r.paint(color.FgYellow, color.Bold).Fprint(r.errOut, "! ")
	fmt.Fprintf(r.errOut, "%s\n", message)
	for _, suggestion := range suggestions {
		fmt.Fprintf(r.errOut, "  - %s\n", suggestion)
	}
}

// ReportExclusions warns about annotated declarations that produced no forwarders
func (r *DiagnosticReporter) ReportExclusions(exclusions []generator.Exclusion) {
	for _, ex := range exclusions {
		location := ""
		if !ex.Location.IsEmpty() {
			location = ex.Location.String() + ": "
		}
		r.ReportWarning(fmt.Sprintf("%s'%s' skipped: %s", location, ex.Name, ex.Reason))
		if r.verbose && ex.Err != nil {
			fmt.Fprintf(r.errOut, "  cause: %v\n", ex.Err)
		}
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.errOut, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.errOut, "=============================\n\n")

	var multi *errors.MultipleErrors
	var genErr errors.GeneratorError
	switch {
	case errors.As(err, &multi) && multi.Count() > 1:
		fmt.Fprintf(r.errOut, "%d errors:\n\n", multi.Count())
		for _, e := range multi.Errors {
			r.reportGeneratorError(e)
		}
	case errors.As(err, &genErr):
		r.reportGeneratorError(genErr)
	default:
		r.reportBasicError(err)
	}

	r.printAdditionalHelp()
	fmt.Fprintf(r.errOut, "\n")
}

// reportGeneratorError reports a GeneratorError with full context and suggestions
func (r *DiagnosticReporter) reportGeneratorError(genErr errors.GeneratorError) {
	r.printErrorHeader(genErr.ErrorCode())

	fmt.Fprintf(r.errOut, "Message: %s\n\n", genErr.Error())

	if loc := errors.LocationOf(genErr); !loc.IsEmpty() {
		fmt.Fprintf(r.errOut, "Location: %s\n\n", loc)
	}

	if ctx := genErr.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := genErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose {
		r.printErrorChain(genErr)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())
}

// printErrorHeader prints a formatted error header based on the error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var errorTypeStr string

	switch code {
	case errors.SyntaxErrorCode:
		errorTypeStr = "Syntax Error"
	case errors.BindingErrorCode:
		errorTypeStr = "Binding Error"
	case errors.MarkerUnavailableErrorCode:
		errorTypeStr = "Marker Unavailable"
	case errors.EnumMemberNotFoundErrorCode:
		errorTypeStr = "Enum Member Not Found"
	case errors.GenerationErrorCode, errors.TemplateErrorCode:
		errorTypeStr = "Code Generation Error"
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	case errors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	case errors.PreconditionErrorCode:
		errorTypeStr = "Precondition Error"
	case errors.CanceledErrorCode:
		errorTypeStr = "Canceled"
	default:
		errorTypeStr = "Unknown Error"
	}

	r.paint(color.FgRed, color.Bold).Fprintf(r.errOut, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.errOut, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.errOut, "Context:\n")

	// Print important context items first
	importantKeys := []string{"enum", "parameter", "value", "unit", "stage", "metadata_name"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	rest := make([]string, 0, len(context))
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.errOut, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "enum":
		return "Enum"
	case "metadata_name":
		return "Marker"
	default:
		// Convert snake_case to Title Case
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.errOut, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.errOut, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.errOut, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.errOut, "\n")
}

func (r *DiagnosticReporter) printAdditionalHelp() {
	fmt.Fprintf(r.errOut, "For more help:\n")
	fmt.Fprintf(r.errOut, "  - Run with --verbose for more detailed output\n")
	fmt.Fprintf(r.errOut, "  - Run 'dispatchgen --help' for the list of options\n")
}

// printErrorChain prints every error wrapped below err in verbose mode
func (r *DiagnosticReporter) printErrorChain(err error) {
	cause := errors.Unwrap(err)
	if cause == nil {
		return
	}

	fmt.Fprintf(r.errOut, "Error Chain:\n")
	for level := 1; cause != nil; level++ {
		fmt.Fprintf(r.errOut, "    %d. %s\n", level, cause.Error())
		cause = errors.Unwrap(cause)
	}
	fmt.Fprintf(r.errOut, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.errOut, "[DEBUG] "+format+"\n", args...)
	}
}

// ReportSuccess reports successful generation with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	fmt.Fprintf(r.out, "\nCode Generation Completed Successfully!\n")
	fmt.Fprintf(r.out, "=======================================\n\n")

	fmt.Fprintf(r.out, "Read %d source files\n", summary.SourcesRead)
	fmt.Fprintf(r.out, "Found %d dispatchable records\n", summary.RecordsFound)
	fmt.Fprintf(r.out, "Generated %d forwarders\n", summary.ForwardersGenerated)
	if summary.RecordsSkipped > 0 {
		fmt.Fprintf(r.out, "Skipped %d records\n", summary.RecordsSkipped)
	}

	if len(summary.GeneratedFiles) > 0 {
		fmt.Fprintf(r.out, "\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Fprintf(r.out, "  - %s\n", file)
		}
	}
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	Identity            string
	SourcesRead         int
	RecordsFound        int
	RecordsSkipped      int
	ForwardersGenerated int
	MarkerGenerated     bool
	GeneratedFiles      []string
	UnchangedFiles      []string
}
