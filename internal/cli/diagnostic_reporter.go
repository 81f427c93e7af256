package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	axonerrors "github.com/toyz/axon-conventions/internal/errors"
)

// DiagnosticReporter renders checker failures with their location, context
// and suggestions
type DiagnosticReporter struct {
	verbose bool
	output  io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to output
func NewDiagnosticReporter(output io.Writer, verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		output:  output,
	}
}

// ReportError prints err. Errors joined in a MultipleErrors are reported one
// after another.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	var multi *axonerrors.MultipleErrors
	if errors.As(err, &multi) && len(multi.Errors) > 1 {
		fmt.Fprintf(r.output, "\nERROR: %d failures\n", len(multi.Errors))
		for _, item := range multi.Errors {
			r.ReportError(item)
		}
		return
	}

	var axonErr axonerrors.AxonError
	if errors.As(err, &axonErr) {
		r.reportAxonError(err, axonErr)
	} else {
		r.printHeader(axonerrors.UnknownErrorCode)
		fmt.Fprintf(r.output, "Message: %s\n", err.Error())
	}
	fmt.Fprintln(r.output)
}

func (r *DiagnosticReporter) reportAxonError(err error, axonErr axonerrors.AxonError) {
	r.printHeader(axonErr.ErrorCode())

	fmt.Fprintf(r.output, "Message: %s\n", err.Error())

	if loc := axonErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.output, "Location: %s\n", loc.String())
	}

	if context := axonErr.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := axonErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose {
		r.printChain(axonErr.Unwrap())
	}
}

// printHeader prints a colored header naming the error code
func (r *DiagnosticReporter) printHeader(code axonerrors.ErrorCode) {
	title := describeCode(code)
	color.New(color.FgRed, color.Bold).Fprintf(r.output, "\nERROR: %s\n", title)
	fmt.Fprintf(r.output, "%s\n", strings.Repeat("-", len(title)+7))
}

func describeCode(code axonerrors.ErrorCode) string {
	switch code {
	case axonerrors.SyntaxErrorCode:
		return "Annotation Syntax Error"
	case axonerrors.ValidationErrorCode:
		return "Validation Error"
	case axonerrors.ConfigurationErrorCode:
		return "Configuration Error"
	case axonerrors.LoadErrorCode:
		return "Package Load Error"
	case axonerrors.AnalysisErrorCode:
		return "Analysis Error"
	case axonerrors.FixErrorCode:
		return "Fix Error"
	case axonerrors.FileSystemErrorCode:
		return "File System Error"
	default:
		return "Check Failed"
	}
}

// printContext prints context entries in key order
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.output, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.output, "   %s: %v\n", formatContextKey(key), context[key])
	}
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.output, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.output, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.output, "      %s\n", line)
			}
		}
	}
}

// printChain prints the unwrapped causes in verbose mode
func (r *DiagnosticReporter) printChain(cause error) {
	if cause == nil {
		return
	}

	fmt.Fprintf(r.output, "Error Chain:\n")
	for level := 1; cause != nil; level++ {
		fmt.Fprintf(r.output, "   %d. %s\n", level, cause.Error())
		cause = errors.Unwrap(cause)
	}
}
