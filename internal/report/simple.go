package report

import (
	"fmt"
	"io"
	"strings"

	"photostamp/internal/batch"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and pipes cleanly to
// files and other tools.
type SimpleWriter struct {
	baseWriter

	// verbose enables per-file detail even for successful units.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-file output for successes as well as failures.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(summary *batch.Summary) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("                   PHOTOSTAMP REPORT\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Source:    %s\n", summary.Source))
	sb.WriteString(fmt.Sprintf("Processed: %d/%d succeeded", summary.SuccessCount, summary.TotalCount))
	if summary.FailureCount() > 0 {
		sb.WriteString(fmt.Sprintf(" (%d failed)", summary.FailureCount()))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Elapsed:   %s\n\n", summary.Elapsed))

	for _, r := range summary.Results {
		if r.OK() {
			if w.verbose {
				sb.WriteString(fmt.Sprintf("  ok    %s -> %s (%s)\n", r.Unit.Input, r.Unit.Output, r.Text))
			}
			continue
		}
		sb.WriteString(fmt.Sprintf("  FAIL  %s: %v\n", r.Unit.Input, r.Err))
	}

	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}
