package report

import (
	"io"

	"photostamp/internal/batch"
)

// Writer defines the interface for batch-report output.
// Implementations render a batch summary in a specific format.
//
// Design decision: We use an interface so the stamp command can select a
// format at runtime and write to stdout or a file with the same API.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *batch.Summary) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// FileStatus is the serializable view of one per-file result.
type FileStatus struct {
	// Input is the source image path.
	Input string `json:"input"`

	// Output is the destination path of the watermarked copy.
	Output string `json:"output"`

	// Watermark is the rendered date text, empty if resolution was
	// never reached.
	Watermark string `json:"watermark,omitempty"`

	// OK reports whether processing succeeded.
	OK bool `json:"ok"`

	// Error holds the failure message for failed units.
	Error string `json:"error,omitempty"`
}

// View is the serializable form of a batch summary shared by the JSON
// and Markdown writers.
type View struct {
	// Source is the input root of the batch.
	Source string `json:"source"`

	// Started is when the run began, RFC 3339.
	Started string `json:"started"`

	// Elapsed is the total processing duration.
	Elapsed string `json:"elapsed"`

	// Succeeded is the number of units processed successfully.
	Succeeded int `json:"succeeded"`

	// Failed is the number of units that failed.
	Failed int `json:"failed"`

	// Total is the number of units attempted.
	Total int `json:"total"`

	// Files lists per-file outcomes in processing order.
	Files []FileStatus `json:"files"`
}

// NewView converts a batch summary into its serializable view.
func NewView(summary *batch.Summary) *View {
	v := &View{
		Source:    summary.Source,
		Started:   summary.Started.Format("2006-01-02T15:04:05Z07:00"),
		Elapsed:   summary.Elapsed.String(),
		Succeeded: summary.SuccessCount,
		Failed:    summary.FailureCount(),
		Total:     summary.TotalCount,
		Files:     make([]FileStatus, 0, len(summary.Results)),
	}

	for _, r := range summary.Results {
		fs := FileStatus{
			Input:     r.Unit.Input,
			Output:    r.Unit.Output,
			Watermark: r.Text,
			OK:        r.OK(),
		}
		if r.Err != nil {
			fs.Error = r.Err.Error()
		}
		v.Files = append(v.Files, fs)
	}

	return v
}
