package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// outputSuffix is inserted before the extension of every output filename
// and appended to derived output directory names.
const outputSuffix = "_watermark"

// defaultMaxFileSize bounds input files accepted during discovery.
// Files beyond 100MB are almost never photographs.
const defaultMaxFileSize = 100 * 1024 * 1024

// supportedExtensions is the set of raster formats accepted as input,
// matched case-insensitively.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tiff": true,
	".tif":  true,
	".bmp":  true,
	".gif":  true,
}

// Stamper renders the timestamp watermark for a single image file.
// It is implemented by watermark.Processor.
type Stamper interface {
	// Stamp reads inputPath, renders text onto it, and writes outputPath.
	Stamp(inputPath, outputPath, text string) error
}

// DateResolver supplies the watermark text for a file.
// It is implemented by exifdate.Extractor.
type DateResolver interface {
	// Resolve returns the display-formatted date for the file.
	Resolve(path string) string
}

// Unit is a single source file plus its resolved output path.
// Units are created per discovered file and discarded after processing.
type Unit struct {
	// Input is the source image path.
	Input string `json:"input"`

	// Output is the destination path for the watermarked copy.
	Output string `json:"output"`
}

// Result records the outcome of processing one unit.
type Result struct {
	// Unit identifies the processed file.
	Unit Unit

	// Text is the watermark text that was (or would have been) rendered.
	Text string

	// Err is the per-unit failure, or nil on success.
	Err error
}

// OK reports whether the unit was processed successfully.
func (r Result) OK() bool {
	return r.Err == nil
}

// Summary aggregates the outcomes of a batch run.
type Summary struct {
	// Source is the input root the batch was started from.
	Source string

	// Started is when the run began.
	Started time.Time

	// Elapsed is the total processing duration.
	Elapsed time.Duration

	// Results holds one entry per attempted unit, in processing order.
	Results []Result

	// SuccessCount is the number of units processed successfully.
	SuccessCount int

	// TotalCount is the number of units attempted.
	TotalCount int
}

// add records a result and updates the tally.
func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	s.TotalCount++
	if r.OK() {
		s.SuccessCount++
	}
}

// FailureCount is the number of units that failed.
func (s *Summary) FailureCount() int {
	return s.TotalCount - s.SuccessCount
}

// Runner processes an input root sequentially.
type Runner struct {
	// stamper renders the watermark for each unit.
	stamper Stamper

	// dates supplies the watermark text for each unit.
	dates DateResolver

	// logger is used for batch-level and per-unit logging.
	logger *slog.Logger

	// outputDir overrides the derived output directory when non-empty.
	outputDir string

	// maxFileSize bounds input files accepted during discovery.
	maxFileSize int64
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets a custom logger for the runner.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithOutputDir sets an explicit output directory. When unset, outputs go
// to a sibling directory named "<parent>_watermark" next to the inputs.
func WithOutputDir(dir string) Option {
	return func(r *Runner) {
		r.outputDir = dir
	}
}

// WithMaxFileSize overrides the input file size limit in bytes.
func WithMaxFileSize(n int64) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxFileSize = n
		}
	}
}

// NewRunner creates a Runner with the given pipeline collaborators.
func NewRunner(stamper Stamper, dates DateResolver, opts ...Option) *Runner {
	r := &Runner{
		stamper:     stamper,
		dates:       dates,
		maxFileSize: defaultMaxFileSize,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Run processes the file or directory at root and returns the aggregated
// summary. Per-unit failures are recorded in the summary and never abort
// the run; the returned error is reserved for an unusable root or an
// empty input set (ErrNoInputs).
func (r *Runner) Run(root string) (*Summary, error) {
	summary := &Summary{
		Source:  root,
		Started: time.Now(),
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	var files []string
	if info.IsDir() {
		files, err = r.discover(root)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return summary, ErrNoInputs
		}
	} else {
		files = []string{root}
	}

	r.logger.Info("starting batch",
		"source", root,
		"total", len(files),
	)

	for i, file := range files {
		r.logger.Debug("processing file",
			"file", file,
			"index", i+1,
			"total", len(files),
		)
		summary.add(r.process(file))
	}

	summary.Elapsed = time.Since(summary.Started)

	r.logger.Info("batch complete",
		"source", root,
		"succeeded", summary.SuccessCount,
		"total", summary.TotalCount,
		"elapsed", summary.Elapsed,
	)

	return summary, nil
}

// process handles a single unit: resolve the watermark text, derive the
// output path, and stamp. All failures are absorbed into the Result.
func (r *Runner) process(input string) Result {
	result := Result{
		Unit: Unit{Input: input, Output: r.outputPath(input)},
	}

	ext := strings.ToLower(filepath.Ext(input))
	if !supportedExtensions[ext] {
		result.Err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		r.logger.Warn("skipping unsupported file", "file", input)
		return result
	}

	// One stat covers both failure modes: a file that vanished since
	// discovery and the size guard on the single-file input path
	// (directory discovery already filters oversized files).
	info, err := os.Stat(input)
	if err != nil {
		result.Err = fmt.Errorf("stat input: %w", err)
		r.logger.Warn("failed to stat file", "file", input, "error", err)
		return result
	}
	if info.Size() > r.maxFileSize {
		result.Err = fmt.Errorf("%w: %d bytes", ErrFileTooLarge, info.Size())
		r.logger.Warn("skipping oversized file", "file", input, "size", info.Size())
		return result
	}

	result.Text = r.dates.Resolve(input)

	// Create-if-absent is idempotent and safe to repeat across units
	// mapping to the same directory.
	if err := os.MkdirAll(filepath.Dir(result.Unit.Output), 0o755); err != nil {
		result.Err = fmt.Errorf("create output directory: %w", err)
		r.logger.Error("failed to create output directory", "file", input, "error", err)
		return result
	}

	if err := r.stamper.Stamp(input, result.Unit.Output, result.Text); err != nil {
		result.Err = err
		r.logger.Error("failed to process file", "file", input, "error", err)
		return result
	}

	r.logger.Info("processed file",
		"input", input,
		"output", result.Unit.Output,
		"text", result.Text,
	)

	return result
}

// discover enumerates supported image files directly inside dir, in
// lexical order. Subdirectories are not entered; oversized files are
// skipped with a warning.
func (r *Runner) discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			r.logger.Warn("failed to stat file, skipping", "file", path, "error", err)
			continue
		}
		if info.Size() > r.maxFileSize {
			r.logger.Warn("skipping oversized file",
				"file", path,
				"size", info.Size(),
				"limit", r.maxFileSize,
			)
			continue
		}

		files = append(files, path)
	}

	return files, nil
}

// outputPath derives the destination for one input file: the original
// name with "_watermark" inserted before the extension, inside either the
// explicit output directory or a sibling directory named after the
// input's parent.
func (r *Runner) outputPath(input string) string {
	dir := r.outputDir
	if dir == "" {
		parent := filepath.Dir(input)
		dir = filepath.Join(parent, filepath.Base(parent)+outputSuffix)
	}

	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(dir, stem+outputSuffix+ext)
}
