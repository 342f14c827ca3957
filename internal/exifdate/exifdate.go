package exifdate

import (
	"log/slog"
	"os"
	"strings"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
)

// dateTags lists the EXIF date tags to try, most specific first.
// DateTimeOriginal is the moment the shutter fired; DateTimeDigitized is
// when the image was converted to digital form (differs for scanned film);
// DateTime is the generic modification timestamp many editors rewrite.
var dateTags = []string{
	"DateTimeOriginal",
	"DateTimeDigitized",
	"DateTime",
}

// displayDateLayout is the layout of the normalized display string.
const displayDateLayout = "2006-01-02"

// Extractor reads capture-time metadata from image files.
//
// All methods absorb I/O and parse failures: a file with unreadable or
// missing EXIF data is never an error, only a reason to fall back.
type Extractor struct {
	// logger receives warnings for unreadable metadata.
	logger *slog.Logger

	// now supplies the current time; overridable for tests.
	now func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets a custom logger for the extractor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithClock sets the wall-clock source used when both EXIF data and the
// file modification time are unavailable.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor with the given options.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// CaptureDate reads the capture timestamp from the file's EXIF metadata.
// It returns the first matching tag's value as a raw string in the form
// "YYYY:MM:DD HH:MM:SS" and true, or "" and false when no date tag exists.
// Read and parse failures are logged and treated as not-found.
func (e *Extractor) CaptureDate(path string) (string, bool) {
	data, err := os.ReadFile(path) //nolint:gosec // Caller-provided image path is intentional
	if err != nil {
		e.logger.Warn("failed to read file for metadata", "path", path, "error", err)
		return "", false
	}

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		// Most commonly exif.ErrNoExif: the file simply carries no metadata.
		e.logger.Debug("no EXIF data found", "path", path, "error", err)
		return "", false
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		e.logger.Warn("failed to parse EXIF data", "path", path, "error", err)
		return "", false
	}

	values := make(map[string]string, len(entries))
	for _, entry := range entries {
		if _, ok := values[entry.TagName]; !ok {
			values[entry.TagName] = entry.Formatted
		}
	}

	for _, tag := range dateTags {
		if v, ok := values[tag]; ok && v != "" {
			return v, true
		}
	}

	return "", false
}

// FallbackDate returns the file's modification date formatted as
// "YYYY-MM-DD". If the file cannot be stat'ed, the current date is used.
// This fallback is unconditional: the pipeline never fails a file solely
// because metadata is missing.
func (e *Extractor) FallbackDate(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return e.now().Format(displayDateLayout)
	}
	return info.ModTime().Format(displayDateLayout)
}

// Resolve returns the display-formatted watermark date for the file:
// the EXIF capture date when present, otherwise the fallback date.
func (e *Extractor) Resolve(path string) string {
	if raw, ok := e.CaptureDate(path); ok {
		return FormatDisplayDate(raw)
	}
	return e.FallbackDate(path)
}

// FormatDisplayDate converts a raw EXIF timestamp ("YYYY:MM:DD HH:MM:SS")
// or an already-normalized date into the display form "YYYY-MM-DD".
// This is pure string transformation, not calendar validation: the date
// portion before the first space is taken and ":" separators become "-".
// Malformed input is reformatted best-effort, never rejected.
func FormatDisplayDate(raw string) string {
	datePart, _, _ := strings.Cut(raw, " ")
	return strings.ReplaceAll(datePart, ":", "-")
}
