package batch

import "errors"

// Batch processing errors.
//
// Design decision: We use package-level sentinel errors so callers can
// use errors.Is() to distinguish "nothing to do" from per-unit failures,
// which are reported through Result values instead of errors.
var (
	// ErrNoInputs is returned when the input root contains no supported
	// image files.
	ErrNoInputs = errors.New("no supported image files found")

	// ErrUnsupportedFormat marks a unit whose file extension is not a
	// supported raster format.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrFileTooLarge marks a unit whose file exceeds the size limit.
	ErrFileTooLarge = errors.New("file exceeds size limit")
)
