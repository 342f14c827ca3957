package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no input file or directory is specified.
	ErrNoInput = errors.New("no input specified: provide an image file or directory")

	// ErrInvalidFontSize is returned when the font size is not positive.
	// A zero or negative font size cannot produce visible glyphs.
	ErrInvalidFontSize = errors.New("invalid font size: must be positive")

	// ErrInvalidOpacity is returned when the opacity is outside [0, 1].
	ErrInvalidOpacity = errors.New("invalid opacity: must be between 0 and 1")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one report format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxFileSize is returned when the max file size is negative.
	// Use 0 to apply the default limit.
	ErrInvalidMaxFileSize = errors.New("invalid max file size: must be non-negative")
)
