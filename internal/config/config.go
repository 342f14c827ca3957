package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These match the defaults of the interactive tool this CLI grew out of,
// so existing users get identical output without flags.
const (
	// DefaultFontSize is the watermark font size in points.
	// 24pt is readable on typical camera resolutions without dominating
	// the frame.
	DefaultFontSize = 24

	// DefaultColor is the watermark color specification.
	// White is visible on the dark bottom edges most photos have.
	DefaultColor = "white"

	// DefaultPosition is the watermark anchor.
	// Bottom-right matches where consumer cameras historically printed
	// date stamps.
	DefaultPosition = "bottom-right"

	// DefaultOpacity is the watermark opacity in [0, 1].
	// 0.8 keeps the date legible while letting the photo show through.
	DefaultOpacity = 0.8

	// AppName is the application name used for XDG directory paths.
	AppName = "photostamp"

	// DefaultMaxFileSize is the largest input file the batch driver will
	// accept. Files beyond 100MB are almost never photographs and decoding
	// them would exhaust memory on small machines.
	DefaultMaxFileSize = 100 * 1024 * 1024
)

// Config holds all configuration options for photostamp.
// This struct is populated from CLI flags (optionally merged with a
// configuration file) and passed through the application via dependency
// injection rather than global state.
//
// Design decision: Config is the mutable CLI-facing aggregate; the
// watermark pipeline never sees it. The stamp command converts it once
// into an immutable watermark.Options value, so appearance settings cannot
// drift mid-batch.
type Config struct {
	// Input is the image file or directory to process.
	Input string

	// FontSize is the watermark font size in points. Must be positive.
	FontSize int

	// Color is the watermark color specification: a palette name such as
	// "white" or a comma-separated RGB triple such as "200,100,50".
	// Unrecognized values resolve to white at render time rather than
	// failing validation; a cosmetic misconfiguration must never abort
	// a batch.
	Color string

	// Position is the watermark anchor name. Unrecognized values fall
	// back to top-left at render time.
	Position string

	// Opacity is the watermark opacity in [0, 1].
	Opacity float64

	// OutputDir is the directory for watermarked output files.
	// When empty, a sibling directory named "<parent>_watermark" is used.
	OutputDir string

	// FontPath is an optional TrueType/OpenType font file. When empty or
	// unloadable the compositor falls back to a system sans-serif and
	// finally to a built-in font.
	FontPath string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON batch-report output instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown batch-report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the batch report.
	// When set, the report is written there instead of stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .photostamp in the current
	// directory, the home directory, and the XDG config directory.
	ConfigFilePath string

	// MaxFileSize is the largest input file size in bytes accepted during
	// directory discovery. Zero means DefaultMaxFileSize.
	MaxFileSize int64
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero (font size, opacity).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		FontSize:    DefaultFontSize,
		Color:       DefaultColor,
		Position:    DefaultPosition,
		Opacity:     DefaultOpacity,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// XDGConfigDir returns the XDG config directory for photostamp.
// On Linux: ~/.config/photostamp
// On macOS: ~/Library/Application Support/photostamp
// On Windows: %APPDATA%\photostamp
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Only structurally invalid values are rejected here. Color and position
// strings are deliberately not validated: the resolver maps bad colors to
// white and bad anchors to top-left so that a cosmetic misconfiguration
// never aborts processing.
func (c *Config) Validate() error {
	if c.Input == "" {
		return ErrNoInput
	}

	if c.FontSize <= 0 {
		return ErrInvalidFontSize
	}

	if c.Opacity < 0 || c.Opacity > 1 {
		return ErrInvalidOpacity
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxFileSize < 0 {
		return ErrInvalidMaxFileSize
	}

	return nil
}
