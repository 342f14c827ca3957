package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".photostamp"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .photostamp configuration file.
// Field names mirror the persisted key-value structure of earlier versions
// of the tool, so saved configurations remain readable.
type File struct {
	// FontSize is the watermark font size in points.
	FontSize int `yaml:"font_size,omitempty"`

	// Color is the watermark color specification.
	Color string `yaml:"color,omitempty"`

	// Position is the watermark anchor name.
	Position string `yaml:"position,omitempty"`

	// Opacity is the watermark opacity in [0, 1].
	// A pointer distinguishes "not set" from an explicit 0.
	Opacity *float64 `yaml:"opacity,omitempty"`

	// FontPath is an optional font file path.
	FontPath string `yaml:"font_path,omitempty"`

	// OutputDir is an optional output directory.
	OutputDir string `yaml:"output_dir,omitempty"`
}

// LoadConfigFile loads watermark settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// SaveConfigFile persists the current watermark settings to a YAML file.
// Parent directories are created as needed.
func SaveConfigFile(path string, cfg *Config) error {
	opacity := cfg.Opacity
	cf := File{
		FontSize:  cfg.FontSize,
		Color:     cfg.Color,
		Position:  cfg.Position,
		Opacity:   &opacity,
		FontPath:  cfg.FontPath,
		OutputDir: cfg.OutputDir,
	}

	data, err := yaml.Marshal(&cf)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0600)
}

// Apply merges file values into the config. Only fields present in the
// file override the config; absent fields keep their current values.
// CLI flags that were set explicitly are re-applied by the caller after
// this merge, so precedence is flags > file > defaults.
func (cf *File) Apply(cfg *Config) {
	if cf.FontSize > 0 {
		cfg.FontSize = cf.FontSize
	}
	if cf.Color != "" {
		cfg.Color = cf.Color
	}
	if cf.Position != "" {
		cfg.Position = cf.Position
	}
	if cf.Opacity != nil {
		cfg.Opacity = *cf.Opacity
	}
	if cf.FontPath != "" {
		cfg.FontPath = cf.FontPath
	}
	if cf.OutputDir != "" {
		cfg.OutputDir = cf.OutputDir
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .photostamp in the current directory
//  3. Look for .photostamp in the user's home directory
//  4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}
