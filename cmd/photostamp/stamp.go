package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"photostamp/internal/batch"
	"photostamp/internal/config"
	"photostamp/internal/exifdate"
	"photostamp/internal/log"
	"photostamp/internal/report"
	"photostamp/internal/watermark"
)

// NewStampCmd creates the stamp command.
func NewStampCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stamp [file-or-directory]",
		Short: "Add a capture-date watermark to photos",
		Long: `Stamp renders each photo's capture date onto the image as a watermark.

The date comes from EXIF metadata (DateTimeOriginal, then
DateTimeDigitized, then DateTime). Photos without usable metadata fall
back to the file's modification time, so every photo gets stamped.

Given a directory, every supported image directly inside it is
processed in name order. Watermarked copies are written next to the
originals into a sibling "<directory>_watermark" folder unless --output
says otherwise; originals are never modified.

A photo that cannot be processed is reported and skipped; the batch
always runs to completion. The exit status is non-zero only when no
photo could be processed at all.

Examples:
  # Stamp a single photo
  photostamp stamp vacation.jpg

  # Stamp every photo in a directory
  photostamp stamp ~/Pictures/vacation

  # Red text in the top-left corner at half opacity
  photostamp stamp -c red -p top-left -O 0.5 photo.jpg

  # Custom font and explicit output directory
  photostamp stamp --font-path ./hack.ttf -o ./stamped ~/Pictures

  # JSON report written to a file
  photostamp stamp --json --report-file report.json ~/Pictures

Configuration file (.photostamp) example:
  font_size: 32
  color: "255,200,0"
  position: bottom-left
  opacity: 0.6`,
		Args: cobra.ExactArgs(1),
		RunE: runStampCmd,
	}

	// Watermark appearance flags
	cmd.Flags().IntP("font-size", "s", config.DefaultFontSize,
		"Watermark font size in points")
	cmd.Flags().StringP("color", "c", config.DefaultColor,
		"Watermark color: a name (white, red, ...) or an R,G,B triple like 200,100,50")
	cmd.Flags().StringP("position", "p", config.DefaultPosition,
		"Watermark position: top-left, top-right, bottom-left, bottom-right, or center")
	cmd.Flags().Float64P("opacity", "O", config.DefaultOpacity,
		"Watermark opacity between 0 (invisible) and 1 (opaque)")
	cmd.Flags().String("font-path", "",
		"TrueType/OpenType font file (default: system sans-serif, then built-in)")

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Output directory (default: sibling \"<directory>_watermark\" next to the input)")

	// Configuration file
	cmd.Flags().String("config", "",
		"Configuration file path (default: .photostamp in current or home directory)")
	cmd.Flags().Bool("save-config", false,
		"Save the effective watermark settings to the configuration file")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().String("report-file", "",
		"Write the batch report to the specified file instead of stdout")

	return cmd
}

// runStampCmd executes the stamp command.
func runStampCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.New(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	if saveConfig, _ := cmd.Flags().GetBool("save-config"); saveConfig {
		if err := persistConfig(cfg, logger); err != nil {
			return err
		}
	}

	return runStamp(cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags, merged with an
// optional configuration file. Precedence is flags > file > defaults:
// the file is applied first, then every flag the user explicitly set is
// re-applied on top.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Input = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load watermark settings from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if err := applyChangedFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("report-file")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyChangedFlags re-applies flags the user set explicitly, so they win
// over values loaded from the configuration file. Flag defaults equal the
// config defaults, so untouched flags must not clobber file values.
func applyChangedFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error

	if cmd.Flags().Changed("font-size") {
		cfg.FontSize, err = cmd.Flags().GetInt("font-size")
		if err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("color") {
		cfg.Color, err = cmd.Flags().GetString("color")
		if err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("position") {
		cfg.Position, err = cmd.Flags().GetString("position")
		if err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("opacity") {
		cfg.Opacity, err = cmd.Flags().GetFloat64("opacity")
		if err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("font-path") {
		cfg.FontPath, err = cmd.Flags().GetString("font-path")
		if err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("output") {
		cfg.OutputDir, err = cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
	}

	return nil
}

// persistConfig saves the effective watermark settings for future runs.
// An explicit --config path is honored; otherwise .photostamp in the
// current directory is written.
func persistConfig(cfg *config.Config, logger *slog.Logger) error {
	path := cfg.ConfigFilePath
	if path == "" {
		path = config.DefaultConfigFile
	}

	if err := config.SaveConfigFile(path, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Info("configuration saved", "path", path)
	fmt.Printf("Saved configuration to %s\n", path)
	return nil
}

// runStamp executes the batch.
func runStamp(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting",
		"input", cfg.Input,
		"position", cfg.Position,
		"fontSize", cfg.FontSize,
		"opacity", cfg.Opacity,
	)

	processor := watermark.NewProcessor(watermark.Options{
		FontSize: cfg.FontSize,
		Color:    cfg.Color,
		Anchor:   watermark.ParseAnchor(cfg.Position),
		Opacity:  cfg.Opacity,
		FontPath: cfg.FontPath,
	}, watermark.WithProcessorLogger(log.ForComponent(logger, "watermark")))

	extractor := exifdate.NewExtractor(
		exifdate.WithLogger(log.ForComponent(logger, "exifdate")),
	)

	runnerOpts := []batch.Option{
		batch.WithLogger(log.ForComponent(logger, "batch")),
		batch.WithMaxFileSize(cfg.MaxFileSize),
	}
	if cfg.OutputDir != "" {
		runnerOpts = append(runnerOpts, batch.WithOutputDir(cfg.OutputDir))
	}
	runner := batch.NewRunner(processor, extractor, runnerOpts...)

	summary, err := runner.Run(cfg.Input)
	if err != nil {
		if errors.Is(err, batch.ErrNoInputs) {
			return fmt.Errorf("no supported image files found in %s", cfg.Input)
		}
		return err
	}

	if err := outputReport(cfg, summary); err != nil {
		logger.Error("report failed", "error", err)
		return err
	}

	// A batch where nothing succeeded is a failed run even though the
	// per-file errors were absorbed along the way.
	if summary.TotalCount > 0 && summary.SuccessCount == 0 {
		return fmt.Errorf("all %d file(s) failed to process", summary.TotalCount)
	}

	return nil
}

// outputReport outputs the batch report in the requested format.
func outputReport(cfg *config.Config, summary *batch.Summary) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output
	if cfg.JSONReport {
		writer := report.NewJSONWriter(output, report.WithPrettyPrint())
		_, err := writer.Write(summary)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(summary)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(summary)
	return err
}
