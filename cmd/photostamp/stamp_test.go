package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"photostamp/internal/batch"
	"photostamp/internal/config"
)

// newQuietLogger returns a logger that only reports errors, keeping test
// output readable.
func newQuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestNewStampCmd tests the stamp command creation.
func TestNewStampCmd(t *testing.T) {
	t.Parallel()

	cmd := NewStampCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "stamp [file-or-directory]" {
			t.Errorf("expected use 'stamp [file-or-directory]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		t.Parallel()
		if cmd.Args == nil {
			t.Error("expected Args validator")
		}
	})

	t.Run("has font-size flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("font-size")
		if flag == nil {
			t.Fatal("expected font-size flag")
		}
		if flag.Shorthand != "s" {
			t.Errorf("expected shorthand 's', got %q", flag.Shorthand)
		}
		if flag.DefValue != "24" {
			t.Errorf("expected default '24', got %q", flag.DefValue)
		}
	})

	t.Run("has color flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("color")
		if flag == nil {
			t.Fatal("expected color flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
		if flag.DefValue != "white" {
			t.Errorf("expected default 'white', got %q", flag.DefValue)
		}
	})

	t.Run("has position flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("position")
		if flag == nil {
			t.Fatal("expected position flag")
		}
		if flag.Shorthand != "p" {
			t.Errorf("expected shorthand 'p', got %q", flag.Shorthand)
		}
		if flag.DefValue != "bottom-right" {
			t.Errorf("expected default 'bottom-right', got %q", flag.DefValue)
		}
	})

	t.Run("has opacity flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("opacity")
		if flag == nil {
			t.Fatal("expected opacity flag")
		}
		if flag.Shorthand != "O" {
			t.Errorf("expected shorthand 'O', got %q", flag.Shorthand)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})

	t.Run("has markdown flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("markdown")
		if flag == nil {
			t.Fatal("expected markdown flag")
		}
		if flag.Shorthand != "m" {
			t.Errorf("expected shorthand 'm', got %q", flag.Shorthand)
		}
	})

	t.Run("has config flags", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("config") == nil {
			t.Error("expected config flag")
		}
		if cmd.Flags().Lookup("save-config") == nil {
			t.Error("expected save-config flag")
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewStampCmd()
		result := getVerboseFlag(cmd)
		if result {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		// Set verbose flag to true
		_ = root.PersistentFlags().Set("verbose", "true")

		// Get stamp subcommand
		stampCmd, _, err := root.Find([]string{"stamp"})
		if err != nil {
			t.Fatalf("failed to find stamp command: %v", err)
		}

		result := getVerboseFlag(stampCmd)
		if !result {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// TestBuildConfig tests configuration building from flags.
func TestBuildConfig(t *testing.T) {
	// Run in an empty directory so a developer's own .photostamp file
	// cannot leak into the tests.
	t.Chdir(t.TempDir())

	t.Run("builds config with default values", func(t *testing.T) {
		cmd := NewStampCmd()
		cfg, err := buildConfig(cmd, []string{"photo.jpg"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if cfg.Input != "photo.jpg" {
			t.Errorf("expected input 'photo.jpg', got %q", cfg.Input)
		}
		if cfg.FontSize != config.DefaultFontSize {
			t.Errorf("expected font size %d, got %d", config.DefaultFontSize, cfg.FontSize)
		}
		if cfg.Position != config.DefaultPosition {
			t.Errorf("expected position %q, got %q", config.DefaultPosition, cfg.Position)
		}
	})

	t.Run("builds config with custom appearance", func(t *testing.T) {
		cmd := NewStampCmd()
		_ = cmd.Flags().Set("font-size", "48")
		_ = cmd.Flags().Set("color", "255,0,0")
		_ = cmd.Flags().Set("position", "center")
		_ = cmd.Flags().Set("opacity", "0.5")
		cfg, err := buildConfig(cmd, []string{"photo.jpg"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.FontSize != 48 {
			t.Errorf("expected font size 48, got %d", cfg.FontSize)
		}
		if cfg.Color != "255,0,0" {
			t.Errorf("expected color '255,0,0', got %q", cfg.Color)
		}
		if cfg.Position != "center" {
			t.Errorf("expected position 'center', got %q", cfg.Position)
		}
		if cfg.Opacity != 0.5 {
			t.Errorf("expected opacity 0.5, got %f", cfg.Opacity)
		}
	})

	t.Run("builds config with JSON flag", func(t *testing.T) {
		cmd := NewStampCmd()
		_ = cmd.Flags().Set("json", "true")
		cfg, err := buildConfig(cmd, []string{"photo.jpg"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.JSONReport {
			t.Error("expected JSONReport to be true")
		}
	})

	t.Run("builds config with report file", func(t *testing.T) {
		cmd := NewStampCmd()
		_ = cmd.Flags().Set("report-file", "/tmp/report.json")
		cfg, err := buildConfig(cmd, []string{"photo.jpg"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.ReportFile != "/tmp/report.json" {
			t.Errorf("expected ReportFile '/tmp/report.json', got %q", cfg.ReportFile)
		}
	})

	t.Run("merges values from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "photostamp.yaml")

		content := []byte(`
font_size: 36
color: red
position: top-left
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewStampCmd()
		_ = cmd.Flags().Set("config", configPath)
		cfg, err := buildConfig(cmd, []string{"photo.jpg"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.FontSize != 36 {
			t.Errorf("expected font size 36 from file, got %d", cfg.FontSize)
		}
		if cfg.Color != "red" {
			t.Errorf("expected color 'red' from file, got %q", cfg.Color)
		}
		if cfg.Position != "top-left" {
			t.Errorf("expected position 'top-left' from file, got %q", cfg.Position)
		}
	})

	t.Run("explicit flags win over config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "photostamp.yaml")

		content := []byte(`
font_size: 36
color: red
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewStampCmd()
		_ = cmd.Flags().Set("config", configPath)
		_ = cmd.Flags().Set("font-size", "48")
		cfg, err := buildConfig(cmd, []string{"photo.jpg"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.FontSize != 48 {
			t.Errorf("expected flag font size 48 to win, got %d", cfg.FontSize)
		}
		if cfg.Color != "red" {
			t.Errorf("expected file color 'red' to survive, got %q", cfg.Color)
		}
	})

	t.Run("returns error for missing explicit config file", func(t *testing.T) {
		cmd := NewStampCmd()
		_ = cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := buildConfig(cmd, []string{"photo.jpg"})
		if err == nil {
			t.Fatal("expected error for missing config file")
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected 'not found' error, got %v", err)
		}
	})

	t.Run("returns error for invalid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.yaml")

		content := []byte(`{invalid yaml`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewStampCmd()
		_ = cmd.Flags().Set("config", configPath)
		_, err := buildConfig(cmd, []string{"photo.jpg"})
		if err == nil {
			t.Fatal("expected error for invalid config file")
		}
	})
}

// testStampSummary builds a summary with one success and one failure.
func testStampSummary() *batch.Summary {
	return &batch.Summary{
		Source:  "photos",
		Started: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC),
		Elapsed: 2 * time.Second,
		Results: []batch.Result{
			{
				Unit: batch.Unit{Input: "photos/a.jpg", Output: "out/a_watermark.jpg"},
				Text: "2024-03-09",
			},
			{
				Unit: batch.Unit{Input: "photos/bad.jpg", Output: "out/bad_watermark.jpg"},
				Err:  errors.New("decode failed"),
			},
		},
		SuccessCount: 1,
		TotalCount:   2,
	}
}

// TestOutputReport tests the report output functionality.
func TestOutputReport(t *testing.T) {
	t.Run("outputs JSON report to file", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "report.json")

		cfg := &config.Config{
			JSONReport: true,
			ReportFile: outputPath,
		}

		err := outputReport(cfg, testStampSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Verify JSON content
		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}

		var result map[string]interface{}
		if err := json.Unmarshal(content, &result); err != nil {
			t.Fatalf("failed to parse JSON: %v", err)
		}

		if result["succeeded"] != float64(1) {
			t.Errorf("expected succeeded 1, got %v", result["succeeded"])
		}
		if result["total"] != float64(2) {
			t.Errorf("expected total 2, got %v", result["total"])
		}
	})

	t.Run("outputs Markdown report to file", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "report.md")

		cfg := &config.Config{
			MarkdownReport: true,
			ReportFile:     outputPath,
		}

		err := outputReport(cfg, testStampSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if !strings.Contains(string(content), "# Photostamp Report") {
			t.Error("expected Markdown title in report file")
		}
	})

	t.Run("outputs text report to file", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "report.txt")

		cfg := &config.Config{
			ReportFile: outputPath,
		}

		err := outputReport(cfg, testStampSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if !strings.Contains(string(content), "1/2 succeeded") {
			t.Error("expected tally in text report")
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "subdir", "nested", "report.json")

		cfg := &config.Config{
			JSONReport: true,
			ReportFile: outputPath,
		}

		err := outputReport(cfg, testStampSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(outputPath); os.IsNotExist(err) {
			t.Error("expected output file to be created in nested directory")
		}
	})
}

// TestPersistConfig tests saving effective settings to a file.
func TestPersistConfig(t *testing.T) {
	t.Run("writes explicit config path", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "saved.yaml")

		cfg := config.NewConfig()
		cfg.ConfigFilePath = path
		cfg.FontSize = 32

		logger := newQuietLogger()
		if err := persistConfig(cfg, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read saved config: %v", err)
		}
		if !strings.Contains(string(content), "font_size: 32") {
			t.Errorf("expected saved font size, got %q", string(content))
		}
	})

	t.Run("defaults to .photostamp in current directory", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg := config.NewConfig()
		if err := persistConfig(cfg, newQuietLogger()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(config.DefaultConfigFile); os.IsNotExist(err) {
			t.Error("expected .photostamp to be created in current directory")
		}
	})
}

// TestRunStampMissingInput tests that runStamp fails for a missing path.
func TestRunStampMissingInput(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Input = filepath.Join(t.TempDir(), "does-not-exist")

	err := runStamp(cfg, newQuietLogger())
	if err == nil {
		t.Error("expected error for missing input")
	}
}

// TestRunStampEmptyDirectory tests that an empty directory is an error.
func TestRunStampEmptyDirectory(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Input = t.TempDir()

	err := runStamp(cfg, newQuietLogger())
	if err == nil {
		t.Error("expected error for directory without images")
	}
	if !strings.Contains(err.Error(), "no supported image files") {
		t.Errorf("expected 'no supported image files' error, got %v", err)
	}
}

// TestRunStampAllFailed tests the exit policy when nothing succeeds.
func TestRunStampAllFailed(t *testing.T) {
	tmpDir := t.TempDir()
	// Valid extension, invalid content: processing fails per-file but the
	// batch still completes, so failure must surface afterwards.
	if err := os.WriteFile(filepath.Join(tmpDir, "broken.jpg"), []byte("not an image"), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	cfg := config.NewConfig()
	cfg.Input = tmpDir
	cfg.OutputDir = filepath.Join(tmpDir, "out")
	cfg.ReportFile = filepath.Join(tmpDir, "report.txt")

	err := runStamp(cfg, newQuietLogger())
	if err == nil {
		t.Fatal("expected error when every file fails")
	}
	if !strings.Contains(err.Error(), "failed to process") {
		t.Errorf("expected processing failure error, got %v", err)
	}

	// The report must still have been written.
	if _, err := os.Stat(cfg.ReportFile); os.IsNotExist(err) {
		t.Error("expected report file despite failures")
	}
}
