// Package main provides the entry point for the photostamp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for photostamp.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photostamp",
		Short: "Add capture-date watermarks to photos",
		Long: `Photostamp adds a visible timestamp watermark to photographs.

The watermark text is the capture date read from the image's EXIF
metadata. Images without metadata fall back to the file's modification
time, so every photo gets a date. Batches never stop on a bad file:
failures are counted and reported at the end.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewStampCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
