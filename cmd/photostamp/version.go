package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at release time via
// -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = ""
	commit  = ""
	date    = ""
)

// versionInfo resolves the version triple in one pass: ldflags values win,
// gaps are filled from the build info the toolchain embeds in module
// builds, and whatever remains unknown is labeled as such.
func versionInfo() (ver, rev, when string) {
	ver, rev, when = version, commit, date

	if info, ok := debug.ReadBuildInfo(); ok {
		if ver == "" {
			ver = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if rev == "" {
					rev = s.Value
				}
			case "vcs.time":
				if when == "" {
					when = s.Value
				}
			}
		}
	}

	if ver == "" {
		ver = "(devel)"
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if rev == "" {
		rev = "unknown"
	}
	if when == "" {
		when = "unknown"
	}
	return ver, rev, when
}

// getVersion returns the bare version string for cobra's --version flag.
func getVersion() string {
	ver, _, _ := versionInfo()
	return ver
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the photostamp version together with the commit and build date it was produced from.`,
		Run: func(cmd *cobra.Command, _ []string) {
			ver, rev, when := versionInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "photostamp %s (commit %s, built %s)\n", ver, rev, when)
		},
	}
}
