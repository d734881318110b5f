package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Release builds inject these via -ldflags "-X main.version=...".
// Developer builds leave them empty and resolveBuildInfo fills the
// gaps from the metadata the Go toolchain embeds in the binary.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// resolveBuildInfo merges the ldflags values with the embedded module
// build info. ldflags win; anything still unknown after both sources
// gets a placeholder rather than an empty string.
func resolveBuildInfo() buildInfo {
	info := buildInfo{Version: version, Commit: commit, Date: date}

	if embedded, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" {
			info.Version = embedded.Main.Version
		}
		for _, setting := range embedded.Settings {
			switch {
			case setting.Key == "vcs.revision" && info.Commit == "":
				info.Commit = shortRevision(setting.Value)
			case setting.Key == "vcs.time" && info.Date == "":
				info.Date = setting.Value
			}
		}
	}

	if info.Version == "" {
		info.Version = "(devel)"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

// shortRevision truncates a VCS revision to the familiar 7-character
// form used in commit listings.
func shortRevision(revision string) string {
	if len(revision) > 7 {
		return revision[:7]
	}
	return revision
}

// getVersion returns the binary version shown by the root command's
// --version flag and stamped into JSON reports.
func getVersion() string {
	return resolveBuildInfo().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of seolens.`,
		Run: func(cmd *cobra.Command, _ []string) {
			info := resolveBuildInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "seolens version %s\n", info.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", info.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", info.Date)
		},
	}
}
