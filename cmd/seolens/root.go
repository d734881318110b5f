// Package main provides the entry point for the seolens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for seolens.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seolens",
		Short: "SEO auditing tool for websites",
		Long: `seolens is an SEO auditing tool for websites.
It crawls a site starting from a root URL, analyzes every page against a set
of SEO heuristics (titles, meta tags, headings, content, images, links,
mobile readiness, security), and produces a scored report.

The crawl frontier is built from the site's sitemap and the links found on
the main page, so a single audit covers the pages that matter most.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewHistoryCmd())
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
