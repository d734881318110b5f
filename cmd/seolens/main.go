// Package main provides the entry point for the seolens CLI.
//
// seolens is an SEO auditing tool for websites. It crawls a site,
// analyzes every page against a set of SEO heuristics, and produces a
// scored report.
//
// Usage:
//
//	seolens audit <url>
//	seolens history <url>
//
// See --help for all available options.
package main

// main is the entry point for seolens.
func main() {
	Execute()
}
