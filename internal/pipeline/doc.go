// Package pipeline drives a site audit from root URL to finished report.
//
// The audit is expressed as a sequence of steps over a shared
// SiteAnalysis: robots.txt, main page analysis, sitemap and link
// discovery, frontier building, batched page analysis, and the final
// summary fold. Each step records its failures in the report rather
// than aborting; nothing above single-page granularity stops the audit.
//
// Design decision: We use a step pipeline instead of direct function
// calls because:
//  1. It allows easy addition/removal of steps without modifying core logic
//  2. It provides consistent error handling and logging across steps
//  3. It supports cancellation via context for long-running crawls
//
// Page analysis itself is two layers: the Orchestrator fetches one page
// and fans out over the analyzer registry, and the BatchProcessor runs
// the orchestrator over the frontier in fixed-size sequential batches
// with bounded retries.
package pipeline
