// Package model defines the data structures shared across the audit
// pipeline: issues, sitemap nodes, crawl targets, per-page analysis
// results, and the site-wide report.
//
// All types in this package are plain data. They are created by one
// component, passed along the pipeline, and never mutated after the
// producing component hands them off. This keeps concurrent page
// analyses free of shared mutable state.
package model
