// Package sitemap discovers and walks a site's sitemap tree.
//
// # Architecture
//
// The Engine resolves a sitemap location (robots.txt hints first, then
// conventional paths), fetches it, and flattens the tree into a single
// deduplicated list of page entries. Sitemap index documents are
// expanded recursively with three independent guards: a visited-URL
// set, a depth counter, and a per-recursion-level timeout. The visited
// set is the primary cycle guard; a sitemap index that references
// itself, directly or through intermediaries, terminates without
// touching the timeout.
//
// # Failure tolerance
//
// Sitemaps in the wild are unreliable. The parser therefore degrades
// instead of failing: gzip payloads are detected by magic bytes rather
// than content type, corrupt gzip falls back to the raw bytes,
// malformed XML falls back to newline-delimited plain text, and a child
// sitemap that cannot be fetched or parsed becomes a warning issue
// while its siblings are still processed.
package sitemap
