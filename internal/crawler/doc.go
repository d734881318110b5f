// Package crawler turns a fetched main page into a crawl frontier.
//
// # Components
//
//   - LinkExtractor: walks the main page's DOM and collects internal
//     hyperlinks, resolved against the page URL and deduplicated
//   - Normalize: the canonical URL form shared by link dedup and the
//     frontier merge
//   - BuildFrontier: merges sitemap entries and discovered links into
//     the capped, source-tagged crawl target list
//
// Design decision: We use golang.org/x/net/html for parsing rather
// than regex because it correctly handles the malformed HTML common on
// the web and provides a proper DOM-like structure.
package crawler
