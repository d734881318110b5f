package model

import "time"

// SitemapNode is a single page entry extracted from a sitemap document.
type SitemapNode struct {
	// URL is the page location from the <loc> element (or a plain-text
	// sitemap line).
	URL string `json:"url"`

	// LastModified is the <lastmod> timestamp. It is only populated when
	// the raw value validated as ISO-8601; otherwise it stays zero.
	LastModified time.Time `json:"last_modified,omitzero"`

	// IsCanonical is true when the URL carries no query string, which is
	// the usual shape of a canonical page location in a sitemap.
	IsCanonical bool `json:"is_canonical"`

	// IsLowValue is true when the URL path matches a pattern associated
	// with low SEO value (login, cart, search results, pagination).
	// The flag is advisory: low-value URLs are still crawled.
	IsLowValue bool `json:"is_low_value"`
}

// SitemapResult is the outcome of walking a site's sitemap tree.
//
// Design decision: Exists and Accessible are separate flags because a
// sitemap URL can respond (exists) while serving a payload that is not a
// sitemap in any recognized format (not accessible as a sitemap).
type SitemapResult struct {
	// Exists is true if any candidate sitemap URL returned a 2xx response.
	Exists bool `json:"exists"`

	// Accessible is true if the payload parsed as a sitemap index, a
	// urlset, or a plain-text URL list.
	Accessible bool `json:"accessible"`

	// SitemapURL is the URL that was actually used, empty if none worked.
	SitemapURL string `json:"sitemap_url,omitempty"`

	// Nodes is the flattened, deduplicated list of page entries.
	Nodes []SitemapNode `json:"nodes,omitempty"`

	// Truncated is true when the node list was cut at the configured
	// maximum.
	Truncated bool `json:"truncated"`

	// Issues collects non-fatal problems hit during discovery, such as a
	// child sitemap that failed to fetch.
	Issues []Issue `json:"issues,omitempty"`
}

// TargetSource records which discovery mechanism contributed a crawl target.
type TargetSource int

const (
	// SourceSitemap marks targets taken from the sitemap tree.
	SourceSitemap TargetSource = iota

	// SourceDiscovered marks targets found as hyperlinks on the main page.
	SourceDiscovered
)

// String returns a human-readable representation of the target source.
func (s TargetSource) String() string {
	switch s {
	case SourceSitemap:
		return "sitemap"
	case SourceDiscovered:
		return "discovered"
	default:
		return "unknown"
	}
}

// CrawlTarget is one entry of the crawl frontier. Targets are created
// during the frontier merge, consumed once by the batch controller, and
// never reused.
type CrawlTarget struct {
	// URL is the absolute URL to analyze, in its original form.
	URL string `json:"url"`

	// Source records which discovery mechanism contributed the target.
	Source TargetSource `json:"-"`

	// SourceText is the serialized form of Source.
	SourceText string `json:"source"`

	// NormalizedKey is the canonical form used for deduplication:
	// case-folded scheme and host, default ports stripped, trailing
	// slash collapsed, query and fragment preserved.
	NormalizedKey string `json:"-"`
}

// NewCrawlTarget creates a CrawlTarget with the serialized source populated.
func NewCrawlTarget(url string, source TargetSource, normalizedKey string) CrawlTarget {
	return CrawlTarget{
		URL:           url,
		Source:        source,
		SourceText:    source.String(),
		NormalizedKey: normalizedKey,
	}
}
