package model

import "time"

// Summary is the site-wide aggregation over all page results.
type Summary struct {
	// TotalPages counts every attempted URL, including failures.
	TotalPages int `json:"total_pages"`

	// SuccessfulPages counts pages with Status == PageSuccess.
	SuccessfulPages int `json:"successful_pages"`

	// FailedPages counts pages with Status == PageFailed.
	FailedPages int `json:"failed_pages"`

	// AvgScore is the arithmetic mean of OverallScore over successful
	// pages only. Zero when no page succeeded.
	AvgScore float64 `json:"avg_score"`

	// ErrorCount, WarningCount, and SuccessCount bucket the issues of
	// all successful pages by type.
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	SuccessCount int `json:"success_count"`
}

// RobotsInfo records what was learned from robots.txt.
type RobotsInfo struct {
	// Found is true if robots.txt returned a 2xx response.
	Found bool `json:"found"`

	// SitemapHints are the Sitemap: directives, in file order.
	SitemapHints []string `json:"sitemap_hints,omitempty"`

	// BlocksAll is true when the file disallows everything for all
	// user agents. The crawl still proceeds; the flag is surfaced as a
	// warning because it usually means the site opted out of indexing.
	BlocksAll bool `json:"blocks_all"`
}

// SiteAnalysis is the terminal artifact of a crawl. It is assembled by
// the pipeline steps and returned to the caller; the crawl entrypoint
// always produces one, even when every page failed.
type SiteAnalysis struct {
	// Site is the root URL the audit started from.
	Site string `json:"site"`

	// DateAudited is when the audit was performed.
	DateAudited time.Time `json:"date_audited"`

	// MainPage is the analysis of the root URL itself.
	MainPage *PageAnalysis `json:"main_page,omitempty"`

	// Pages holds one entry per frontier URL, in frontier order.
	Pages []*PageAnalysis `json:"pages"`

	// Summary is the site-wide aggregation.
	Summary Summary `json:"summary"`

	// Robots records the robots.txt findings.
	Robots RobotsInfo `json:"robots"`

	// Sitemap records the sitemap discovery outcome.
	Sitemap *SitemapResult `json:"sitemap,omitempty"`

	// Issues collects crawl-level findings that belong to no single page
	// (robots.txt blocks all, frontier truncated).
	Issues []Issue `json:"issues,omitempty"`

	// === Intermediate crawl state ===
	// These fields are populated and consumed by pipeline steps and are
	// not part of the serialized report.

	// DiscoveredLinks are the internal links extracted from the main page.
	DiscoveredLinks []string `json:"-"`

	// Frontier is the merged, deduplicated crawl target list.
	Frontier []CrawlTarget `json:"-"`

	// MainPageHTML is the raw markup of the main page, kept so link
	// discovery does not refetch it.
	MainPageHTML string `json:"-"`

	// StepsRun records the pipeline steps executed, in order.
	StepsRun []string `json:"-"`
}

// NewSiteAnalysis creates an empty report for the given root URL.
func NewSiteAnalysis(site string) *SiteAnalysis {
	return &SiteAnalysis{
		Site:        site,
		DateAudited: time.Now(),
		Pages:       make([]*PageAnalysis, 0),
	}
}

// AddIssue appends a crawl-level issue to the report.
func (s *SiteAnalysis) AddIssue(issue Issue) {
	s.Issues = append(s.Issues, issue)
}
