package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These mirror the behavior of typical
// SEO crawlers: small bounded frontiers, short per-page timeouts, and
// conservative body size limits.
const (
	// DefaultMaxURLs caps the crawl frontier. Sitemap entries fill the
	// cap first; links discovered on the main page take whatever room
	// remains. Larger audits can raise this via --max-urls.
	DefaultMaxURLs = 20

	// DefaultBatchSize is the number of pages analyzed concurrently.
	// Batches run sequentially, so this is also the cap on concurrent
	// outbound page fetches.
	DefaultBatchSize = 5

	// DefaultPageTimeout is the timeout for fetching a single page.
	// It must stay below DefaultAnalysisTimeout so the analyzers have
	// budget left after a slow fetch.
	DefaultPageTimeout = 10 * time.Second

	// DefaultAnalysisTimeout is the total budget for one page: fetch
	// plus every analyzer.
	DefaultAnalysisTimeout = 15 * time.Second

	// DefaultRetryAttempts is how many times a page is fetched and
	// analyzed before being reported as failed. The retry re-runs the
	// whole fetch-and-analyze unit, not just the fetch.
	DefaultRetryAttempts = 2

	// DefaultRetryDelay is the base delay between retry attempts.
	// The delay grows linearly: attempt N waits N * DefaultRetryDelay.
	DefaultRetryDelay = 1 * time.Second

	// DefaultMaxBodySize limits the response body size to read.
	// 5MB is sufficient for any sane HTML page while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultSitemapTimeout is the per-recursion-level timeout when
	// walking a sitemap index tree. Each level of children gets a fresh
	// budget of this size.
	DefaultSitemapTimeout = 10 * time.Second

	// DefaultSitemapMaxChildren caps the number of child sitemaps
	// expanded from a single sitemap index document.
	DefaultSitemapMaxChildren = 50

	// DefaultSitemapMaxDepth caps sitemap index recursion. Combined
	// with the visited set, this terminates self-referencing sitemap
	// trees without depending on timeouts.
	DefaultSitemapMaxDepth = 5

	// DefaultSitemapMaxURLs caps the flattened sitemap URL list before
	// the frontier merge applies its own cap.
	DefaultSitemapMaxURLs = 500

	// DefaultUserAgent identifies the crawler in HTTP requests.
	// A descriptive User-Agent lets site operators recognize audit
	// traffic in their logs.
	DefaultUserAgent = "seolens/1.0 (+https://github.com/seolens/seolens)"

	// AppName is the application name used for XDG directory paths.
	AppName = "seolens"
)

// Config holds all options for a site audit. It is populated from CLI
// flags, validated once, and then passed by reference through the
// pipeline.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g. CrawlConfig, SitemapConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without much benefit.
type Config struct {
	// MaxURLs is the crawl frontier cap. Sitemap entries are added
	// first and consume the cap before discovered links are appended.
	MaxURLs int

	// BatchSize is the number of pages analyzed concurrently within a
	// batch. Batch N+1 does not start until batch N has fully settled.
	BatchSize int

	// PageTimeout is the timeout for a single page fetch. It must be
	// strictly less than AnalysisTimeout.
	PageTimeout time.Duration

	// AnalysisTimeout is the total per-page budget (fetch + analyzers).
	AnalysisTimeout time.Duration

	// RetryAttempts is the number of times a failing page analysis is
	// attempted before it is reported as failed.
	RetryAttempts int

	// RetryDelay is the base inter-retry delay; attempt N waits
	// N * RetryDelay.
	RetryDelay time.Duration

	// MaxBodySize is the maximum response body size in bytes. Larger
	// responses fail the page with an oversize error.
	MaxBodySize int64

	// SitemapTimeout is the per-recursion-level timeout for sitemap
	// discovery.
	SitemapTimeout time.Duration

	// SitemapMaxChildren caps children expanded per sitemap index.
	SitemapMaxChildren int

	// SitemapMaxDepth caps sitemap index recursion depth.
	SitemapMaxDepth int

	// SitemapMaxURLs caps the flattened sitemap URL list.
	SitemapMaxURLs int

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport selects JSON report output. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown report output. Mutually exclusive
	// with JSONReport.
	MarkdownReport bool

	// ReportFile is the output path for the report. Empty means stdout.
	ReportFile string

	// ConfigFilePath is an explicit path to the .seolens site file.
	// Empty means search the usual locations.
	ConfigFilePath string

	// SiteConfigs holds per-site overrides loaded from the config file.
	SiteConfigs *File

	// DBDir is the directory for the crawl history database. Empty
	// means history is not persisted; this is the default, matching the
	// no-cache posture of the crawler.
	DBDir string

	// SaveToDB is set when DBDir is configured.
	SaveToDB bool

	// Target is the root URL to audit.
	Target string
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero
// values because most defaults are non-zero. The constructor also
// documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		MaxURLs:            DefaultMaxURLs,
		BatchSize:          DefaultBatchSize,
		PageTimeout:        DefaultPageTimeout,
		AnalysisTimeout:    DefaultAnalysisTimeout,
		RetryAttempts:      DefaultRetryAttempts,
		RetryDelay:         DefaultRetryDelay,
		MaxBodySize:        DefaultMaxBodySize,
		SitemapTimeout:     DefaultSitemapTimeout,
		SitemapMaxChildren: DefaultSitemapMaxChildren,
		SitemapMaxDepth:    DefaultSitemapMaxDepth,
		SitemapMaxURLs:     DefaultSitemapMaxURLs,
		UserAgent:          DefaultUserAgent,
	}
}

// XDGDataDir returns the XDG data directory for seolens.
// On Linux: ~/.local/share/seolens
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for seolens.
// On Linux: ~/.config/seolens
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns a sentinel error
// describing the first problem found.
//
// Design decision: We validate once after CLI parsing rather than at
// each point of use, so the crawl fails fast with a clear message.
func (c *Config) Validate() error {
	if c.Target == "" {
		return ErrNoTarget
	}
	if c.MaxURLs <= 0 {
		return ErrInvalidMaxURLs
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.PageTimeout <= 0 || c.AnalysisTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.PageTimeout >= c.AnalysisTimeout {
		return ErrPageTimeoutTooLarge
	}
	if c.RetryAttempts <= 0 {
		return ErrInvalidRetryAttempts
	}
	if c.RetryDelay < 0 {
		return ErrInvalidRetryDelay
	}
	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
