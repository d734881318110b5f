package sitemap

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/seolens/seolens/internal/fetch"
	"github.com/seolens/seolens/internal/model"
)

// conventionalPaths are tried, in order, when neither robots.txt nor
// site configuration provides a sitemap hint. The ordering matches how
// commonly each path occurs in the wild.
var conventionalPaths = []string{
	"/sitemap.xml",
	"/sitemap.xml.gz",
	"/sitemap_index.xml",
	"/sitemap_index.xml.gz",
	"/sitemap.txt",
}

// Engine walks a site's sitemap tree and flattens it into page entries.
type Engine struct {
	// client performs the sitemap fetches.
	client *fetch.Client

	// maxURLs caps the flattened node list.
	maxURLs int

	// maxChildren caps children expanded per sitemap index document.
	maxChildren int

	// maxDepth caps index recursion. Depth 0 is the root sitemap.
	maxDepth int

	// levelTimeout bounds each recursion level's fetches.
	levelTimeout time.Duration

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxURLs caps the flattened URL list.
func WithMaxURLs(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxURLs = n
		}
	}
}

// WithMaxChildren caps children expanded per sitemap index.
func WithMaxChildren(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxChildren = n
		}
	}
}

// WithMaxDepth caps sitemap index recursion depth.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithLevelTimeout sets the per-recursion-level timeout.
func WithLevelTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.levelTimeout = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine using the given fetch client.
func NewEngine(client *fetch.Client, opts ...Option) *Engine {
	e := &Engine{
		client:       client,
		maxURLs:      500,
		maxChildren:  50,
		maxDepth:     5,
		levelTimeout: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Discover resolves the site's sitemap and returns the flattened,
// deduplicated node list. Hints (typically from robots.txt) are tried
// before the conventional paths; the first URL that fetches with a 2xx
// and a non-empty body wins.
//
// Discover never returns an error: every failure mode degrades into the
// result's flags and issue list.
func (e *Engine) Discover(ctx context.Context, siteURL string, hints []string) *model.SitemapResult {
	result := &model.SitemapResult{}

	base, err := url.Parse(siteURL)
	if err != nil || base.Host == "" {
		result.Issues = append(result.Issues,
			model.NewIssue(model.IssueError, model.PriorityHigh, "sitemap", "invalid site URL: "+siteURL))
		return result
	}
	origin := base.Scheme + "://" + base.Host

	candidates := make([]string, 0, len(hints)+len(conventionalPaths))
	candidates = append(candidates, hints...)
	for _, path := range conventionalPaths {
		candidates = append(candidates, origin+path)
	}

	var payload []byte
	for _, candidate := range candidates {
		resp, err := e.fetchLevel(ctx, candidate)
		if err != nil || !resp.OK() || len(resp.Body) == 0 {
			e.logger.Debug("sitemap candidate failed",
				"url", candidate,
				"error", err,
			)
			continue
		}
		result.SitemapURL = candidate
		payload = resp.Body
		break
	}

	if result.SitemapURL == "" {
		result.Issues = append(result.Issues,
			model.NewIssue(model.IssueWarning, model.PriorityMedium, "sitemap", "no sitemap found at any known location"))
		return result
	}

	w := &walker{
		engine:  e,
		visited: map[string]bool{result.SitemapURL: true},
		seen:    make(map[string]bool),
	}
	w.consume(ctx, result.SitemapURL, payload, 0)

	if len(w.nodes) == 0 && !w.recognized {
		// The payload responded but was not a sitemap in any format we
		// understand. Report the site as having no usable sitemap.
		result.SitemapURL = ""
		result.Issues = append(result.Issues, w.issues...)
		result.Issues = append(result.Issues,
			model.NewIssue(model.IssueWarning, model.PriorityMedium, "sitemap", "sitemap payload is not XML or a plain-text URL list"))
		return result
	}

	result.Exists = true
	result.Accessible = true
	result.Issues = append(result.Issues, w.issues...)
	result.Nodes = w.nodes
	if len(result.Nodes) > e.maxURLs {
		result.Nodes = result.Nodes[:e.maxURLs]
		result.Truncated = true
		result.Issues = append(result.Issues,
			model.NewIssue(model.IssueInfo, model.PriorityLow, "sitemap",
				fmt.Sprintf("sitemap URL list truncated to %d entries", e.maxURLs)))
	}

	e.logger.Info("sitemap discovery complete",
		"sitemap", result.SitemapURL,
		"urls", len(result.Nodes),
		"truncated", result.Truncated,
	)

	return result
}

// fetchLevel fetches one sitemap document under the per-level timeout.
func (e *Engine) fetchLevel(ctx context.Context, sitemapURL string) (*fetch.Response, error) {
	levelCtx, cancel := context.WithTimeout(ctx, e.levelTimeout)
	defer cancel()
	return e.client.Get(levelCtx, sitemapURL)
}

// walker carries the recursion state of one discovery run.
type walker struct {
	engine *Engine

	// visited guards against sitemap index cycles. A sitemap URL is
	// entered at most once no matter how many indexes reference it.
	visited map[string]bool

	// seen deduplicates page URLs across all walked documents.
	seen map[string]bool

	// recognized is set once any walked payload parsed as a known
	// sitemap format, even one yielding zero URLs.
	recognized bool

	nodes  []model.SitemapNode
	issues []model.Issue
}

// consume classifies one already-fetched payload and either collects
// its page entries or recurses into its children.
func (w *walker) consume(ctx context.Context, docURL string, payload []byte, depth int) {
	payload = maybeGunzip(payload)

	switch classify(payload) {
	case kindIndex:
		w.recognized = true
		children, err := parseIndex(payload)
		if err != nil {
			w.addWarning("sitemap index " + docURL + " failed to parse: " + err.Error())
			return
		}
		w.expand(ctx, docURL, children, depth)

	case kindURLSet:
		w.recognized = true
		nodes, err := parseURLSet(payload)
		if err != nil {
			w.addWarning("sitemap " + docURL + " failed to parse: " + err.Error())
			return
		}
		w.collect(nodes)

	case kindPlainText:
		w.recognized = true
		w.collect(parsePlainText(payload))
		w.issues = append(w.issues,
			model.NewIssue(model.IssueInfo, model.PriorityLow, "sitemap", "sitemap "+docURL+" served as plain text"))

	default:
		// Unknown payloads at the root are handled by the caller; for
		// children they are just another skipped branch.
		if depth > 0 {
			w.addWarning("child sitemap " + docURL + " is not a recognized sitemap format")
		}
	}
}

// expand recurses into an index document's children, honoring the
// child cap, the depth cap, and the visited set.
func (w *walker) expand(ctx context.Context, parentURL string, children []string, depth int) {
	if depth >= w.engine.maxDepth {
		w.addWarning("sitemap index " + parentURL + " exceeds maximum recursion depth; children skipped")
		return
	}

	if len(children) > w.engine.maxChildren {
		w.addWarning(fmt.Sprintf("sitemap index %s lists %d children; only the first %d were expanded",
			parentURL, len(children), w.engine.maxChildren))
		children = children[:w.engine.maxChildren]
	}

	for _, child := range children {
		child = strings.TrimSpace(child)
		if child == "" || w.visited[child] {
			continue
		}
		w.visited[child] = true

		if len(w.nodes) >= w.engine.maxURLs {
			// Already past the cap; further children cannot contribute.
			return
		}

		resp, err := w.engine.fetchLevel(ctx, child)
		if err != nil || !resp.OK() {
			w.addWarning("child sitemap " + child + " could not be fetched")
			continue
		}

		w.consume(ctx, child, resp.Body, depth+1)
	}
}

// collect appends nodes, deduplicating by exact URL.
func (w *walker) collect(nodes []model.SitemapNode) {
	for _, node := range nodes {
		if w.seen[node.URL] {
			continue
		}
		w.seen[node.URL] = true
		w.nodes = append(w.nodes, node)
	}
}

func (w *walker) addWarning(message string) {
	w.issues = append(w.issues,
		model.NewIssue(model.IssueWarning, model.PriorityMedium, "sitemap", message))
}
