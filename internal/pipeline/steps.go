package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/seolens/seolens/internal/crawler"
	"github.com/seolens/seolens/internal/fetch"
	"github.com/seolens/seolens/internal/model"
	"github.com/seolens/seolens/internal/robots"
	"github.com/seolens/seolens/internal/sitemap"
)

// RobotsStep fetches robots.txt and records sitemap hints plus the
// block-all signal. A missing or unreadable robots.txt is normal and
// never fails the step.
type RobotsStep struct {
	client *fetch.Client
	logger *slog.Logger
}

// NewRobotsStep creates the robots.txt step.
func NewRobotsStep(client *fetch.Client, logger *slog.Logger) *RobotsStep {
	return &RobotsStep{client: client, logger: logger}
}

// Name returns the step name.
func (s *RobotsStep) Name() string {
	return "robots"
}

// Do executes the robots.txt step.
func (s *RobotsStep) Do(ctx context.Context, report *model.SiteAnalysis) error {
	report.Robots = robots.Discover(ctx, s.client, report.Site)

	if report.Robots.BlocksAll {
		// Surfaced, not enforced: the operator asked for this audit, so
		// the crawl proceeds anyway.
		report.AddIssue(model.NewIssue(model.IssueWarning, model.PriorityHigh, "robots",
			"robots.txt disallows all crawling; the site has opted out of search indexing"))
	}

	s.logger.Debug("robots.txt processed",
		"found", report.Robots.Found,
		"sitemap_hints", len(report.Robots.SitemapHints),
		"blocks_all", report.Robots.BlocksAll,
	)
	return nil
}

// MainPageStep analyzes the root URL itself and keeps its markup for
// link discovery.
type MainPageStep struct {
	orchestrator *Orchestrator
}

// NewMainPageStep creates the main page analysis step.
func NewMainPageStep(orchestrator *Orchestrator) *MainPageStep {
	return &MainPageStep{orchestrator: orchestrator}
}

// Name returns the step name.
func (s *MainPageStep) Name() string {
	return "main_page"
}

// Do executes the main page analysis step.
func (s *MainPageStep) Do(ctx context.Context, report *model.SiteAnalysis) error {
	page, rawHTML := s.orchestrator.AnalyzePage(ctx, report.Site, true)
	report.MainPage = page
	report.MainPageHTML = rawHTML

	if page.Status == model.PageFailed && page.Error != nil {
		report.AddIssue(model.NewIssue(model.IssueError, model.PriorityHigh, "crawl",
			"main page could not be analyzed: "+page.Error.Message))
	}
	return nil
}

// DiscoverStep runs sitemap discovery and main-page link discovery
// concurrently. Both are best-effort: each failure mode degrades into
// issues on the report.
type DiscoverStep struct {
	engine *sitemap.Engine

	// extraHints are sitemap URLs from site configuration, tried before
	// the robots.txt hints.
	extraHints []string

	// maxLinks caps main-page link extraction.
	maxLinks int

	logger *slog.Logger
}

// NewDiscoverStep creates the discovery step.
func NewDiscoverStep(engine *sitemap.Engine, extraHints []string, maxLinks int, logger *slog.Logger) *DiscoverStep {
	return &DiscoverStep{
		engine:     engine,
		extraHints: extraHints,
		maxLinks:   maxLinks,
		logger:     logger,
	}
}

// Name returns the step name.
func (s *DiscoverStep) Name() string {
	return "discover"
}

// Do executes the discovery step. The two discovery sources write to
// disjoint report fields, so they can run in parallel without locking.
func (s *DiscoverStep) Do(ctx context.Context, report *model.SiteAnalysis) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hints := append(append([]string{}, s.extraHints...), report.Robots.SitemapHints...)
		report.Sitemap = s.engine.Discover(gctx, report.Site, hints)
		return nil
	})

	g.Go(func() error {
		if report.MainPageHTML == "" {
			s.logger.Debug("skipping link discovery, main page has no markup")
			return nil
		}
		extractor, err := crawler.NewLinkExtractor(report.Site, s.maxLinks)
		if err != nil {
			report.AddIssue(model.NewIssue(model.IssueWarning, model.PriorityMedium, "crawl",
				"link discovery skipped: "+err.Error()))
			return nil
		}
		report.DiscoveredLinks = extractor.Extract(report.MainPageHTML)
		return nil
	})

	_ = g.Wait() // both branches record failures instead of returning them

	sitemapNodes := 0
	if report.Sitemap != nil {
		sitemapNodes = len(report.Sitemap.Nodes)
	}
	s.logger.Info("discovery complete",
		"sitemap_urls", sitemapNodes,
		"discovered_links", len(report.DiscoveredLinks),
	)
	return nil
}

// FrontierStep merges the discovery results into the crawl target list.
type FrontierStep struct {
	maxURLs int
	logger  *slog.Logger
}

// NewFrontierStep creates the frontier building step.
func NewFrontierStep(maxURLs int, logger *slog.Logger) *FrontierStep {
	return &FrontierStep{maxURLs: maxURLs, logger: logger}
}

// Name returns the step name.
func (s *FrontierStep) Name() string {
	return "frontier"
}

// Do executes the frontier building step.
func (s *FrontierStep) Do(_ context.Context, report *model.SiteAnalysis) error {
	var nodes []model.SitemapNode
	if report.Sitemap != nil {
		nodes = report.Sitemap.Nodes
	}

	report.Frontier = crawler.BuildFrontier(nodes, report.DiscoveredLinks, s.maxURLs, crawler.Normalize(report.Site))

	s.logger.Info("frontier built",
		"targets", len(report.Frontier),
		"cap", s.maxURLs,
	)
	return nil
}

// AnalyzePagesStep runs the batch processor over the frontier.
type AnalyzePagesStep struct {
	batch *BatchProcessor
}

// NewAnalyzePagesStep creates the page analysis step.
func NewAnalyzePagesStep(batch *BatchProcessor) *AnalyzePagesStep {
	return &AnalyzePagesStep{batch: batch}
}

// Name returns the step name.
func (s *AnalyzePagesStep) Name() string {
	return "analyze_pages"
}

// Do executes the page analysis step. The only error it can return is
// context cancellation; partial results stay on the report either way.
func (s *AnalyzePagesStep) Do(ctx context.Context, report *model.SiteAnalysis) error {
	pages, err := s.batch.Process(ctx, report.Frontier)
	report.Pages = pages
	return err
}

// AggregateStep folds the page results into the site summary.
type AggregateStep struct{}

// NewAggregateStep creates the summary step.
func NewAggregateStep() *AggregateStep {
	return &AggregateStep{}
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return "aggregate"
}

// Do executes the summary step. The main page counts as one of the
// analyzed pages.
func (s *AggregateStep) Do(_ context.Context, report *model.SiteAnalysis) error {
	all := make([]*model.PageAnalysis, 0, len(report.Pages)+1)
	if report.MainPage != nil {
		all = append(all, report.MainPage)
	}
	all = append(all, report.Pages...)

	report.Summary = Aggregate(all)
	return nil
}
