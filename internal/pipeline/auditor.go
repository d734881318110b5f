package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/seolens/seolens/internal/analyzer"
	"github.com/seolens/seolens/internal/config"
	"github.com/seolens/seolens/internal/fetch"
	"github.com/seolens/seolens/internal/model"
	"github.com/seolens/seolens/internal/sitemap"
)

// ErrInvalidRootURL is returned when the audit target is not an
// absolute http or https URL.
var ErrInvalidRootURL = errors.New("site URL must be absolute http or https")

// Auditor is the audit entrypoint. It wires the fetch client, analyzer
// registry, orchestrator, batch processor, and pipeline steps from one
// Config.
//
// Design decision: All collaborators are constructed here and passed
// down explicitly. There is no package-level state, so two audits with
// different configurations can run side by side in one process.
type Auditor struct {
	cfg      *config.Config
	registry *analyzer.Registry
	logger   *slog.Logger

	// client overrides the constructed fetch client. Used by tests.
	client *fetch.Client
}

// AuditorOption configures an Auditor.
type AuditorOption func(*Auditor)

// WithAuditorLogger sets a custom logger.
func WithAuditorLogger(logger *slog.Logger) AuditorOption {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// WithFetchClient injects a pre-built fetch client, bypassing the
// config-derived one. Used by tests to point at an httptest server.
func WithFetchClient(client *fetch.Client) AuditorOption {
	return func(a *Auditor) {
		a.client = client
	}
}

// NewAuditor creates an Auditor from the given configuration and
// analyzer registry.
func NewAuditor(cfg *config.Config, registry *analyzer.Registry, opts ...AuditorOption) *Auditor {
	a := &Auditor{
		cfg:      cfg,
		registry: registry,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// Run audits a site and returns the assembled report.
//
// Run always returns a report for anything it managed to analyze. The
// error return is reserved for the two conditions that make a report
// meaningless: an invalid root URL and a cancelled context. Everything
// else, a dead server included, produces a report describing the
// failure.
func (a *Auditor) Run(ctx context.Context, rootURL string) (*model.SiteAnalysis, error) {
	parsed, err := url.Parse(rootURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRootURL, rootURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRootURL, rootURL)
	}

	siteCfg := a.siteConfig(parsed.Host)
	maxURLs := a.cfg.MaxURLs
	if siteCfg.MaxURLs > 0 {
		maxURLs = siteCfg.MaxURLs
	}

	client := a.client
	if client == nil {
		client = fetch.NewClient(
			fetch.WithTimeout(a.cfg.PageTimeout),
			fetch.WithMaxBodySize(a.cfg.MaxBodySize),
			fetch.WithUserAgent(a.cfg.UserAgent),
			fetch.WithHeaders(siteCfg.Headers),
			fetch.WithCookie(siteCfg.Cookie),
		)
	}

	orchestrator := NewOrchestrator(client, a.registry,
		WithAnalysisTimeout(a.cfg.AnalysisTimeout),
		WithOrchestratorLogger(a.logger),
	)
	batch := NewBatchProcessor(orchestrator,
		WithBatchSize(a.cfg.BatchSize),
		WithRetryAttempts(a.cfg.RetryAttempts),
		WithRetryDelay(a.cfg.RetryDelay),
		WithBatchLogger(a.logger),
	)
	engine := sitemap.NewEngine(client,
		sitemap.WithMaxURLs(a.cfg.SitemapMaxURLs),
		sitemap.WithMaxChildren(a.cfg.SitemapMaxChildren),
		sitemap.WithMaxDepth(a.cfg.SitemapMaxDepth),
		sitemap.WithLevelTimeout(a.cfg.SitemapTimeout),
		sitemap.WithLogger(a.logger),
	)

	var extraHints []string
	if siteCfg.SitemapHint != "" {
		extraHints = []string{siteCfg.SitemapHint}
	}

	p := New(
		WithLogger(a.logger),
		WithContinueOnError(true),
	)
	p.AddSteps(
		NewRobotsStep(client, a.logger),
		NewMainPageStep(orchestrator),
		NewDiscoverStep(engine, extraHints, maxURLs, a.logger),
		NewFrontierStep(maxURLs, a.logger),
		NewAnalyzePagesStep(batch),
		NewAggregateStep(),
	)

	report := model.NewSiteAnalysis(rootURL)
	if err := p.Execute(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

// siteConfig resolves per-site overrides for a host, empty when no
// configuration file was loaded.
func (a *Auditor) siteConfig(host string) config.SiteConfig {
	if a.cfg.SiteConfigs == nil {
		return config.SiteConfig{}
	}
	return a.cfg.SiteConfigs.GetSiteConfig(host)
}
