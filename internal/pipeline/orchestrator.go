package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/seolens/seolens/internal/analyzer"
	"github.com/seolens/seolens/internal/fetch"
	"github.com/seolens/seolens/internal/model"
)

// Orchestrator analyzes one page: fetch, validate, fan out over the
// analyzer registry, and fold the outcomes into a PageAnalysis.
//
// Design decision: Analyzers run concurrently over one shared read-only
// context, each isolated behind recover. A misbehaving analyzer can
// only degrade its own outcome; the page and the other analyzers are
// unaffected. This keeps the failure ceiling at the single-analyzer
// level during analysis and the single-page level during the crawl.
type Orchestrator struct {
	// client performs the page fetch. Its own timeout applies to the
	// fetch; analysisTimeout bounds the whole fetch-and-analyze unit.
	client *fetch.Client

	// registry supplies the analyzers and their score weights.
	registry *analyzer.Registry

	// analysisTimeout is the total per-page budget. It must exceed the
	// fetch client's timeout so the analyzers keep some budget even
	// after a slow fetch.
	analysisTimeout time.Duration

	// logger for structured logging.
	logger *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithAnalysisTimeout sets the total per-page budget.
func WithAnalysisTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d > 0 {
			o.analysisTimeout = d
		}
	}
}

// WithOrchestratorLogger sets a custom logger.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an Orchestrator over the given fetch client
// and analyzer registry.
func NewOrchestrator(client *fetch.Client, registry *analyzer.Registry, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		client:          client,
		registry:        registry,
		analysisTimeout: 15 * time.Second,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}

// AnalyzePage fetches and analyzes one page. It never returns an error:
// every failure mode becomes a Failed PageAnalysis with a typed error
// descriptor. The second return value is the decoded page markup, ""
// for failed pages; the main-page step keeps it for link discovery.
func (o *Orchestrator) AnalyzePage(ctx context.Context, pageURL string, isMainPage bool) (*model.PageAnalysis, string) {
	ctx, cancel := context.WithTimeout(ctx, o.analysisTimeout)
	defer cancel()

	resp, err := o.client.Get(ctx, pageURL)
	if err != nil {
		o.logger.Debug("page fetch failed", "url", pageURL, "error", err)
		return model.NewFailedPage(pageURL, fetch.Kind(err), err.Error()), ""
	}

	if !resp.OK() {
		page := model.NewFailedPage(pageURL, model.ErrKindStatus,
			fmt.Sprintf("server returned status %d", resp.StatusCode))
		page.StatusCode = resp.StatusCode
		page.LoadTimeMillis = resp.LoadTime.Milliseconds()
		return page, ""
	}

	if len(resp.Body) == 0 {
		page := model.NewFailedPage(pageURL, model.ErrKindEmptyBody, "response body is empty")
		page.StatusCode = resp.StatusCode
		page.LoadTimeMillis = resp.LoadTime.Milliseconds()
		return page, ""
	}

	rawHTML := resp.DecodedHTML()
	pageCtx, err := analyzer.NewContext(pageURL, rawHTML, resp.StatusCode, resp.Headers, resp.LoadTime, isMainPage)
	if err != nil {
		return model.NewFailedPage(pageURL, model.ErrKindValidation, err.Error()), ""
	}

	outcomes := o.runAnalyzers(ctx, pageCtx)

	perAnalyzer := make(map[string]*model.AnalyzerOutcome, len(outcomes))
	var issues []model.Issue
	for _, outcome := range outcomes {
		perAnalyzer[outcome.Analyzer] = outcome
		issues = append(issues, outcome.Issues...)
	}

	return &model.PageAnalysis{
		URL:            pageURL,
		Status:         model.PageSuccess,
		StatusText:     model.PageSuccess.String(),
		PerAnalyzer:    perAnalyzer,
		OverallScore:   o.overallScore(outcomes),
		Issues:         issues,
		LoadTimeMillis: resp.LoadTime.Milliseconds(),
		StatusCode:     resp.StatusCode,
	}, rawHTML
}

// runAnalyzers fans out over the registry concurrently and returns the
// outcomes in registration order.
func (o *Orchestrator) runAnalyzers(ctx context.Context, pageCtx *analyzer.Context) []*model.AnalyzerOutcome {
	analyzers := o.registry.Analyzers()
	outcomes := make([]*model.AnalyzerOutcome, len(analyzers))

	var wg sync.WaitGroup
	for i, a := range analyzers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = o.runOne(ctx, a, pageCtx)
		}()
	}
	wg.Wait()

	return outcomes
}

// runOne executes a single analyzer with panic isolation. A panicking
// or erroring analyzer yields a degraded outcome; it never takes the
// page down with it.
func (o *Orchestrator) runOne(ctx context.Context, a analyzer.Analyzer, pageCtx *analyzer.Context) (outcome *model.AnalyzerOutcome) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Warn("analyzer panicked",
				"analyzer", a.Name(),
				"url", pageCtx.URL,
				"panic", r,
			)
			outcome = model.DegradedOutcome(a.Name(), fmt.Sprintf("panic: %v", r))
		}
	}()

	result, err := a.Analyze(ctx, pageCtx)
	if err != nil {
		o.logger.Warn("analyzer failed",
			"analyzer", a.Name(),
			"url", pageCtx.URL,
			"error", err,
		)
		return model.DegradedOutcome(a.Name(), err.Error())
	}
	if result == nil {
		return model.DegradedOutcome(a.Name(), "analyzer returned no outcome")
	}
	return result
}

// overallScore folds the outcomes into the page score: a weighted
// average over the valid finite sub-scores. When every valid analyzer
// has zero weight the plain arithmetic mean is used; when no outcome is
// valid the score is 0.
func (o *Orchestrator) overallScore(outcomes []*model.AnalyzerOutcome) float64 {
	var weightedSum, weightTotal, plainSum float64
	var valid int

	for _, outcome := range outcomes {
		if outcome.Degraded || math.IsNaN(outcome.Score) || math.IsInf(outcome.Score, 0) {
			continue
		}
		weight := o.registry.Weight(outcome.Analyzer)
		weightedSum += outcome.Score * weight
		weightTotal += weight
		plainSum += outcome.Score
		valid++
	}

	switch {
	case weightTotal > 0:
		return weightedSum / weightTotal
	case valid > 0:
		return plainSum / float64(valid)
	default:
		return 0
	}
}
