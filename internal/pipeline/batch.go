package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seolens/seolens/internal/model"
)

// BatchProcessor runs the orchestrator over a crawl frontier in
// fixed-size sequential batches.
//
// Design decision: We use sequential batches with intra-batch
// concurrency rather than one flat worker pool because it gives the
// target site predictable load: at most BatchSize requests in flight,
// and a full drain between batches. Batch N+1 does not start until
// every page of batch N has settled, retries included.
type BatchProcessor struct {
	// orchestrator performs the per-page fetch and analysis.
	orchestrator *Orchestrator

	// batchSize is the number of pages per batch, which is also the
	// intra-batch concurrency.
	batchSize int

	// retryAttempts is how many times one page is attempted before it
	// is reported as failed. The retry wraps the whole fetch-and-analyze
	// unit.
	retryAttempts int

	// retryDelay is the base inter-attempt delay; attempt N waits
	// N * retryDelay before attempt N+1.
	retryDelay time.Duration

	// logger for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchSize sets the batch size. Default is 5.
func WithBatchSize(n int) BatchOption {
	return func(bp *BatchProcessor) {
		if n > 0 {
			bp.batchSize = n
		}
	}
}

// WithRetryAttempts sets the per-page attempt budget. Default is 2.
func WithRetryAttempts(n int) BatchOption {
	return func(bp *BatchProcessor) {
		if n > 0 {
			bp.retryAttempts = n
		}
	}
}

// WithRetryDelay sets the base delay between attempts.
func WithRetryDelay(d time.Duration) BatchOption {
	return func(bp *BatchProcessor) {
		if d >= 0 {
			bp.retryDelay = d
		}
	}
}

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(bp *BatchProcessor) {
		bp.logger = logger
	}
}

// NewBatchProcessor creates a BatchProcessor over the given orchestrator.
func NewBatchProcessor(orchestrator *Orchestrator, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		orchestrator:  orchestrator,
		batchSize:     5,
		retryAttempts: 2,
		retryDelay:    time.Second,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// Process analyzes every frontier target and returns one PageAnalysis
// per target, in frontier order. Page failures never fail the batch;
// the only error returned is context cancellation, and even then the
// partial results are returned alongside it.
func (bp *BatchProcessor) Process(ctx context.Context, targets []model.CrawlTarget) ([]*model.PageAnalysis, error) {
	bp.logger.Info("starting page analysis",
		"total_pages", len(targets),
		"batch_size", bp.batchSize,
	)
	startTime := time.Now()

	results := make([]*model.PageAnalysis, len(targets))

	for start := 0; start < len(targets); start += bp.batchSize {
		if err := ctx.Err(); err != nil {
			// Mark everything not yet attempted so the report stays one
			// entry per frontier target.
			for i := start; i < len(targets); i++ {
				results[i] = model.NewFailedPage(targets[i].URL, model.ErrKindNetwork, "audit cancelled")
			}
			return results, err
		}

		end := min(start+bp.batchSize, len(targets))
		bp.logger.Debug("starting batch",
			"batch_start", start,
			"batch_size", end-start,
		)

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = bp.analyzeWithRetry(gctx, targets[i])
				return nil
			})
		}
		// Goroutines record failures in their results rather than
		// returning errors, so Wait only synchronizes the batch drain.
		_ = g.Wait()
	}

	bp.logger.Info("page analysis complete",
		"total_pages", len(targets),
		"elapsed", time.Since(startTime),
	)

	return results, ctx.Err()
}

// analyzeWithRetry runs the fetch-and-analyze unit for one target with
// a bounded retry. Only network-kind failures are retried: a bad status
// or an oversized body will fail identically on every attempt.
func (bp *BatchProcessor) analyzeWithRetry(ctx context.Context, target model.CrawlTarget) *model.PageAnalysis {
	var page *model.PageAnalysis

	for attempt := 1; ; attempt++ {
		page, _ = bp.orchestrator.AnalyzePage(ctx, target.URL, false)
		if page.Status == model.PageSuccess {
			return page
		}
		if page.Error == nil || page.Error.Kind != model.ErrKindNetwork {
			return page
		}
		if attempt >= bp.retryAttempts {
			bp.logger.Warn("page failed after retries",
				"url", target.URL,
				"attempts", attempt,
				"error", page.Error.Message,
			)
			return page
		}

		bp.logger.Debug("retrying page",
			"url", target.URL,
			"attempt", attempt,
			"error", page.Error.Message,
		)

		select {
		case <-ctx.Done():
			return page
		case <-time.After(time.Duration(attempt) * bp.retryDelay):
		}
	}
}
