package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seolens/seolens/internal/analyzer"
	"github.com/seolens/seolens/internal/config"
	"github.com/seolens/seolens/internal/database"
	"github.com/seolens/seolens/internal/log"
	"github.com/seolens/seolens/internal/model"
	"github.com/seolens/seolens/internal/pipeline"
	"github.com/seolens/seolens/internal/report"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <url>",
		Short: "Audit a website for SEO issues",
		Long: `Audit crawls a website and analyzes its pages for SEO issues.

Starting from the root URL, it discovers pages through the site's sitemap
and the links on the main page, then analyzes each page for:
- Title and meta tag quality (length, duplicates, noindex, canonical)
- Heading structure and content depth
- Image alt coverage and link hygiene
- Mobile readiness and transport security

Examples:
  # Audit a site with default settings
  seolens audit https://example.com

  # Crawl up to 50 pages, 10 at a time
  seolens audit --max-urls 50 --batch-size 10 https://example.com

  # Output a JSON report to a file
  seolens audit --json -o report.json https://example.com

  # Save the run summary for later comparison with 'seolens history'
  seolens audit --db-dir ~/.local/share/seolens https://example.com

Configuration file (.seolens) example:
  sites:
    example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
      maxUrls: 50
      sitemapHint: "https://example.com/sitemap_index.xml"`,
		Args: cobra.ExactArgs(1),
		RunE: runAuditCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("max-urls", "u", config.DefaultMaxURLs,
		"Maximum number of pages to crawl")
	cmd.Flags().IntP("batch-size", "b", config.DefaultBatchSize,
		"Number of pages analyzed concurrently")
	cmd.Flags().DurationP("timeout", "t", config.DefaultPageTimeout,
		"Timeout for fetching a single page")
	cmd.Flags().Duration("analysis-timeout", config.DefaultAnalysisTimeout,
		"Total per-page budget (fetch plus analyzers)")
	cmd.Flags().Int("retry", config.DefaultRetryAttempts,
		"Attempts per page before reporting it as failed")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .seolens in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().StringP("db-dir", "d", "",
		"Directory for the audit history database (history is not saved when unset)")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAudit(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.MaxURLs, err = cmd.Flags().GetInt("max-urls")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch-size")
	if err != nil {
		return nil, err
	}

	cfg.PageTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.AnalysisTimeout, err = cmd.Flags().GetDuration("analysis-timeout")
	if err != nil {
		return nil, err
	}

	cfg.RetryAttempts, err = cmd.Flags().GetInt("retry")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// History is opt-in: only persisted when --db-dir is given.
	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = cfg.DBDir != ""

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional argument (root URL)
	cfg.Target = args[0]

	return cfg, nil
}

// runAudit executes the audit.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting audit",
		"target", cfg.Target,
		"maxURLs", cfg.MaxURLs,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	auditor := pipeline.NewAuditor(cfg, analyzer.DefaultRegistry(),
		pipeline.WithAuditorLogger(logger))

	fmt.Printf("Auditing %s...\n", cfg.Target)
	startTime := time.Now()

	auditReport, err := auditor.Run(ctx, cfg.Target)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidRootURL) {
			return err
		}
		// A cancelled audit still carries partial results worth showing.
		if auditReport == nil {
			return err
		}
		logger.Warn("audit ended early", "error", err)
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Audit completed in %s\n\n", elapsed.Round(time.Millisecond))

	if outputErr := outputReport(cfg, auditReport); outputErr != nil {
		logger.Error("report failed", "target", cfg.Target, "error", outputErr)
		return outputErr
	}

	if saveErr := saveRun(ctx, db, auditReport, logger); saveErr != nil {
		logger.Error("failed to save run", "target", cfg.Target, "error", saveErr)
	}

	return err
}

// outputReport outputs the audit report in the requested format.
func outputReport(cfg *config.Config, auditReport *model.SiteAnalysis) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output,
			report.WithPrettyPrint(),
			report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(auditReport)
	return err
}

// saveRun saves the run summary to the database if enabled.
// If db is nil, this function is a no-op.
func saveRun(ctx context.Context, db *database.HistoryDB, auditReport *model.SiteAnalysis, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	// The audit context may already be cancelled (Ctrl-C mid-crawl);
	// saving the partial summary should still succeed.
	id, err := db.SaveRun(context.WithoutCancel(ctx), auditReport)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to database", "target", auditReport.Site, "id", id)
	return nil
}
