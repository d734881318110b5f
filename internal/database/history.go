package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/seolens/seolens/internal/model"
)

// HistoryDB provides SQLite-based storage for audit run summaries.
// It manages connection pooling and provides methods for saving and
// listing runs.
//
// Design decision: We use a single database file shared by all audited
// sites rather than one file per site. This makes cross-site listings a
// plain query and keeps backup/restore a single-file operation.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "seolens.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; runs are written one at a time
	// anyway, so a single connection is enough.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Run summaries store one row per completed audit
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		site TEXT NOT NULL,
		date INTEGER NOT NULL,
		score REAL,
		pages INTEGER,
		successful INTEGER,
		failed INTEGER,
		errors INTEGER,
		warnings INTEGER,
		passes INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_runs_site ON runs(site);
	CREATE INDEX IF NOT EXISTS idx_runs_date ON runs(date);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// Run is one stored audit summary.
type Run struct {
	// ID is the unique identifier assigned when the run was saved.
	ID string

	// Site is the root URL the audit started from.
	Site string

	// Date is when the audit was performed.
	Date time.Time

	// Score is the site-wide average score.
	Score float64

	// Pages, Successful, and Failed are the page counts of the run.
	Pages      int
	Successful int
	Failed     int

	// Errors, Warnings, and Passes bucket the findings of the run.
	Errors   int
	Warnings int
	Passes   int
}

// SaveRun stores the summary of a completed audit and returns the
// assigned run ID. Dates are stored as Unix seconds so ordering is a
// plain integer comparison.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.SiteAnalysis) (string, error) {
	if report == nil {
		return "", fmt.Errorf("cannot save nil report")
	}

	id := uuid.NewString()

	query := `
	INSERT INTO runs (id, site, date, score, pages, successful, failed, errors, warnings, passes)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := hdb.db.ExecContext(ctx, query,
		id,
		report.Site,
		report.DateAudited.Unix(),
		report.Summary.AvgScore,
		report.Summary.TotalPages,
		report.Summary.SuccessfulPages,
		report.Summary.FailedPages,
		report.Summary.ErrorCount,
		report.Summary.WarningCount,
		report.Summary.SuccessCount,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	return id, nil
}

// ListRuns retrieves all stored runs for a site, most recent first.
func (hdb *HistoryDB) ListRuns(ctx context.Context, site string) ([]Run, error) {
	query := `
	SELECT id, site, date, score, pages, successful, failed, errors, warnings, passes
	FROM runs
	WHERE site = ?
	ORDER BY date DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, site)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, run)
	}

	return results, rows.Err()
}

// LatestRun retrieves the most recent run for a site.
// Returns nil without error when no run is stored.
func (hdb *HistoryDB) LatestRun(ctx context.Context, site string) (*Run, error) {
	query := `
	SELECT id, site, date, score, pages, successful, failed, errors, warnings, passes
	FROM runs
	WHERE site = ?
	ORDER BY date DESC
	LIMIT 1
	`

	var run Run
	var date int64
	err := hdb.db.QueryRowContext(ctx, query, site).Scan(
		&run.ID,
		&run.Site,
		&date,
		&run.Score,
		&run.Pages,
		&run.Successful,
		&run.Failed,
		&run.Errors,
		&run.Warnings,
		&run.Passes,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	run.Date = time.Unix(date, 0).UTC()
	return &run, nil
}

// ListSites returns every site with at least one stored run.
func (hdb *HistoryDB) ListSites(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT site FROM runs
	ORDER BY site
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []string
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// scanRun reads one row from a runs query.
func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var date int64

	err := rows.Scan(
		&run.ID,
		&run.Site,
		&date,
		&run.Score,
		&run.Pages,
		&run.Successful,
		&run.Failed,
		&run.Errors,
		&run.Warnings,
		&run.Passes,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Date = time.Unix(date, 0).UTC()
	return run, nil
}
