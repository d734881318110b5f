package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seolens/seolens/internal/config"
	"github.com/seolens/seolens/internal/database"
)

// NewHistoryCmd creates the history command.
// This command lists audit runs stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <url>",
		Short: "List stored audit runs for a site",
		Long: `History lists the audit runs stored for a site, most recent first.

Each row shows the run's date, score, page counts, and how the score moved
against the previous run. Runs are only stored when 'seolens audit' is
invoked with --db-dir.

Examples:
  # List runs for a site
  seolens history https://example.com/

  # List every site in the database
  seolens history --list-sites

  # Use a non-default database location
  seolens history --db-dir /var/lib/seolens https://example.com/

  # Output history in JSON format
  seolens history --json https://example.com/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("db-dir", "d", "",
		"Directory of the audit history database (default: XDG data directory)")
	cmd.Flags().BoolP("list-sites", "L", false,
		"List all sites in the database")
	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listSites, err := cmd.Flags().GetBool("list-sites")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database, so a missing URL
	// fails with a usage error rather than a database error.
	var site string
	if !listSites {
		if len(args) == 0 {
			return errors.New("site URL is required (use --list-sites to see stored sites)")
		}
		site = args[0]
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// History listing never creates a database: a missing file means no
	// run was ever saved, which deserves a clear message, not an empty
	// freshly-created table.
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no audit history found (run 'seolens audit --db-dir %s <url>' first): %w", dbDir, err)
	}
	defer db.Close()

	ctx := context.Background()

	if listSites {
		return listStoredSites(ctx, db)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	return listRunHistory(ctx, db, site, jsonOutput)
}

// listStoredSites lists all sites that have runs in the database.
func listStoredSites(ctx context.Context, db *database.HistoryDB) error {
	sites, err := db.ListSites(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}

	if len(sites) == 0 {
		fmt.Println("No audited sites found in the database.")
		fmt.Println("\nUse 'seolens audit --db-dir <dir> <url>' to audit a site and store the run.")
		return nil
	}

	fmt.Printf("Audited sites (%d):\n\n", len(sites))
	for _, site := range sites {
		fmt.Printf("  • %s\n", site)
	}
	fmt.Println("\nUse 'seolens history <url>' to see the runs for a site.")

	return nil
}

// listRunHistory lists all stored runs for a site.
func listRunHistory(ctx context.Context, db *database.HistoryDB, site string, jsonOutput bool) error {
	runs, err := db.ListRuns(ctx, site)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No audit history found for %s\n", site)
		fmt.Println("\nUse 'seolens audit --db-dir <dir>' to audit this site and store the run.")
		return nil
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	fmt.Printf("Audit history for %s (%d runs):\n\n", site, len(runs))
	fmt.Printf("  %-20s  %7s  %7s  %-12s  %s\n", "Date", "Score", "Change", "Pages", "Issues")
	fmt.Println("  " + strings.Repeat("-", 66))

	// Runs are newest first; each row's delta compares against the next
	// (older) run.
	for i, run := range runs {
		change := "-"
		if i+1 < len(runs) {
			change = formatScoreDelta(run.Score - runs[i+1].Score)
		}
		fmt.Printf("  %-20s  %7.1f  %7s  %-12s  %s\n",
			run.Date.Format("2006-01-02 15:04:05"),
			run.Score,
			change,
			fmt.Sprintf("%d ok, %d bad", run.Successful, run.Failed),
			formatIssueCounts(run),
		)
	}

	return nil
}

// formatScoreDelta formats a score change with its sign.
func formatScoreDelta(delta float64) string {
	if delta > 0 {
		return fmt.Sprintf("+%.1f", delta)
	}
	return fmt.Sprintf("%.1f", delta)
}

// formatIssueCounts formats a run's issue buckets into a short string.
func formatIssueCounts(run database.Run) string {
	var parts []string
	if run.Errors > 0 {
		parts = append(parts, fmt.Sprintf("E:%d", run.Errors))
	}
	if run.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("W:%d", run.Warnings))
	}
	if run.Passes > 0 {
		parts = append(parts, fmt.Sprintf("P:%d", run.Passes))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
