// Package database provides SQLite-based storage for seolens audit history.
//
// This package implements the HistoryDB, which stores one summary row per
// completed audit run. It intentionally stores summaries only: page bodies
// and per-page findings are never persisted, so the database stays small
// even for sites that are audited daily.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
