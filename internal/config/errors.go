package config

import "errors"

// Configuration validation errors returned by Config.Validate().
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). Callers can use
// errors.Is() for programmatic handling while the messages remain
// human-readable.
var (
	// ErrNoTarget is returned when no root URL was provided.
	ErrNoTarget = errors.New("no target specified: provide a site URL to audit")

	// ErrInvalidMaxURLs is returned when the frontier cap is not positive.
	ErrInvalidMaxURLs = errors.New("invalid max urls: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrPageTimeoutTooLarge is returned when the page fetch timeout is
	// not strictly below the per-page analysis budget. The fetch must
	// leave slack for the analyzers.
	ErrPageTimeoutTooLarge = errors.New("invalid page timeout: must be less than analysis timeout")

	// ErrInvalidRetryAttempts is returned when retry attempts is not positive.
	ErrInvalidRetryAttempts = errors.New("invalid retry attempts: must be positive")

	// ErrInvalidRetryDelay is returned when the retry delay is negative.
	ErrInvalidRetryDelay = errors.New("invalid retry delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the body size ceiling is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
