// Package log provides logging helpers built on top of the standard
// slog package.
//
// The audit crawler logs every request it makes, and site-specific
// configuration can attach cookies and authorization headers to those
// requests. RedactHandler keeps such values out of log output, and also
// truncates oversized attribute values (raw HTML snippets, long URL
// lists) so verbose logs stay readable.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("fetched page", "url", u, "cookie", c) // cookie is masked
package log
