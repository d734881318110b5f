// Package fetch is the HTTP collaborator used by every other crawl
// component. It performs bounded GET requests with per-request timeouts
// and classifies failures into a small typed taxonomy so callers can
// decide what is retryable.
//
// Design decision: All network access funnels through this package so
// body size limits, header injection from site configuration, and
// charset handling live in exactly one place.
package fetch
