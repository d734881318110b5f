// Package analyzer holds the per-page SEO heuristics and the registry
// that composes them.
//
// Each analyzer inspects one fetched page through a shared read-only
// Context and returns a scored outcome with its findings. Analyzers are
// pure with respect to the context: they never mutate it, so the
// orchestrator can run the whole registry concurrently over one page.
//
// Design decision: The registry is a closed, constructor-composed set
// rather than a plugin mechanism. The analyzers and their score weights
// are fixed at build time; callers inject a registry instance instead of
// registering into global state.
package analyzer
