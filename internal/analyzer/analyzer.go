package analyzer

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/seolens/seolens/internal/model"
)

// Analyzer is one SEO heuristic run against a fetched page.
//
// Analyze must treat the page context as read-only and must be safe to
// call concurrently with other analyzers over the same context. A nil
// outcome with a non-nil error marks the analyzer as failed for this
// page; the orchestrator substitutes a degraded outcome.
type Analyzer interface {
	// Name identifies the analyzer in outcomes, issues, and weights.
	Name() string

	// Analyze inspects the page and returns a scored outcome.
	Analyze(ctx context.Context, page *Context) (*model.AnalyzerOutcome, error)
}

// Context is the read-only view of one fetched page shared by every
// analyzer. The markup is parsed once; analyzers walk the shared node
// tree without modifying it.
type Context struct {
	// URL is the page's URL as fetched.
	URL string

	// ParsedURL is URL in parsed form, for host and scheme checks.
	ParsedURL *url.URL

	// HTML is the decoded page markup.
	HTML string

	// Root is the parsed document tree of HTML.
	Root *html.Node

	// StatusCode is the HTTP status of the fetch.
	StatusCode int

	// Headers are the response headers of the fetch.
	Headers http.Header

	// LoadTime is how long the fetch took.
	LoadTime time.Duration

	// IsMainPage is true for the root URL of the audit. Some checks
	// only apply there.
	IsMainPage bool
}

// NewContext parses the markup and builds the shared analyzer context.
func NewContext(pageURL, rawHTML string, statusCode int, headers http.Header, loadTime time.Duration, isMainPage bool) (*Context, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	return &Context{
		URL:        pageURL,
		ParsedURL:  parsed,
		HTML:       rawHTML,
		Root:       root,
		StatusCode: statusCode,
		Headers:    headers,
		LoadTime:   loadTime,
		IsMainPage: isMainPage,
	}, nil
}

// Registry is the ordered, immutable set of analyzers with their score
// weights. Issue concatenation and outcome iteration follow the
// registration order.
type Registry struct {
	analyzers []Analyzer
	weights   map[string]float64
}

// Entry pairs an analyzer with its weight for registry construction.
type Entry struct {
	Analyzer Analyzer
	Weight   float64
}

// NewRegistry builds a registry from the given entries, in order.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{
		analyzers: make([]Analyzer, 0, len(entries)),
		weights:   make(map[string]float64, len(entries)),
	}
	for _, e := range entries {
		r.analyzers = append(r.analyzers, e.Analyzer)
		r.weights[e.Analyzer.Name()] = e.Weight
	}
	return r
}

// DefaultRegistry returns the built-in analyzer set with its fixed
// weight table. The weights sum to 1.0.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Entry{NewTitleAnalyzer(), 0.15},
		Entry{NewMetaAnalyzer(), 0.15},
		Entry{NewHeadingsAnalyzer(), 0.10},
		Entry{NewContentAnalyzer(), 0.15},
		Entry{NewImagesAnalyzer(), 0.10},
		Entry{NewLinksAnalyzer(), 0.10},
		Entry{NewMobileAnalyzer(), 0.125},
		Entry{NewSecurityAnalyzer(), 0.125},
	)
}

// Analyzers returns the registered analyzers in registration order. The
// returned slice is a copy.
func (r *Registry) Analyzers() []Analyzer {
	out := make([]Analyzer, len(r.analyzers))
	copy(out, r.analyzers)
	return out
}

// Weight returns the score weight for the named analyzer, 0 when the
// name is not registered.
func (r *Registry) Weight(name string) float64 {
	return r.weights[name]
}

// Len returns the number of registered analyzers.
func (r *Registry) Len() int {
	return len(r.analyzers)
}

// clampScore keeps an analyzer sub-score inside the 0-100 range after
// deductions.
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
