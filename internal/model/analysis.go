package model

// AnalyzerOutcome is the result of running one analyzer against one page.
//
// Design decision: A failed analyzer is represented as an explicit
// degraded outcome rather than a synthesized zero score. A degraded
// outcome stays distinguishable from a genuinely bad page, and the
// orchestrator excludes it from score computation.
type AnalyzerOutcome struct {
	// Analyzer is the name of the analyzer that produced this outcome.
	Analyzer string `json:"analyzer"`

	// Degraded is true when the analyzer failed and this outcome was
	// substituted in its place. Score and Data are meaningless when set.
	Degraded bool `json:"degraded,omitempty"`

	// DegradedReason describes why the analyzer failed.
	DegradedReason string `json:"degraded_reason,omitempty"`

	// Score is the analyzer's sub-score in the range 0-100.
	Score float64 `json:"score"`

	// Issues are the findings, in the order the analyzer emitted them.
	Issues []Issue `json:"issues,omitempty"`

	// Data carries analyzer-specific extracted values (title text, word
	// count, heading map). Opaque to the orchestrator.
	Data map[string]any `json:"data,omitempty"`
}

// ValidOutcome creates a normal analyzer outcome.
func ValidOutcome(analyzer string, score float64, issues []Issue, data map[string]any) *AnalyzerOutcome {
	return &AnalyzerOutcome{
		Analyzer: analyzer,
		Score:    score,
		Issues:   issues,
		Data:     data,
	}
}

// DegradedOutcome creates the substitute outcome for a failed analyzer.
func DegradedOutcome(analyzer, reason string) *AnalyzerOutcome {
	return &AnalyzerOutcome{
		Analyzer:       analyzer,
		Degraded:       true,
		DegradedReason: reason,
		Issues: []Issue{
			NewIssue(IssueError, PriorityHigh, analyzer, "analyzer "+analyzer+" failed: "+reason),
		},
	}
}

// PageStatus indicates whether a page analysis produced usable results.
type PageStatus int

const (
	// PageSuccess means the page was fetched and analyzed. Individual
	// analyzers may still have degraded.
	PageSuccess PageStatus = iota

	// PageFailed means the page could not be analyzed at all (fetch
	// failure, bad status, empty or oversized body).
	PageFailed
)

// String returns a human-readable representation of the page status.
func (s PageStatus) String() string {
	switch s {
	case PageSuccess:
		return "success"
	case PageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrorKind buckets page-level failures for retry decisions and reporting.
type ErrorKind int

const (
	// ErrKindValidation marks an invalid input URL. Never retried.
	ErrKindValidation ErrorKind = iota

	// ErrKindNetwork marks a fetch failure or timeout. Retryable.
	ErrKindNetwork

	// ErrKindStatus marks a non-2xx HTTP response.
	ErrKindStatus

	// ErrKindEmptyBody marks a response with no content.
	ErrKindEmptyBody

	// ErrKindOversize marks a body exceeding the configured ceiling.
	ErrKindOversize
)

// String returns a human-readable representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindValidation:
		return "validation"
	case ErrKindNetwork:
		return "network"
	case ErrKindStatus:
		return "status"
	case ErrKindEmptyBody:
		return "empty_body"
	case ErrKindOversize:
		return "oversize"
	default:
		return "unknown"
	}
}

// ErrorDescriptor describes why a page analysis failed.
type ErrorDescriptor struct {
	// Kind buckets the failure.
	Kind ErrorKind `json:"-"`

	// KindText is the serialized form of Kind.
	KindText string `json:"kind"`

	// Message is the underlying error text.
	Message string `json:"message"`
}

// NewErrorDescriptor creates an ErrorDescriptor with KindText populated.
func NewErrorDescriptor(kind ErrorKind, message string) *ErrorDescriptor {
	return &ErrorDescriptor{Kind: kind, KindText: kind.String(), Message: message}
}

// PageAnalysis is the complete result for one crawled URL. It is created
// once by the orchestrator and immutable afterwards.
type PageAnalysis struct {
	// URL is the analyzed page URL.
	URL string `json:"url"`

	// Status indicates whether the page produced usable results.
	Status PageStatus `json:"-"`

	// StatusText is the serialized form of Status.
	StatusText string `json:"status"`

	// PerAnalyzer maps analyzer names to their outcomes. Empty for
	// failed pages.
	PerAnalyzer map[string]*AnalyzerOutcome `json:"per_analyzer,omitempty"`

	// OverallScore is the weighted average over all valid analyzer
	// scores, 0-100.
	OverallScore float64 `json:"overall_score"`

	// Issues concatenates every analyzer's issues in registration order.
	Issues []Issue `json:"issues,omitempty"`

	// LoadTimeMillis is the time the page fetch took.
	LoadTimeMillis int64 `json:"load_time_ms"`

	// StatusCode is the HTTP status code of the fetch, 0 if the request
	// never completed.
	StatusCode int `json:"status_code,omitempty"`

	// Error describes the failure for failed pages, nil otherwise.
	Error *ErrorDescriptor `json:"error,omitempty"`
}

// NewFailedPage creates a Failed PageAnalysis carrying a typed error.
func NewFailedPage(url string, kind ErrorKind, message string) *PageAnalysis {
	return &PageAnalysis{
		URL:        url,
		Status:     PageFailed,
		StatusText: PageFailed.String(),
		Error:      NewErrorDescriptor(kind, message),
	}
}
