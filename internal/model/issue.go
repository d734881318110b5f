package model

// IssueType classifies an issue by how it should be read in the report.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and counting. The String() method provides
// human-readable output when needed.
type IssueType int

const (
	// IssueError marks a problem that actively hurts the page's SEO
	// (missing title, broken sitemap child, failed analyzer).
	IssueError IssueType = iota

	// IssueWarning marks something suboptimal that is worth fixing but
	// does not break the page (short description, missing alt text).
	IssueWarning

	// IssueSuccess marks a check that passed. Success entries are kept in
	// the issue stream so a report can show what is already in good shape.
	IssueSuccess

	// IssueInfo marks neutral diagnostic information (frontier truncated,
	// sitemap served as plain text).
	IssueInfo
)

// String returns a human-readable representation of the issue type.
func (t IssueType) String() string {
	switch t {
	case IssueError:
		return "error"
	case IssueWarning:
		return "warning"
	case IssueSuccess:
		return "success"
	case IssueInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Priority indicates how urgently an issue should be addressed.
type Priority int

const (
	// PriorityLow issues are cosmetic or marginal.
	PriorityLow Priority = iota

	// PriorityMedium issues have measurable but limited impact.
	PriorityMedium

	// PriorityHigh issues should be fixed first; they carry the largest
	// ranking or crawlability impact.
	PriorityHigh
)

// String returns a human-readable representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Issue is a single finding produced by an analyzer or by the crawl
// machinery itself (sitemap discovery, frontier building, fetching).
type Issue struct {
	// Type classifies the finding (error, warning, success, info).
	Type IssueType `json:"-"`

	// TypeText is the serialized form of Type.
	TypeText string `json:"type"`

	// Message is the human-readable description of the finding.
	Message string `json:"message"`

	// Priority indicates how urgently the finding should be addressed.
	Priority Priority `json:"-"`

	// PriorityText is the serialized form of Priority.
	PriorityText string `json:"priority"`

	// Category names the analyzer or subsystem that produced the issue
	// (e.g. "title", "sitemap", "fetch").
	Category string `json:"category"`
}

// NewIssue creates an Issue with the serialized text fields populated.
// Always use this constructor so TypeText/PriorityText stay in sync.
func NewIssue(t IssueType, p Priority, category, message string) Issue {
	return Issue{
		Type:         t,
		TypeText:     t.String(),
		Priority:     p,
		PriorityText: p.String(),
		Category:     category,
		Message:      message,
	}
}
