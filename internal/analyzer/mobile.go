package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/seolens/seolens/internal/model"
)

// fixedWidthStyle matches inline styles that pin an element to a wide
// fixed pixel width, a common marker of non-responsive layouts.
var fixedWidthStyle = regexp.MustCompile(`width\s*:\s*([6-9]\d\d|\d{4,})px`)

// MobileAnalyzer checks mobile friendliness: the viewport meta tag and
// fixed-width layout markers.
type MobileAnalyzer struct{}

// NewMobileAnalyzer creates a MobileAnalyzer.
func NewMobileAnalyzer() *MobileAnalyzer {
	return &MobileAnalyzer{}
}

// Name returns the analyzer identifier.
func (a *MobileAnalyzer) Name() string { return "mobile" }

// Analyze checks the page's mobile-friendliness markers.
func (a *MobileAnalyzer) Analyze(_ context.Context, page *Context) (*model.AnalyzerOutcome, error) {
	score := 100.0
	var issues []model.Issue

	viewport, hasViewport := metaContent(page.Root, "viewport")
	switch {
	case !hasViewport:
		score -= 50
		issues = append(issues, model.NewIssue(model.IssueError, model.PriorityHigh, a.Name(),
			"page has no viewport meta tag"))
	case !strings.Contains(strings.ToLower(viewport), "width=device-width"):
		score -= 25
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityMedium, a.Name(),
			"viewport meta tag does not set width=device-width"))
	default:
		issues = append(issues, model.NewIssue(model.IssueSuccess, model.PriorityLow, a.Name(),
			"viewport meta tag is configured for responsive layout"))
	}

	fixedWidth := 0
	walk(page.Root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if fixedWidthStyle.MatchString(attrVal(n, "style")) {
			fixedWidth++
		}
	})
	if fixedWidth > 0 {
		score -= 20
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityLow, a.Name(),
			fmt.Sprintf("%d elements use a wide fixed pixel width", fixedWidth)))
	}

	data := map[string]any{
		"viewport":             viewport,
		"fixed_width_elements": fixedWidth,
	}

	return model.ValidOutcome(a.Name(), clampScore(score), issues, data), nil
}
