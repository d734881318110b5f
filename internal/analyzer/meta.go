package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/seolens/seolens/internal/model"
)

const (
	descriptionMinLen = 50
	descriptionMaxLen = 160
)

// MetaAnalyzer checks the meta description, robots directives, and the
// canonical link.
type MetaAnalyzer struct{}

// NewMetaAnalyzer creates a MetaAnalyzer.
func NewMetaAnalyzer() *MetaAnalyzer {
	return &MetaAnalyzer{}
}

// Name returns the analyzer identifier.
func (a *MetaAnalyzer) Name() string { return "meta" }

// Analyze checks the page's meta tags.
func (a *MetaAnalyzer) Analyze(_ context.Context, page *Context) (*model.AnalyzerOutcome, error) {
	score := 100.0
	var issues []model.Issue

	description, hasDescription := metaContent(page.Root, "description")
	description = strings.TrimSpace(description)

	switch {
	case !hasDescription || description == "":
		score -= 40
		issues = append(issues, model.NewIssue(model.IssueError, model.PriorityHigh, a.Name(),
			"page has no meta description"))
	case len(description) < descriptionMinLen:
		score -= 20
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityMedium, a.Name(),
			fmt.Sprintf("meta description is %d characters, shorter than the recommended %d-%d", len(description), descriptionMinLen, descriptionMaxLen)))
	case len(description) > descriptionMaxLen:
		score -= 10
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityLow, a.Name(),
			fmt.Sprintf("meta description is %d characters, longer than the recommended %d-%d", len(description), descriptionMinLen, descriptionMaxLen)))
	default:
		issues = append(issues, model.NewIssue(model.IssueSuccess, model.PriorityLow, a.Name(),
			"meta description length is within the recommended range"))
	}

	if robots, ok := metaContent(page.Root, "robots"); ok {
		if strings.Contains(strings.ToLower(robots), "noindex") {
			score -= 30
			issues = append(issues, model.NewIssue(model.IssueError, model.PriorityHigh, a.Name(),
				"robots meta tag contains noindex; the page is excluded from search results"))
		}
	}

	canonical := canonicalHref(page)
	if canonical == "" {
		score -= 10
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityLow, a.Name(),
			"page has no canonical link"))
	} else {
		issues = append(issues, model.NewIssue(model.IssueSuccess, model.PriorityLow, a.Name(),
			"canonical link is present"))
	}

	data := map[string]any{
		"description":        description,
		"description_length": len(description),
		"canonical":          canonical,
	}

	return model.ValidOutcome(a.Name(), clampScore(score), issues, data), nil
}

// canonicalHref returns the href of the first rel=canonical link.
func canonicalHref(page *Context) string {
	for _, link := range findAll(page.Root, "link") {
		if strings.EqualFold(attrVal(link, "rel"), "canonical") {
			return strings.TrimSpace(attrVal(link, "href"))
		}
	}
	return ""
}
