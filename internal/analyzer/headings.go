package analyzer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/seolens/seolens/internal/model"
)

// HeadingsAnalyzer checks the heading structure: exactly one h1, no
// skipped levels, no empty headings.
type HeadingsAnalyzer struct{}

// NewHeadingsAnalyzer creates a HeadingsAnalyzer.
func NewHeadingsAnalyzer() *HeadingsAnalyzer {
	return &HeadingsAnalyzer{}
}

// Name returns the analyzer identifier.
func (a *HeadingsAnalyzer) Name() string { return "headings" }

// Analyze checks the page's heading hierarchy.
func (a *HeadingsAnalyzer) Analyze(_ context.Context, page *Context) (*model.AnalyzerOutcome, error) {
	score := 100.0
	var issues []model.Issue

	var sequence []int
	counts := make(map[string]int, 6)
	empty := 0

	walk(page.Root, func(n *html.Node) {
		if n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
			return
		}
		level := int(n.Data[1] - '0')
		if level < 1 || level > 6 {
			return
		}
		sequence = append(sequence, level)
		counts[n.Data]++
		if strings.TrimSpace(textContent(n)) == "" {
			empty++
		}
	})

	switch h1s := counts["h1"]; {
	case h1s == 0:
		score -= 40
		issues = append(issues, model.NewIssue(model.IssueError, model.PriorityHigh, a.Name(),
			"page has no h1 heading"))
	case h1s > 1:
		score -= 20
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityMedium, a.Name(),
			fmt.Sprintf("page has %d h1 headings; use exactly one", h1s)))
	default:
		issues = append(issues, model.NewIssue(model.IssueSuccess, model.PriorityLow, a.Name(),
			"page has exactly one h1 heading"))
	}

	if gap := firstLevelGap(sequence); gap != "" {
		score -= 15
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityLow, a.Name(),
			"heading levels skip from "+gap))
	}

	if empty > 0 {
		score -= 10
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityLow, a.Name(),
			fmt.Sprintf("%d headings have no text", empty)))
	}

	data := map[string]any{"counts": counts}

	return model.ValidOutcome(a.Name(), clampScore(score), issues, data), nil
}

// firstLevelGap returns a description of the first place the heading
// sequence jumps more than one level down, "" when the hierarchy is
// contiguous.
func firstLevelGap(sequence []int) string {
	for i := 1; i < len(sequence); i++ {
		if sequence[i] > sequence[i-1]+1 {
			return fmt.Sprintf("h%d to h%d", sequence[i-1], sequence[i])
		}
	}
	return ""
}
