package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/seolens/seolens/internal/model"
)

const (
	// thinContentWords is the word count below which a page is
	// considered thin.
	thinContentWords = 300

	// minTextRatio is the minimum visible-text share of the markup
	// before the page counts as markup-heavy.
	minTextRatio = 0.10
)

// ContentAnalyzer checks the amount of visible text: word count and
// text-to-markup ratio.
type ContentAnalyzer struct{}

// NewContentAnalyzer creates a ContentAnalyzer.
func NewContentAnalyzer() *ContentAnalyzer {
	return &ContentAnalyzer{}
}

// Name returns the analyzer identifier.
func (a *ContentAnalyzer) Name() string { return "content" }

// Analyze checks the page's text content.
func (a *ContentAnalyzer) Analyze(_ context.Context, page *Context) (*model.AnalyzerOutcome, error) {
	score := 100.0
	var issues []model.Issue

	text := textContent(page.Root)
	words := len(strings.Fields(text))

	ratio := 0.0
	if len(page.HTML) > 0 {
		ratio = float64(len(text)) / float64(len(page.HTML))
	}

	switch {
	case words == 0:
		score -= 50
		issues = append(issues, model.NewIssue(model.IssueError, model.PriorityHigh, a.Name(),
			"page has no visible text"))
	case words < thinContentWords:
		score -= 25
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityMedium, a.Name(),
			fmt.Sprintf("page has %d words of visible text, below the %d-word threshold for substantive content", words, thinContentWords)))
	default:
		issues = append(issues, model.NewIssue(model.IssueSuccess, model.PriorityLow, a.Name(),
			fmt.Sprintf("page has %d words of visible text", words)))
	}

	if words > 0 && ratio < minTextRatio {
		score -= 15
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityLow, a.Name(),
			fmt.Sprintf("visible text is %.0f%% of the markup; the page is markup-heavy", ratio*100)))
	}

	data := map[string]any{
		"word_count": words,
		"text_ratio": ratio,
	}

	return model.ValidOutcome(a.Name(), clampScore(score), issues, data), nil
}
