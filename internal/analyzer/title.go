package analyzer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/seolens/seolens/internal/model"
)

const (
	titleMinLen = 30
	titleMaxLen = 60
)

// TitleAnalyzer checks the page title: presence, length, and repeated
// words that usually indicate keyword stuffing.
type TitleAnalyzer struct{}

// NewTitleAnalyzer creates a TitleAnalyzer.
func NewTitleAnalyzer() *TitleAnalyzer {
	return &TitleAnalyzer{}
}

// Name returns the analyzer identifier.
func (a *TitleAnalyzer) Name() string { return "title" }

// Analyze checks the page's <title> element.
func (a *TitleAnalyzer) Analyze(_ context.Context, page *Context) (*model.AnalyzerOutcome, error) {
	score := 100.0
	var issues []model.Issue

	node := findFirst(page.Root, "title")
	title := ""
	if node != nil {
		title = strings.TrimSpace(textContent(node))
	}

	// Length is measured in characters, not bytes; a Japanese title is
	// not three times as long as it reads.
	length := utf8.RuneCountInString(title)

	data := map[string]any{
		"title":  title,
		"length": length,
	}

	if title == "" {
		issues = append(issues, model.NewIssue(model.IssueError, model.PriorityHigh, a.Name(),
			"page has no title"))
		return model.ValidOutcome(a.Name(), 0, issues, data), nil
	}

	switch {
	case length < titleMinLen:
		score -= 25
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityMedium, a.Name(),
			fmt.Sprintf("title is %d characters, shorter than the recommended %d-%d", length, titleMinLen, titleMaxLen)))
	case length > titleMaxLen:
		score -= 15
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityMedium, a.Name(),
			fmt.Sprintf("title is %d characters, longer than the recommended %d-%d; search results will truncate it", length, titleMinLen, titleMaxLen)))
	default:
		issues = append(issues, model.NewIssue(model.IssueSuccess, model.PriorityLow, a.Name(),
			"title length is within the recommended range"))
	}

	if word := repeatedWord(title); word != "" {
		score -= 10
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityLow, a.Name(),
			fmt.Sprintf("title repeats the word %q", word)))
	}

	return model.ValidOutcome(a.Name(), clampScore(score), issues, data), nil
}

// repeatedWord returns the first word that appears more than once in
// the text, ignoring case and short filler words.
func repeatedWord(text string) string {
	seen := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,:;!?-|–")
		if len(word) < 4 {
			continue
		}
		if seen[word] {
			return word
		}
		seen[word] = true
	}
	return ""
}
