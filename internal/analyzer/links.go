package analyzer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/seolens/seolens/internal/model"
)

// LinksAnalyzer checks the page's outgoing links: internal/external
// mix, empty anchor text, and the nofollow share of internal links.
type LinksAnalyzer struct{}

// NewLinksAnalyzer creates a LinksAnalyzer.
func NewLinksAnalyzer() *LinksAnalyzer {
	return &LinksAnalyzer{}
}

// Name returns the analyzer identifier.
func (a *LinksAnalyzer) Name() string { return "links" }

// Analyze checks the page's <a> elements.
func (a *LinksAnalyzer) Analyze(_ context.Context, page *Context) (*model.AnalyzerOutcome, error) {
	score := 100.0
	var issues []model.Issue

	var internal, external, emptyAnchor, nofollowInternal int

	for _, anchor := range findAll(page.Root, "a") {
		href := strings.TrimSpace(attrVal(anchor, "href"))
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(strings.ToLower(href), "javascript:") ||
			strings.HasPrefix(strings.ToLower(href), "mailto:") ||
			strings.HasPrefix(strings.ToLower(href), "tel:") {
			continue
		}

		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		resolved := page.ParsedURL.ResolveReference(ref)

		isInternal := strings.EqualFold(resolved.Host, page.ParsedURL.Host)
		if isInternal {
			internal++
			if strings.Contains(strings.ToLower(attrVal(anchor, "rel")), "nofollow") {
				nofollowInternal++
			}
		} else {
			external++
		}

		if strings.TrimSpace(textContent(anchor)) == "" && findFirst(anchor, "img") == nil {
			emptyAnchor++
		}
	}

	data := map[string]any{
		"internal":          internal,
		"external":          external,
		"empty_anchors":     emptyAnchor,
		"nofollow_internal": nofollowInternal,
	}

	if internal == 0 {
		score -= 30
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityMedium, a.Name(),
			"page has no internal links; crawlers cannot reach other pages from here"))
	} else {
		issues = append(issues, model.NewIssue(model.IssueSuccess, model.PriorityLow, a.Name(),
			fmt.Sprintf("page links to %d internal and %d external targets", internal, external)))
	}

	if emptyAnchor > 0 {
		score -= 15
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityLow, a.Name(),
			fmt.Sprintf("%d links have no anchor text", emptyAnchor)))
	}

	if internal > 0 && nofollowInternal*2 > internal {
		score -= 15
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityMedium, a.Name(),
			fmt.Sprintf("%d of %d internal links are nofollow; link equity does not flow through them", nofollowInternal, internal)))
	}

	return model.ValidOutcome(a.Name(), clampScore(score), issues, data), nil
}
