package analyzer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/seolens/seolens/internal/model"
)

// recommendedSecurityHeaders are the response headers whose absence is
// flagged. Their exact values are out of scope; presence is the signal.
var recommendedSecurityHeaders = []string{
	"Strict-Transport-Security",
	"X-Content-Type-Options",
	"Content-Security-Policy",
}

// SecurityAnalyzer checks transport security: the page scheme, mixed
// content references, and recommended response headers.
type SecurityAnalyzer struct{}

// NewSecurityAnalyzer creates a SecurityAnalyzer.
func NewSecurityAnalyzer() *SecurityAnalyzer {
	return &SecurityAnalyzer{}
}

// Name returns the analyzer identifier.
func (a *SecurityAnalyzer) Name() string { return "security" }

// Analyze checks the page's transport security markers.
func (a *SecurityAnalyzer) Analyze(_ context.Context, page *Context) (*model.AnalyzerOutcome, error) {
	score := 100.0
	var issues []model.Issue

	isHTTPS := strings.EqualFold(page.ParsedURL.Scheme, "https")
	if !isHTTPS {
		score -= 40
		issues = append(issues, model.NewIssue(model.IssueError, model.PriorityHigh, a.Name(),
			"page is served over plain http"))
	} else {
		issues = append(issues, model.NewIssue(model.IssueSuccess, model.PriorityLow, a.Name(),
			"page is served over https"))
	}

	mixed := 0
	if isHTTPS {
		walk(page.Root, func(n *html.Node) {
			if n.Type != html.ElementNode {
				return
			}
			if strings.HasPrefix(strings.ToLower(attrVal(n, "src")), "http://") {
				mixed++
				return
			}
			// href loads a resource only on link and script elements;
			// an anchor pointing at an http page is navigation, not
			// mixed content.
			if n.Data == "link" || n.Data == "script" {
				if strings.HasPrefix(strings.ToLower(attrVal(n, "href")), "http://") {
					mixed++
				}
			}
		})
		if mixed > 0 {
			score -= 20
			issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityMedium, a.Name(),
				fmt.Sprintf("%d elements reference http:// resources from an https page", mixed)))
		}
	}

	var missing []string
	if page.Headers != nil {
		for _, header := range recommendedSecurityHeaders {
			if page.Headers.Get(header) == "" {
				missing = append(missing, header)
			}
		}
	}
	if len(missing) > 0 {
		score -= 5 * float64(len(missing))
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityLow, a.Name(),
			"response is missing security headers: "+strings.Join(missing, ", ")))
	}

	data := map[string]any{
		"https":           isHTTPS,
		"mixed_content":   mixed,
		"missing_headers": missing,
	}

	return model.ValidOutcome(a.Name(), clampScore(score), issues, data), nil
}
