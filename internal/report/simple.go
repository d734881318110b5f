package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/seolens/seolens/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
//  1. It works in all terminals without compatibility issues
//  2. It's easier to pipe to files or other tools
//  3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables per-page issue listings instead of counts.
	verbose bool

	// showPassed includes passed checks in issue listings.
	showPassed bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-page issue listings.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithShowPassed includes passed checks in the issue listings.
func WithShowPassed(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showPassed = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the report in human-readable format.
func (w *SimpleWriter) Write(report *model.SiteAnalysis) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeSiteIssues(&sb, report)
	w.writeMainPage(&sb, report)
	w.writePages(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with audit information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.SiteAnalysis) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         SEOLENS AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Site:          %s\n", report.Site))
	sb.WriteString(fmt.Sprintf("Audit Date:    %s\n", report.DateAudited.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Pages:         %d analyzed, %d failed\n",
		report.Summary.SuccessfulPages, report.Summary.FailedPages))

	if report.Sitemap != nil && report.Sitemap.Exists {
		sb.WriteString(fmt.Sprintf("Sitemap:       %s\n", report.Sitemap.SitemapURL))
	} else {
		sb.WriteString("Sitemap:       not found\n")
	}
	sb.WriteString("\n")
}

// writeSummary writes the site-wide score and issue counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.SiteAnalysis) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  SCORE:    %.1f / 100 (%s)\n", report.Summary.AvgScore, scoreBand(report.Summary.AvgScore)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  ERRORS:   %d\n", report.Summary.ErrorCount))
	sb.WriteString(fmt.Sprintf("  WARNINGS: %d\n", report.Summary.WarningCount))
	sb.WriteString(fmt.Sprintf("  PASSED:   %d\n", report.Summary.SuccessCount))
	sb.WriteString("\n")
}

// writeSiteIssues writes crawl-level findings that belong to no page.
func (w *SimpleWriter) writeSiteIssues(sb *strings.Builder, report *model.SiteAnalysis) {
	issues := append([]model.Issue{}, report.Issues...)
	if report.Sitemap != nil {
		issues = append(issues, report.Sitemap.Issues...)
	}
	if len(issues) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SITE ISSUES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, issue := range issues {
		w.writeIssue(sb, issue)
	}
	sb.WriteString("\n")
}

// writeMainPage writes the root URL's result.
func (w *SimpleWriter) writeMainPage(sb *strings.Builder, report *model.SiteAnalysis) {
	if report.MainPage == nil {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("MAIN PAGE\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	w.writePage(sb, report.MainPage)
	sb.WriteString("\n")
}

// writePages writes one entry per crawled page.
func (w *SimpleWriter) writePages(sb *strings.Builder, report *model.SiteAnalysis) {
	if len(report.Pages) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("CRAWLED PAGES (%d)\n", len(report.Pages)))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, page := range report.Pages {
		w.writePage(sb, page)
	}
	sb.WriteString("\n")
}

// writePage writes one page's line, plus its issues in verbose mode.
func (w *SimpleWriter) writePage(sb *strings.Builder, page *model.PageAnalysis) {
	if page.Status == model.PageFailed {
		reason := "unknown failure"
		if page.Error != nil {
			reason = page.Error.Message
		}
		sb.WriteString(fmt.Sprintf("  [FAIL]  %s\n          %s\n", page.URL, reason))
		return
	}

	sb.WriteString(fmt.Sprintf("  [%5.1f] %s (%dms)\n", page.OverallScore, page.URL, page.LoadTimeMillis))

	if !w.verbose {
		return
	}
	for _, issue := range page.Issues {
		if issue.Type == model.IssueSuccess && !w.showPassed {
			continue
		}
		w.writeIssue(sb, issue)
	}
}

// writeIssue writes one finding with its severity indicator.
func (w *SimpleWriter) writeIssue(sb *strings.Builder, issue model.Issue) {
	sb.WriteString(fmt.Sprintf("  [%s] %s: %s\n", w.issueIndicator(issue.Type), issue.Category, issue.Message))
}

// issueIndicator returns a visual indicator for the issue type.
func (w *SimpleWriter) issueIndicator(t model.IssueType) string {
	switch t {
	case model.IssueError:
		return "!!"
	case model.IssueWarning:
		return "! "
	case model.IssueSuccess:
		return "ok"
	case model.IssueInfo:
		return "i "
	default:
		return "? "
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by seolens\n")
	sb.WriteString("https://github.com/seolens/seolens\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
