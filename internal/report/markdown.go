package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/seolens/seolens/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
//  3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.SiteAnalysis) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeSiteIssues(md, report)
	w.writePages(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.SiteAnalysis) {
	md.H1("SEO Audit Report")
	md.PlainText("")

	sitemapText := "not found"
	if report.Sitemap != nil && report.Sitemap.Exists {
		sitemapText = "`" + report.Sitemap.SitemapURL + "`"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site", "`" + report.Site + "`"},
			{"Audit Date", report.DateAudited.Format("2006-01-02 15:04:05 MST")},
			{"Pages Analyzed", strconv.Itoa(report.Summary.SuccessfulPages)},
			{"Pages Failed", strconv.Itoa(report.Summary.FailedPages)},
			{"Sitemap", sitemapText},
		},
	})
	md.PlainText("")
}

// writeSummary writes the score and issue summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.SiteAnalysis) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Overall Score", fmt.Sprintf("**%.1f / 100** (%s)", report.Summary.AvgScore, scoreBand(report.Summary.AvgScore))},
			{"🔴 Errors", strconv.Itoa(report.Summary.ErrorCount)},
			{"🟡 Warnings", strconv.Itoa(report.Summary.WarningCount)},
			{"🟢 Passed", strconv.Itoa(report.Summary.SuccessCount)},
		},
	})
	md.PlainText("")

	if report.Summary.ErrorCount+report.Summary.WarningCount+report.Summary.SuccessCount > 0 {
		w.writePieChart(md, report)
	}
	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for the issue distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.SiteAnalysis) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Issue Distribution"),
		piechart.WithShowData(true),
	)

	if report.Summary.ErrorCount > 0 {
		chart.LabelAndIntValue("Errors", uint64(report.Summary.ErrorCount))
	}
	if report.Summary.WarningCount > 0 {
		chart.LabelAndIntValue("Warnings", uint64(report.Summary.WarningCount))
	}
	if report.Summary.SuccessCount > 0 {
		chart.LabelAndIntValue("Passed", uint64(report.Summary.SuccessCount))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the audit outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.SiteAnalysis) {
	switch {
	case report.Summary.SuccessfulPages == 0:
		md.Cautionf("No page could be analyzed. Check that the site is reachable.")
	case report.Summary.ErrorCount > 0:
		md.Warningf(
			"%d SEO error(s) detected. These directly hurt how the site ranks and should be fixed first.",
			report.Summary.ErrorCount,
		)
	case report.Summary.WarningCount > 0:
		md.Importantf(
			"%d warning(s) found. The site is in reasonable shape; the flagged items are worth a pass.",
			report.Summary.WarningCount,
		)
	default:
		md.Tip("No SEO issues detected.")
	}
	md.PlainText("")
}

// writeSiteIssues writes crawl-level findings that belong to no page.
func (w *MarkdownWriter) writeSiteIssues(md *markdown.Markdown, report *model.SiteAnalysis) {
	issues := append([]model.Issue{}, report.Issues...)
	if report.Sitemap != nil {
		issues = append(issues, report.Sitemap.Issues...)
	}
	if len(issues) == 0 {
		return
	}

	md.H2("Site Issues")
	md.PlainText("")
	w.writeIssuesTable(md, issues)
}

// writePages writes the per-page results: main page first, then every
// crawled page in frontier order.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, report *model.SiteAnalysis) {
	md.H2("Pages")
	md.PlainText("")

	pages := make([]*model.PageAnalysis, 0, len(report.Pages)+1)
	if report.MainPage != nil {
		pages = append(pages, report.MainPage)
	}
	pages = append(pages, report.Pages...)

	if len(pages) == 0 {
		md.PlainText("No pages were analyzed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(pages))
	for _, page := range pages {
		rows = append(rows, []string{
			"`" + truncateString(page.URL, 60) + "`",
			w.pageScoreCell(page),
			strconv.FormatInt(page.LoadTimeMillis, 10) + "ms",
			strconv.Itoa(len(page.Issues)),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Score", "Load Time", "Issues"},
		Rows:   rows,
	})
	md.PlainText("")

	// Expandable issue detail per page with findings.
	for _, page := range pages {
		if len(page.Issues) == 0 {
			continue
		}
		md.Details(truncateString(page.URL, 80), w.issueList(page.Issues))
	}
	md.PlainText("")
}

// pageScoreCell renders the score column for one page.
func (w *MarkdownWriter) pageScoreCell(page *model.PageAnalysis) string {
	if page.Status == model.PageFailed {
		reason := "failed"
		if page.Error != nil {
			reason = "failed: " + page.Error.KindText
		}
		return "❌ " + reason
	}
	return fmt.Sprintf("%.1f", page.OverallScore)
}

// writeIssuesTable writes a table of findings.
func (w *MarkdownWriter) writeIssuesTable(md *markdown.Markdown, issues []model.Issue) {
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{
			w.issueIcon(issue.Type) + " " + issue.TypeText,
			issue.PriorityText,
			issue.Category,
			truncateString(issue.Message, 80),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Type", "Priority", "Category", "Message"},
		Rows:   rows,
	})
	md.PlainText("")
}

// issueList renders findings as a plain list for a details block.
func (w *MarkdownWriter) issueList(issues []model.Issue) string {
	var out string
	for _, issue := range issues {
		out += fmt.Sprintf("%s **%s** (%s): %s<br>", w.issueIcon(issue.Type), issue.Category, issue.PriorityText, issue.Message)
	}
	return out
}

// issueIcon returns the marker for an issue type.
func (w *MarkdownWriter) issueIcon(t model.IssueType) string {
	switch t {
	case model.IssueError:
		return "🔴"
	case model.IssueWarning:
		return "🟡"
	case model.IssueSuccess:
		return "🟢"
	case model.IssueInfo:
		return "⚪"
	default:
		return "❔"
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [seolens](https://github.com/seolens/seolens)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
