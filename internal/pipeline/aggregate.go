package pipeline

import (
	"github.com/seolens/seolens/internal/model"
)

// Aggregate folds page results into the site-wide summary. It is a pure
// function: failed pages count toward the totals but contribute nothing
// to the average score or the issue buckets.
func Aggregate(pages []*model.PageAnalysis) model.Summary {
	var summary model.Summary
	var scoreSum float64

	for _, page := range pages {
		if page == nil {
			continue
		}
		summary.TotalPages++

		if page.Status != model.PageSuccess {
			summary.FailedPages++
			continue
		}

		summary.SuccessfulPages++
		scoreSum += page.OverallScore

		for _, issue := range page.Issues {
			switch issue.Type {
			case model.IssueError:
				summary.ErrorCount++
			case model.IssueWarning:
				summary.WarningCount++
			case model.IssueSuccess:
				summary.SuccessCount++
			}
		}
	}

	if summary.SuccessfulPages > 0 {
		summary.AvgScore = scoreSum / float64(summary.SuccessfulPages)
	}

	return summary
}
