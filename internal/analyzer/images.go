package analyzer

import (
	"context"
	"fmt"

	"github.com/seolens/seolens/internal/model"
)

// maxImagesPerPage is the image count above which page weight becomes
// a concern.
const maxImagesPerPage = 50

// ImagesAnalyzer checks image accessibility and volume: alt attribute
// coverage and total image count.
type ImagesAnalyzer struct{}

// NewImagesAnalyzer creates an ImagesAnalyzer.
func NewImagesAnalyzer() *ImagesAnalyzer {
	return &ImagesAnalyzer{}
}

// Name returns the analyzer identifier.
func (a *ImagesAnalyzer) Name() string { return "images" }

// Analyze checks the page's <img> elements.
func (a *ImagesAnalyzer) Analyze(_ context.Context, page *Context) (*model.AnalyzerOutcome, error) {
	score := 100.0
	var issues []model.Issue

	images := findAll(page.Root, "img")
	missingAlt := 0
	for _, img := range images {
		if !hasAttr(img, "alt") {
			missingAlt++
		}
	}

	data := map[string]any{
		"total":       len(images),
		"missing_alt": missingAlt,
	}

	if len(images) == 0 {
		issues = append(issues, model.NewIssue(model.IssueInfo, model.PriorityLow, a.Name(),
			"page has no images"))
		return model.ValidOutcome(a.Name(), score, issues, data), nil
	}

	if missingAlt > 0 {
		// Deduct proportionally to the share of unlabeled images.
		share := float64(missingAlt) / float64(len(images))
		score -= 50 * share
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityMedium, a.Name(),
			fmt.Sprintf("%d of %d images have no alt attribute", missingAlt, len(images))))
	} else {
		issues = append(issues, model.NewIssue(model.IssueSuccess, model.PriorityLow, a.Name(),
			"all images have alt attributes"))
	}

	if len(images) > maxImagesPerPage {
		score -= 10
		issues = append(issues, model.NewIssue(model.IssueWarning, model.PriorityLow, a.Name(),
			fmt.Sprintf("page embeds %d images, above the %d-image threshold for page weight", len(images), maxImagesPerPage)))
	}

	return model.ValidOutcome(a.Name(), clampScore(score), issues, data), nil
}
