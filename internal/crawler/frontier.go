package crawler

import (
	"github.com/seolens/seolens/internal/model"
)

// BuildFrontier merges sitemap entries and discovered links into one
// deduplicated, capped crawl target list.
//
// Sitemap entries are added first and consume the cap before
// discovered-only links are appended: the sitemap is the site owner's
// declared page inventory and takes priority over whatever happened to
// be linked from the main page. Deduplication uses the same normalized
// key as link discovery. excludeKey (the main page's normalized URL)
// never enters the frontier; it is analyzed separately.
func BuildFrontier(nodes []model.SitemapNode, discovered []string, maxURLs int, excludeKey string) []model.CrawlTarget {
	if maxURLs <= 0 {
		return nil
	}

	seen := make(map[string]bool)
	if excludeKey != "" {
		seen[excludeKey] = true
	}

	frontier := make([]model.CrawlTarget, 0, min(maxURLs, len(nodes)+len(discovered)))

	add := func(rawURL string, source model.TargetSource) bool {
		if len(frontier) >= maxURLs {
			return false
		}
		key := Normalize(rawURL)
		if seen[key] {
			return true
		}
		seen[key] = true
		frontier = append(frontier, model.NewCrawlTarget(rawURL, source, key))
		return true
	}

	for _, node := range nodes {
		if !add(node.URL, model.SourceSitemap) {
			break
		}
	}
	for _, link := range discovered {
		if !add(link, model.SourceDiscovered) {
			break
		}
	}

	return frontier
}
