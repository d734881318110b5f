// Package robots retrieves and minimally parses robots.txt.
//
// The crawler consumes robots.txt for exactly two signals: Sitemap
// directives (hints for sitemap discovery) and a block-all rule for the
// wildcard user agent. Nothing else in the file is interpreted; this is
// an audit tool, and the block-all signal is surfaced as a finding
// rather than obeyed as an access rule.
package robots

import (
	"bufio"
	"context"
	"net/url"
	"strings"

	"github.com/seolens/seolens/internal/fetch"
	"github.com/seolens/seolens/internal/model"
)

// Discover fetches robots.txt from the site's origin and extracts the
// sitemap hints and block-all signal. Fetch failures are not errors:
// a missing robots.txt is an ordinary state and yields Found=false.
func Discover(ctx context.Context, client *fetch.Client, siteURL string) model.RobotsInfo {
	info := model.RobotsInfo{}

	u, err := url.Parse(siteURL)
	if err != nil {
		return info
	}

	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	resp, err := client.Get(ctx, robotsURL)
	if err != nil || !resp.OK() {
		return info
	}

	info.Found = true
	info.SitemapHints, info.BlocksAll = parse(string(resp.Body))
	return info
}

// parse scans robots.txt line by line. Sitemap directives are global
// (they belong to no user-agent group); the block-all signal is a
// "Disallow: /" inside a wildcard user-agent group with no Allow rule
// softening it.
func parse(content string) (sitemaps []string, blocksAll bool) {
	var inWildcardGroup bool
	var wildcardDisallowAll bool
	var wildcardHasAllow bool

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()

		// Strip comments and whitespace.
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field = strings.ToLower(strings.TrimSpace(field))
		value = strings.TrimSpace(value)

		switch field {
		case "sitemap":
			if value != "" {
				sitemaps = append(sitemaps, value)
			}
		case "user-agent":
			inWildcardGroup = value == "*"
		case "disallow":
			if inWildcardGroup && value == "/" {
				wildcardDisallowAll = true
			}
		case "allow":
			if inWildcardGroup && value != "" {
				wildcardHasAllow = true
			}
		}
	}

	blocksAll = wildcardDisallowAll && !wildcardHasAllow
	return sitemaps, blocksAll
}
