package sitemap

import (
	"net/url"
	"regexp"
)

// lowValuePatterns match URL paths that usually carry little SEO value:
// authentication flows, commerce session pages, search result listings,
// deep pagination, and printer-friendly variants. The classification is
// advisory; flagged URLs are still crawled.
var lowValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/(log-?in|sign-?in|sign-?up|register)(/|$)`),
	regexp.MustCompile(`(?i)/(cart|basket|checkout)(/|$)`),
	regexp.MustCompile(`(?i)/search(/|$)`),
	regexp.MustCompile(`(?i)/page/\d+(/|$)`),
	regexp.MustCompile(`(?i)/print(able)?(/|$)`),
}

// lowValueQueryKeys are query parameters that mark search results or
// print views regardless of path.
var lowValueQueryKeys = []string{"s", "q", "search", "print"}

// IsLowValue reports whether a URL matches the fixed low-value pattern
// set.
func IsLowValue(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	for _, pattern := range lowValuePatterns {
		if pattern.MatchString(u.Path) {
			return true
		}
	}

	if u.RawQuery != "" {
		query := u.Query()
		for _, key := range lowValueQueryKeys {
			if _, ok := query[key]; ok {
				return true
			}
		}
	}

	return false
}
