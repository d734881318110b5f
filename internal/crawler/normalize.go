package crawler

import (
	"net/url"
	"strings"
)

// Normalize returns the canonical form of a URL used for deduplication
// across link discovery and the frontier merge.
//
// Two URLs that differ only by host/scheme case, a default port, or a
// trailing slash normalize to the same key. Query strings and fragments
// are preserved: /list?page=2 is a different page from /list.
func Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	// Strip the scheme's default port.
	if port := u.Port(); port != "" {
		if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
			u.Host = u.Hostname()
		}
	}

	// Collapse a trailing-slash-only path difference. The root path
	// stays "/" so http://host and http://host/ agree.
	switch {
	case u.Path == "":
		u.Path = "/"
	case u.Path != "/" && strings.HasSuffix(u.Path, "/"):
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String()
}
