package crawler

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// LinkExtractor collects internal hyperlinks from a page's markup.
type LinkExtractor struct {
	// baseURL is the page's own URL, used to resolve relative
	// references and to decide what counts as internal.
	baseURL *url.URL

	// maxLinks caps the result, preserving first-seen order.
	maxLinks int
}

// NewLinkExtractor creates a LinkExtractor for the page at baseURL.
func NewLinkExtractor(baseURL string, maxLinks int) (*LinkExtractor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if maxLinks <= 0 {
		maxLinks = 100
	}
	return &LinkExtractor{baseURL: u, maxLinks: maxLinks}, nil
}

// Extract parses the markup and returns the deduplicated, capped list
// of absolute internal URLs referenced by anchor elements, in
// first-seen order. The page's own URL is excluded from its own links.
func (e *LinkExtractor) Extract(rawHTML string) []string {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		// html.Parse is extremely tolerant; an error here means the
		// input was unreadable, which yields no links.
		return nil
	}

	selfKey := Normalize(e.baseURL.String())
	seen := make(map[string]int) // normalized key to index in links
	var links []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(links) >= e.maxLinks {
			return
		}

		if n.Type == html.ElementNode && n.Data == "a" {
			if resolved := e.resolve(getAttr(n, "href")); resolved != "" {
				key := Normalize(resolved)
				switch idx, ok := seen[key]; {
				case key == selfKey:
				case !ok:
					seen[key] = len(links)
					links = append(links, resolved)
				case strings.TrimSuffix(links[idx], "/") == resolved:
					// The same page seen both with and without a
					// trailing slash. Keep the non-slash form.
					links[idx] = resolved
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return links
}

// resolve turns an href into an absolute internal URL, or "" when the
// target is not a crawlable page on the same host.
func (e *LinkExtractor) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "data:") {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := e.baseURL.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	// Internal means the exact same host. Subdomains are different
	// sites for audit purposes.
	if !strings.EqualFold(resolved.Host, e.baseURL.Host) {
		return ""
	}

	// Fragments never change the fetched document.
	resolved.Fragment = ""

	return resolved.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
