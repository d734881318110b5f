package analyzer

import (
	"strings"

	"golang.org/x/net/html"
)

// findAll returns every element node with the given tag name, in
// document order.
func findAll(root *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// findFirst returns the first element node with the given tag name, or
// nil when the document has none.
func findFirst(root *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && n.Data == tag {
			found = n
		}
	})
	return found
}

// walk visits every node in the tree in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// attrVal returns the value of the named attribute, "" when absent.
func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// hasAttr reports whether the node carries the named attribute, even
// with an empty value.
func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}

// textContent returns the concatenated visible text under the node,
// skipping script and style subtrees, with whitespace collapsed.
func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// metaContent returns the content attribute of the first <meta> whose
// name attribute matches (case-insensitive), and whether it was found.
func metaContent(root *html.Node, name string) (string, bool) {
	for _, m := range findAll(root, "meta") {
		if strings.EqualFold(attrVal(m, "name"), name) {
			return attrVal(m, "content"), true
		}
	}
	return "", false
}
