package sitemap

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/seolens/seolens/internal/model"
)

// payloadKind classifies a sitemap document payload.
type payloadKind int

const (
	kindUnknown payloadKind = iota
	kindIndex
	kindURLSet
	kindPlainText
)

// urlsetDoc mirrors the <urlset> schema. Only <loc> and <lastmod> are
// read; changefreq and priority carry no information this tool uses.
type urlsetDoc struct {
	XMLName xml.Name   `xml:"urlset"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// indexDoc mirrors the <sitemapindex> schema.
type indexDoc struct {
	XMLName  xml.Name   `xml:"sitemapindex"`
	Sitemaps []locEntry `xml:"sitemap"`
}

type locEntry struct {
	Loc string `xml:"loc"`
}

// gzipMagic is the two-byte gzip header used for payload sniffing.
// Content-Type is not trustworthy for .gz sitemaps, so the bytes decide.
var gzipMagic = []byte{0x1f, 0x8b}

// maybeGunzip transparently decompresses a gzip payload. A payload that
// carries the gzip magic but fails to decompress is returned as-is;
// the caller's text fallback may still extract something from it.
func maybeGunzip(data []byte) []byte {
	if !bytes.HasPrefix(data, gzipMagic) {
		return data
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer zr.Close()

	decompressed, err := io.ReadAll(zr)
	if err != nil {
		return data
	}
	return decompressed
}

// classify determines the payload kind by the XML root element, falling
// back to a plain-text check when the payload is not XML at all.
func classify(data []byte) payloadKind {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		if start, ok := tok.(xml.StartElement); ok {
			switch start.Name.Local {
			case "sitemapindex":
				return kindIndex
			case "urlset":
				return kindURLSet
			default:
				return kindUnknown
			}
		}
	}

	if looksLikeURLList(data) {
		return kindPlainText
	}
	return kindUnknown
}

// looksLikeURLList reports whether the payload is a newline-delimited
// URL list: at least one non-empty line, and every non-empty line an
// absolute http(s) URL.
func looksLikeURLList(data []byte) bool {
	var lines int
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "http://") && !strings.HasPrefix(line, "https://") {
			return false
		}
		if _, err := url.Parse(line); err != nil {
			return false
		}
		lines++
	}
	return lines > 0
}

// parseURLSet extracts page nodes from a <urlset> payload.
func parseURLSet(data []byte) ([]model.SitemapNode, error) {
	var doc urlsetDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	nodes := make([]model.SitemapNode, 0, len(doc.URLs))
	for _, entry := range doc.URLs {
		loc := strings.TrimSpace(entry.Loc)
		if loc == "" {
			continue
		}
		nodes = append(nodes, newNode(loc, entry.LastMod))
	}
	return nodes, nil
}

// parseIndex extracts child sitemap URLs from a <sitemapindex> payload.
func parseIndex(data []byte) ([]string, error) {
	var doc indexDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	children := make([]string, 0, len(doc.Sitemaps))
	for _, entry := range doc.Sitemaps {
		loc := strings.TrimSpace(entry.Loc)
		if loc != "" {
			children = append(children, loc)
		}
	}
	return children, nil
}

// parsePlainText extracts page nodes from a newline-delimited URL list.
func parsePlainText(data []byte) []model.SitemapNode {
	var nodes []model.SitemapNode
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		nodes = append(nodes, newNode(line, ""))
	}
	return nodes
}

// newNode builds a SitemapNode, validating lastmod and classifying the
// URL's value.
func newNode(loc, lastMod string) model.SitemapNode {
	node := model.SitemapNode{
		URL:          loc,
		LastModified: parseLastMod(lastMod),
		IsLowValue:   IsLowValue(loc),
	}

	if u, err := url.Parse(loc); err == nil {
		node.IsCanonical = u.RawQuery == ""
	}

	return node
}

// lastModLayouts are the ISO-8601 shapes accepted for <lastmod>.
// Anything else leaves LastModified zero rather than guessing.
var lastModLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseLastMod(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	for _, layout := range lastModLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
