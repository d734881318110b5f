package robots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seolens/seolens/internal/fetch"
)

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("extracts sitemap hints", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`User-agent: *
Disallow: /admin/

Sitemap: https://example.com/sitemap.xml
Sitemap: https://example.com/news-sitemap.xml
`))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		info := Discover(context.Background(), fetch.NewClient(), server.URL+"/some/page")

		if !info.Found {
			t.Fatal("expected robots.txt to be found")
		}
		if len(info.SitemapHints) != 2 {
			t.Fatalf("hints = %v, want 2 entries", info.SitemapHints)
		}
		if info.SitemapHints[0] != "https://example.com/sitemap.xml" {
			t.Errorf("first hint = %q", info.SitemapHints[0])
		}
		if info.BlocksAll {
			t.Error("partial disallow must not count as block-all")
		}
	})

	t.Run("detects block-all", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("User-agent: *\nDisallow: /\n"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		info := Discover(context.Background(), fetch.NewClient(), server.URL)
		if !info.BlocksAll {
			t.Error("expected block-all to be detected")
		}
	})

	t.Run("allow rule softens block-all", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("User-agent: *\nDisallow: /\nAllow: /public/\n"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		info := Discover(context.Background(), fetch.NewClient(), server.URL)
		if info.BlocksAll {
			t.Error("allow rule should prevent block-all")
		}
	})

	t.Run("block-all scoped to specific agent is ignored", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("User-agent: BadBot\nDisallow: /\n\nUser-agent: *\nDisallow: /tmp/\n"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		info := Discover(context.Background(), fetch.NewClient(), server.URL)
		if info.BlocksAll {
			t.Error("agent-specific block must not count as block-all")
		}
	})

	t.Run("missing robots.txt", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		info := Discover(context.Background(), fetch.NewClient(), server.URL)
		if info.Found {
			t.Error("expected Found=false for 404")
		}
		if len(info.SitemapHints) != 0 || info.BlocksAll {
			t.Error("missing file must yield zero-value info")
		}
	})

	t.Run("comments are stripped", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("# full line comment\nSitemap: https://example.com/s.xml # trailing\n"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		info := Discover(context.Background(), fetch.NewClient(), server.URL)
		if len(info.SitemapHints) != 1 || info.SitemapHints[0] != "https://example.com/s.xml" {
			t.Errorf("hints = %v", info.SitemapHints)
		}
	})
}
