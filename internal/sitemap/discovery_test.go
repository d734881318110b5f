package sitemap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/seolens/seolens/internal/fetch"
	"github.com/seolens/seolens/internal/model"
)

func urlsetOf(urls ...string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, u := range urls {
		sb.WriteString("<url><loc>" + u + "</loc></url>")
	}
	sb.WriteString("</urlset>")
	return sb.String()
}

func indexOf(children ...string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><sitemapindex>`)
	for _, c := range children {
		sb.WriteString("<sitemap><loc>" + c + "</loc></sitemap>")
	}
	sb.WriteString("</sitemapindex>")
	return sb.String()
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("finds conventional sitemap.xml", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetOf("http://a.example/", "http://a.example/about"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		engine := NewEngine(fetch.NewClient())
		result := engine.Discover(context.Background(), server.URL, nil)

		if !result.Exists || !result.Accessible {
			t.Fatalf("exists=%v accessible=%v, want true/true", result.Exists, result.Accessible)
		}
		if len(result.Nodes) != 2 {
			t.Errorf("nodes = %d, want 2", len(result.Nodes))
		}
		if result.SitemapURL != server.URL+"/sitemap.xml" {
			t.Errorf("sitemap url = %q", result.SitemapURL)
		}
	})

	t.Run("hint takes priority over conventional paths", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/custom.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetOf("http://a.example/hinted"))
		})
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetOf("http://a.example/conventional"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		engine := NewEngine(fetch.NewClient())
		result := engine.Discover(context.Background(), server.URL, []string{server.URL + "/custom.xml"})

		if len(result.Nodes) != 1 || result.Nodes[0].URL != "http://a.example/hinted" {
			t.Errorf("nodes = %v, want the hinted sitemap's entry", result.Nodes)
		}
	})

	t.Run("gzip sitemap detected by magic bytes", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			// Deliberately wrong content type; only the bytes matter.
			w.Header().Set("Content-Type", "text/plain")
			w.Write(gzipped(t, urlsetOf("http://a.example/zipped")))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		engine := NewEngine(fetch.NewClient())
		result := engine.Discover(context.Background(), server.URL, nil)

		if !result.Accessible {
			t.Fatal("gzip sitemap should be accessible")
		}
		if len(result.Nodes) != 1 || result.Nodes[0].URL != "http://a.example/zipped" {
			t.Errorf("nodes = %v", result.Nodes)
		}
	})

	t.Run("index expands children and tolerates one failing", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		child := func(prefix string, n int) string {
			urls := make([]string, 0, n)
			for i := range n {
				urls = append(urls, fmt.Sprintf("http://a.example/%s/%d", prefix, i))
			}
			return urlsetOf(urls...)
		}

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, indexOf(
				server.URL+"/s1.xml",
				server.URL+"/s2.xml",
				server.URL+"/missing.xml",
			))
		})
		mux.HandleFunc("/s1.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, child("one", 10))
		})
		mux.HandleFunc("/s2.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, child("two", 10))
		})

		engine := NewEngine(fetch.NewClient())
		result := engine.Discover(context.Background(), server.URL, nil)

		if !result.Accessible {
			t.Fatal("index with live children should be accessible")
		}
		if len(result.Nodes) != 20 {
			t.Errorf("nodes = %d, want 20 from the two live children", len(result.Nodes))
		}

		var warned bool
		for _, issue := range result.Issues {
			if issue.Type == model.IssueWarning && strings.Contains(issue.Message, "missing.xml") {
				warned = true
			}
		}
		if !warned {
			t.Error("expected a warning issue for the failed child")
		}
	})

	t.Run("self-referencing index terminates", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			// References itself plus one real child.
			fmt.Fprint(w, indexOf(server.URL+"/sitemap.xml", server.URL+"/real.xml"))
		})
		mux.HandleFunc("/real.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetOf("http://a.example/page"))
		})

		engine := NewEngine(fetch.NewClient())

		done := make(chan *model.SitemapResult, 1)
		go func() {
			done <- engine.Discover(context.Background(), server.URL, nil)
		}()

		select {
		case result := <-done:
			if len(result.Nodes) != 1 {
				t.Errorf("nodes = %d, want 1", len(result.Nodes))
			}
		case <-time.After(5 * time.Second):
			t.Fatal("discovery did not terminate on a self-referencing index")
		}
	})

	t.Run("mutually referencing indexes terminate", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, indexOf(server.URL+"/b.xml"))
		})
		mux.HandleFunc("/b.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, indexOf(server.URL+"/sitemap.xml", server.URL+"/b.xml"))
		})

		engine := NewEngine(fetch.NewClient())

		done := make(chan *model.SitemapResult, 1)
		go func() {
			done <- engine.Discover(context.Background(), server.URL, nil)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("discovery did not terminate on a sitemap cycle")
		}
	})

	t.Run("plain text sitemap", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "http://a.example/one\nhttp://a.example/two\n")
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		engine := NewEngine(fetch.NewClient())
		result := engine.Discover(context.Background(), server.URL, nil)

		if !result.Accessible {
			t.Fatal("plain text sitemap should be accessible")
		}
		if len(result.Nodes) != 2 {
			t.Errorf("nodes = %d, want 2", len(result.Nodes))
		}
	})

	t.Run("unrecognized payload yields inaccessible result", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><body>404 but with status 200</body></html>")
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		engine := NewEngine(fetch.NewClient())
		result := engine.Discover(context.Background(), server.URL, nil)

		if result.Exists || result.Accessible {
			t.Errorf("exists=%v accessible=%v, want false/false", result.Exists, result.Accessible)
		}
	})

	t.Run("no sitemap anywhere", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		engine := NewEngine(fetch.NewClient())
		result := engine.Discover(context.Background(), server.URL, nil)

		if result.Exists || result.Accessible {
			t.Error("missing sitemap must yield exists=false accessible=false")
		}
		if len(result.Issues) == 0 {
			t.Error("expected an issue explaining that no sitemap was found")
		}
	})

	t.Run("truncates to max urls", func(t *testing.T) {
		t.Parallel()

		urls := make([]string, 0, 30)
		for i := range 30 {
			urls = append(urls, fmt.Sprintf("http://a.example/p/%d", i))
		}

		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetOf(urls...))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		engine := NewEngine(fetch.NewClient(), WithMaxURLs(10))
		result := engine.Discover(context.Background(), server.URL, nil)

		if len(result.Nodes) != 10 {
			t.Errorf("nodes = %d, want 10", len(result.Nodes))
		}
		if !result.Truncated {
			t.Error("truncation flag not set")
		}
	})

	t.Run("depth cap stops deep nesting", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		// A chain of indexes deeper than the cap, ending in a urlset.
		for i := range 5 {
			next := fmt.Sprintf("/level%d.xml", i+1)
			path := "/sitemap.xml"
			if i > 0 {
				path = fmt.Sprintf("/level%d.xml", i)
			}
			mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, indexOf(server.URL+next))
			})
		}
		mux.HandleFunc("/level5.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetOf("http://a.example/deep"))
		})

		engine := NewEngine(fetch.NewClient(), WithMaxDepth(2))
		result := engine.Discover(context.Background(), server.URL, nil)

		if len(result.Nodes) != 0 {
			t.Errorf("nodes = %d, want 0 (urlset beyond depth cap)", len(result.Nodes))
		}

		var depthWarning bool
		for _, issue := range result.Issues {
			if strings.Contains(issue.Message, "recursion depth") {
				depthWarning = true
			}
		}
		if !depthWarning {
			t.Error("expected a depth cap warning")
		}
	})

	t.Run("child cap limits expansion", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		children := make([]string, 0, 5)
		for i := range 5 {
			path := fmt.Sprintf("/c%d.xml", i)
			children = append(children, server.URL+path)
			mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, urlsetOf(fmt.Sprintf("http://a.example%s", r.URL.Path)))
			})
		}
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, indexOf(children...))
		})

		engine := NewEngine(fetch.NewClient(), WithMaxChildren(2))
		result := engine.Discover(context.Background(), server.URL, nil)

		if len(result.Nodes) != 2 {
			t.Errorf("nodes = %d, want 2 (child cap)", len(result.Nodes))
		}
	})
}

func TestDiscoverInvalidSiteURL(t *testing.T) {
	t.Parallel()

	engine := NewEngine(fetch.NewClient())
	result := engine.Discover(context.Background(), "://not-a-url", nil)

	if result.Exists {
		t.Error("invalid site URL must not report an existing sitemap")
	}
	if len(result.Issues) == 0 {
		t.Error("expected an issue for the invalid URL")
	}
}
