package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/seolens/seolens/internal/analyzer"
	"github.com/seolens/seolens/internal/config"
	"github.com/seolens/seolens/internal/fetch"
	"github.com/seolens/seolens/internal/model"
)

const auditTestPage = `<html>
<head>
	<title>A Perfectly Reasonable Page Title Here</title>
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<meta name="description" content="A long enough description that sits comfortably inside the recommended range for search snippets.">
</head>
<body>
	<h1>Welcome</h1>
	<p>Some visible words to analyze.</p>
	<a href="/features">Features</a>
	<a href="/pricing">Pricing</a>
</body>
</html>`

// newAuditSite serves a small site: robots.txt with a sitemap hint, a
// sitemap listing two pages, and HTML everywhere else.
func newAuditSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nAllow: /\nSitemap: " + server.URL + "/sitemap.xml\n"))
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>` + server.URL + `/docs</loc></url>
	<url><loc>` + server.URL + `/blog</loc></url>
</urlset>`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(auditTestPage))
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestAuditor(t *testing.T, server *httptest.Server, cfg *config.Config) *Auditor {
	t.Helper()
	client := fetch.NewClient(fetch.WithHTTPClient(server.Client()))
	return NewAuditor(cfg, analyzer.DefaultRegistry(),
		WithAuditorLogger(discardLogger()),
		WithFetchClient(client),
	)
}

func TestAuditorRun(t *testing.T) {
	t.Parallel()

	t.Run("full audit over a small site", func(t *testing.T) {
		t.Parallel()

		server := newAuditSite(t)
		cfg := config.NewConfig()
		cfg.Target = server.URL

		auditor := newTestAuditor(t, server, cfg)
		report, err := auditor.Run(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		wantSteps := []string{"robots", "main_page", "discover", "frontier", "analyze_pages", "aggregate"}
		if len(report.StepsRun) != len(wantSteps) {
			t.Fatalf("StepsRun = %v, want %v", report.StepsRun, wantSteps)
		}
		for i, name := range wantSteps {
			if report.StepsRun[i] != name {
				t.Fatalf("StepsRun = %v, want %v", report.StepsRun, wantSteps)
			}
		}

		if !report.Robots.Found || len(report.Robots.SitemapHints) != 1 {
			t.Errorf("robots = %+v, want found with one sitemap hint", report.Robots)
		}
		if report.MainPage == nil || report.MainPage.Status != model.PageSuccess {
			t.Fatalf("main page = %+v, want success", report.MainPage)
		}
		if report.Sitemap == nil || !report.Sitemap.Exists || len(report.Sitemap.Nodes) != 2 {
			t.Fatalf("sitemap = %+v, want 2 nodes", report.Sitemap)
		}

		// Frontier: 2 sitemap pages plus 2 links discovered on the main
		// page, root URL excluded.
		if len(report.Frontier) != 4 {
			t.Fatalf("frontier = %v, want 4 targets", report.Frontier)
		}
		if report.Frontier[0].Source != model.SourceSitemap {
			t.Errorf("first frontier target source = %v, want sitemap", report.Frontier[0].Source)
		}

		if len(report.Pages) != 4 {
			t.Fatalf("pages = %d, want 4", len(report.Pages))
		}
		// Main page plus four frontier pages, all healthy.
		if report.Summary.TotalPages != 5 || report.Summary.SuccessfulPages != 5 {
			t.Errorf("summary = %+v, want 5 successful pages", report.Summary)
		}
		if report.Summary.AvgScore <= 0 {
			t.Errorf("avg score = %v, want positive", report.Summary.AvgScore)
		}
	})

	t.Run("dead server still produces a report", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		client := fetch.NewClient()
		auditor := NewAuditor(cfg, analyzer.DefaultRegistry(),
			WithAuditorLogger(discardLogger()),
			WithFetchClient(client),
		)

		report, err := auditor.Run(context.Background(), "http://127.0.0.1:1/")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if report.MainPage == nil || report.MainPage.Status != model.PageFailed {
			t.Fatalf("main page = %+v, want failed", report.MainPage)
		}
		if report.Summary.TotalPages != 1 || report.Summary.FailedPages != 1 {
			t.Errorf("summary = %+v, want one failed page", report.Summary)
		}
	})

	t.Run("invalid root URL is an error", func(t *testing.T) {
		t.Parallel()

		auditor := NewAuditor(config.NewConfig(), analyzer.DefaultRegistry(),
			WithAuditorLogger(discardLogger()),
		)

		for _, target := range []string{"", "example.com", "ftp://example.com/", "http://"} {
			if _, err := auditor.Run(context.Background(), target); !errors.Is(err, ErrInvalidRootURL) {
				t.Errorf("Run(%q) = %v, want ErrInvalidRootURL", target, err)
			}
		}
	})

	t.Run("cancelled context returns the report built so far", func(t *testing.T) {
		t.Parallel()

		server := newAuditSite(t)
		cfg := config.NewConfig()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		auditor := newTestAuditor(t, server, cfg)
		report, err := auditor.Run(ctx, server.URL)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run = %v, want context.Canceled", err)
		}
		if report == nil {
			t.Fatal("report = nil, want a partial report")
		}
	})

	t.Run("robots block-all surfaces a warning but crawl proceeds", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /\n"))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(auditTestPage))
		})
		server := httptest.NewServer(mux)
		t.Cleanup(server.Close)

		cfg := config.NewConfig()
		auditor := newTestAuditor(t, server, cfg)

		report, err := auditor.Run(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !report.Robots.BlocksAll {
			t.Error("BlocksAll = false, want true")
		}
		var warned bool
		for _, issue := range report.Issues {
			if issue.Category == "robots" && strings.Contains(issue.Message, "disallows all") {
				warned = true
			}
		}
		if !warned {
			t.Errorf("issues = %v, want a robots warning", report.Issues)
		}
		if report.MainPage == nil || report.MainPage.Status != model.PageSuccess {
			t.Errorf("main page = %+v, want analyzed despite block-all", report.MainPage)
		}
	})
}
