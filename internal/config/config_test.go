package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.MaxURLs != DefaultMaxURLs {
		t.Errorf("MaxURLs = %d, want %d", cfg.MaxURLs, DefaultMaxURLs)
	}
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultBatchSize)
	}
	if cfg.PageTimeout >= cfg.AnalysisTimeout {
		t.Errorf("default page timeout %v must be below analysis timeout %v",
			cfg.PageTimeout, cfg.AnalysisTimeout)
	}
	if cfg.SaveToDB {
		t.Error("history persistence should be off by default")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.Target = "https://example.com"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}, wantErr: nil},
		{name: "no target", mutate: func(c *Config) { c.Target = "" }, wantErr: ErrNoTarget},
		{name: "zero max urls", mutate: func(c *Config) { c.MaxURLs = 0 }, wantErr: ErrInvalidMaxURLs},
		{name: "negative batch", mutate: func(c *Config) { c.BatchSize = -1 }, wantErr: ErrInvalidBatchSize},
		{name: "zero page timeout", mutate: func(c *Config) { c.PageTimeout = 0 }, wantErr: ErrInvalidTimeout},
		{
			name:    "page timeout above analysis timeout",
			mutate:  func(c *Config) { c.PageTimeout = c.AnalysisTimeout + time.Second },
			wantErr: ErrPageTimeoutTooLarge,
		},
		{
			name:    "page timeout equal to analysis timeout",
			mutate:  func(c *Config) { c.PageTimeout = c.AnalysisTimeout },
			wantErr: ErrPageTimeoutTooLarge,
		},
		{name: "zero retries", mutate: func(c *Config) { c.RetryAttempts = 0 }, wantErr: ErrInvalidRetryAttempts},
		{name: "negative retry delay", mutate: func(c *Config) { c.RetryDelay = -time.Second }, wantErr: ErrInvalidRetryDelay},
		{name: "zero body size", mutate: func(c *Config) { c.MaxBodySize = 0 }, wantErr: ErrInvalidMaxBodySize},
		{
			name:    "conflicting formats",
			mutate:  func(c *Config) { c.JSONReport = true; c.MarkdownReport = true },
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads site overrides", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		content := `
defaults:
  headers:
    X-Audit: "true"
sites:
  example.com:
    cookie: "session=abc"
    maxUrls: 50
    sitemapHint: "https://example.com/custom-sitemap.xml"
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile: %v", err)
		}

		site := cf.GetSiteConfig("example.com")
		if site.Cookie != "session=abc" {
			t.Errorf("cookie = %q, want %q", site.Cookie, "session=abc")
		}
		if site.MaxURLs != 50 {
			t.Errorf("maxUrls = %d, want 50", site.MaxURLs)
		}
		if site.SitemapHint != "https://example.com/custom-sitemap.xml" {
			t.Errorf("sitemapHint = %q", site.SitemapHint)
		}
		if site.Headers["X-Audit"] != "true" {
			t.Error("defaults header not merged into site config")
		}
	})

	t.Run("unknown site gets defaults", func(t *testing.T) {
		t.Parallel()

		cf := &File{
			Defaults: SiteConfig{Cookie: "default=1"},
			Sites:    map[string]SiteConfig{},
		}

		site := cf.GetSiteConfig("unknown.example")
		if site.Cookie != "default=1" {
			t.Errorf("cookie = %q, want default", site.Cookie)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("sites: [not a map"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}
