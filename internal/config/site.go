package config

// SiteConfig holds per-site overrides for a single host. This allows
// auditing sites that need authentication cookies or custom headers,
// or that warrant a different frontier cap.
type SiteConfig struct {
	// Cookie is an HTTP cookie sent with requests to this site.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers sent with requests to this site.
	Headers map[string]string `yaml:"headers,omitempty"`

	// MaxURLs overrides the global frontier cap for this site.
	// If zero, the global MaxURLs is used.
	MaxURLs int `yaml:"maxUrls,omitempty"`

	// SitemapHint is an explicit sitemap URL to try before the
	// conventional paths. Useful for sites whose robots.txt omits the
	// Sitemap directive.
	SitemapHint string `yaml:"sitemapHint,omitempty"`
}

// File represents the structure of the .seolens configuration file.
type File struct {
	// Sites maps hostnames to their site-specific overrides.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults is applied to every site unless overridden per site.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a host, merging the
// site-specific entry over the defaults.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := cf.Defaults

	if site, ok := cf.Sites[host]; ok {
		if site.Cookie != "" {
			result.Cookie = site.Cookie
		}
		if site.MaxURLs != 0 {
			result.MaxURLs = site.MaxURLs
		}
		if site.SitemapHint != "" {
			result.SitemapHint = site.SitemapHint
		}
		if len(site.Headers) > 0 {
			if result.Headers == nil {
				result.Headers = make(map[string]string)
			}
			for k, v := range site.Headers {
				result.Headers[k] = v
			}
		}
	}

	return result
}
