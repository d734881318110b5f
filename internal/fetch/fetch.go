package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/seolens/seolens/internal/model"
)

// Client performs bounded GET requests for the crawl pipeline.
//
// Design decision: We use a struct wrapping an http.Client rather than
// package-level functions because:
//  1. Header and body-limit configuration should be consistent
//  2. Connection pooling works better with one shared client
//  3. Tests can inject an httptest server client
type Client struct {
	// httpClient performs the actual requests.
	httpClient *http.Client

	// userAgent is sent as the User-Agent header on every request.
	userAgent string

	// maxBodySize limits response bodies; exceeding it fails the fetch
	// with an oversize error.
	maxBodySize int64

	// headers are extra headers (from site configuration) added to
	// every request.
	headers map[string]string

	// cookie is an optional Cookie header value from site configuration.
	cookie string

	// timeout bounds each request. Applied on top of whatever deadline
	// the caller's context already carries.
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client. Used by tests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Client) {
		f.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Client) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the response body ceiling in bytes.
func WithMaxBodySize(size int64) Option {
	return func(f *Client) {
		f.maxBodySize = size
	}
}

// WithHeaders sets extra headers added to every request.
func WithHeaders(headers map[string]string) Option {
	return func(f *Client) {
		f.headers = headers
	}
}

// WithCookie sets the Cookie header value for every request.
func WithCookie(cookie string) Option {
	return func(f *Client) {
		f.cookie = cookie
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Client) {
		f.timeout = d
	}
}

// NewClient creates a Client with sane defaults: 10 second timeout and
// a 5MB body ceiling.
func NewClient(opts ...Option) *Client {
	f := &Client{
		httpClient:  &http.Client{},
		userAgent:   "seolens/1.0",
		maxBodySize: 5 * 1024 * 1024,
		timeout:     10 * time.Second,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Response is the outcome of a successful fetch. "Successful" means the
// request completed and the body fit under the ceiling; the status code
// may still be anything.
type Response struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP response status.
	StatusCode int

	// Headers contains the response headers.
	Headers http.Header

	// Body is the raw response body. Compressed sitemap payloads arrive
	// here undecoded; HTML consumers should go through DecodedHTML.
	Body []byte

	// ContentType is the Content-Type header value.
	ContentType string

	// LoadTime is how long the request took.
	LoadTime time.Duration
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodedHTML returns the body as a UTF-8 string, converting from the
// charset declared in the Content-Type header (or sniffed from the
// content) when necessary. Falls back to the raw bytes if conversion
// fails, since a mostly-ASCII page is still analyzable.
func (r *Response) DecodedHTML() string {
	reader, err := charset.NewReader(strings.NewReader(string(r.Body)), r.ContentType)
	if err != nil {
		return string(r.Body)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(r.Body)
	}
	return string(decoded)
}

// Get fetches a URL. The caller's context deadline and the client's own
// timeout both apply; whichever expires first aborts just this request.
//
// The returned error, when non-nil, is always a *Error classified into
// the crawl taxonomy.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Kind: model.ErrKindValidation, URL: rawURL, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: model.ErrKindNetwork, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	// Read one byte past the ceiling so oversize is detectable without
	// buffering the whole oversized payload.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, &Error{Kind: model.ErrKindNetwork, URL: rawURL, Err: err}
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, &Error{Kind: model.ErrKindOversize, URL: rawURL, Err: ErrBodyTooLarge}
	}

	return &Response{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		Headers:     resp.Header,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		LoadTime:    time.Since(start),
	}, nil
}
