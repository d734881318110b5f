package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/seolens/seolens/internal/model"
)

func TestClientGet(t *testing.T) {
	t.Parallel()

	t.Run("returns body and metadata", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "seolens") {
				t.Errorf("unexpected user agent %q", ua)
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer server.Close()

		client := NewClient()
		resp, err := client.Get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
		if !resp.OK() {
			t.Error("OK() = false for 200 response")
		}
		if !strings.Contains(string(resp.Body), "hello") {
			t.Errorf("body = %q", resp.Body)
		}
		if resp.LoadTime <= 0 {
			t.Error("load time not recorded")
		}
	})

	t.Run("sends site config headers and cookie", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("X-Audit"); got != "yes" {
				t.Errorf("X-Audit = %q, want %q", got, "yes")
			}
			if got := r.Header.Get("Cookie"); got != "session=abc" {
				t.Errorf("Cookie = %q, want %q", got, "session=abc")
			}
		}))
		defer server.Close()

		client := NewClient(
			WithHeaders(map[string]string{"X-Audit": "yes"}),
			WithCookie("session=abc"),
		)
		if _, err := client.Get(context.Background(), server.URL); err != nil {
			t.Fatalf("Get: %v", err)
		}
	})

	t.Run("oversize body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(make([]byte, 2048))
		}))
		defer server.Close()

		client := NewClient(WithMaxBodySize(1024))
		_, err := client.Get(context.Background(), server.URL)
		if err == nil {
			t.Fatal("expected oversize error")
		}
		if Kind(err) != model.ErrKindOversize {
			t.Errorf("kind = %v, want oversize", Kind(err))
		}
		if Retryable(err) {
			t.Error("oversize errors must not be retryable")
		}
		if !errors.Is(err, ErrBodyTooLarge) {
			t.Errorf("error chain missing ErrBodyTooLarge: %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
		}))
		defer server.Close()

		client := NewClient(WithTimeout(50 * time.Millisecond))
		_, err := client.Get(context.Background(), server.URL)
		if err == nil {
			t.Fatal("expected timeout error")
		}
		if Kind(err) != model.ErrKindNetwork {
			t.Errorf("kind = %v, want network", Kind(err))
		}
		if !Retryable(err) {
			t.Error("timeouts must be retryable")
		}
		if !IsTimeout(err) {
			t.Errorf("IsTimeout = false for %v", err)
		}
	})

	t.Run("non-2xx is not a fetch error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		client := NewClient()
		resp, err := client.Get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if resp.OK() {
			t.Error("OK() = true for 404 response")
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()

		client := NewClient()
		_, err := client.Get(context.Background(), "http://\x00bad")
		if err == nil {
			t.Fatal("expected error")
		}
		if Kind(err) != model.ErrKindValidation {
			t.Errorf("kind = %v, want validation", Kind(err))
		}
	})
}

func TestResponseDecodedHTML(t *testing.T) {
	t.Parallel()

	t.Run("utf8 passthrough", func(t *testing.T) {
		t.Parallel()

		resp := &Response{
			Body:        []byte("<html><body>héllo</body></html>"),
			ContentType: "text/html; charset=utf-8",
		}
		if got := resp.DecodedHTML(); !strings.Contains(got, "héllo") {
			t.Errorf("decoded = %q", got)
		}
	})

	t.Run("latin1 converted", func(t *testing.T) {
		t.Parallel()

		// "café" with é encoded as ISO-8859-1 byte 0xE9.
		resp := &Response{
			Body:        []byte{'c', 'a', 'f', 0xE9},
			ContentType: "text/html; charset=iso-8859-1",
		}
		if got := resp.DecodedHTML(); !strings.Contains(got, "café") {
			t.Errorf("decoded = %q", got)
		}
	})
}
