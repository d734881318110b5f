package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactHandlerMasksSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "cookie header", key: "cookie", value: "session=abc123"},
		{name: "authorization header", key: "Authorization", value: "Bearer xyz"},
		{name: "api key", key: "x-api-key", value: "k-12345"},
		{name: "password", key: "password", value: "hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))
			logger.Info("request sent", tt.key, tt.value)

			out := buf.String()
			if strings.Contains(out, tt.value) {
				t.Errorf("output leaked sensitive value %q: %s", tt.value, out)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("output missing mask value: %s", out)
			}
		})
	}
}

func TestRedactHandlerTruncatesLongValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

	long := strings.Repeat("x", MaxAttrLen*2)
	logger.Info("fetched page", "html", long)

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("long value was not truncated")
	}
	if !strings.Contains(out, "...") {
		t.Errorf("truncated value missing ellipsis: %s", out[:100])
	}
}

func TestRedactHandlerPreservesNormalAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))
	logger.Info("fetched page", "url", "http://example.com", "status", 200)

	out := buf.String()
	if !strings.Contains(out, "http://example.com") {
		t.Errorf("normal attribute was altered: %s", out)
	}
	if !strings.Contains(out, "status=200") {
		t.Errorf("numeric attribute was altered: %s", out)
	}
}

func TestRedactHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))
	logger = logger.With("token", "secret-token-value")
	logger.Info("step started")

	out := buf.String()
	if strings.Contains(out, "secret-token-value") {
		t.Errorf("With() attribute leaked: %s", out)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	quiet := NewLogger(&buf, false)
	quiet.Info("should not appear")
	if buf.Len() != 0 {
		t.Errorf("non-verbose logger emitted info output: %s", buf.String())
	}

	verbose := NewLogger(&buf, true)
	verbose.Debug("should appear")
	if buf.Len() == 0 {
		t.Error("verbose logger suppressed debug output")
	}
}
