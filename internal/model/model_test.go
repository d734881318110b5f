package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIssueTypeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  IssueType
		want string
	}{
		{IssueError, "error"},
		{IssueWarning, "warning"},
		{IssueSuccess, "success"},
		{IssueInfo, "info"},
		{IssueType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("IssueType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestNewIssuePopulatesTextFields(t *testing.T) {
	t.Parallel()

	issue := NewIssue(IssueWarning, PriorityMedium, "title", "title too short")
	if issue.TypeText != "warning" {
		t.Errorf("TypeText = %q, want %q", issue.TypeText, "warning")
	}
	if issue.PriorityText != "medium" {
		t.Errorf("PriorityText = %q, want %q", issue.PriorityText, "medium")
	}

	data, err := json.Marshal(issue)
	if err != nil {
		t.Fatalf("marshal issue: %v", err)
	}
	if !strings.Contains(string(data), `"type":"warning"`) {
		t.Errorf("serialized issue missing type text: %s", data)
	}
	if !strings.Contains(string(data), `"priority":"medium"`) {
		t.Errorf("serialized issue missing priority text: %s", data)
	}
}

func TestDegradedOutcome(t *testing.T) {
	t.Parallel()

	outcome := DegradedOutcome("headings", "panic: index out of range")

	if !outcome.Degraded {
		t.Error("expected Degraded to be true")
	}
	if outcome.Score != 0 {
		t.Errorf("degraded outcome score = %v, want 0", outcome.Score)
	}
	if len(outcome.Issues) != 1 {
		t.Fatalf("expected exactly 1 issue, got %d", len(outcome.Issues))
	}

	issue := outcome.Issues[0]
	if issue.Type != IssueError {
		t.Errorf("issue type = %v, want error", issue.Type)
	}
	if issue.Priority != PriorityHigh {
		t.Errorf("issue priority = %v, want high", issue.Priority)
	}
	if !strings.Contains(issue.Message, "headings") {
		t.Errorf("issue message should name the failed analyzer, got %q", issue.Message)
	}
}

func TestNewFailedPage(t *testing.T) {
	t.Parallel()

	page := NewFailedPage("http://example.com/broken", ErrKindOversize, "body exceeds 5242880 bytes")

	if page.Status != PageFailed {
		t.Errorf("status = %v, want failed", page.Status)
	}
	if page.StatusText != "failed" {
		t.Errorf("status text = %q, want %q", page.StatusText, "failed")
	}
	if page.Error == nil {
		t.Fatal("expected error descriptor")
	}
	if page.Error.Kind != ErrKindOversize {
		t.Errorf("error kind = %v, want oversize", page.Error.Kind)
	}
	if page.Error.KindText != "oversize" {
		t.Errorf("error kind text = %q, want %q", page.Error.KindText, "oversize")
	}
}

func TestTargetSourceString(t *testing.T) {
	t.Parallel()

	if got := SourceSitemap.String(); got != "sitemap" {
		t.Errorf("SourceSitemap.String() = %q, want %q", got, "sitemap")
	}
	if got := SourceDiscovered.String(); got != "discovered" {
		t.Errorf("SourceDiscovered.String() = %q, want %q", got, "discovered")
	}
}
