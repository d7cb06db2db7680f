package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/chronicle/internal/timeline"
)

func testDocument() *timeline.Document {
	return &timeline.Document{
		Owner:       "acme",
		Repo:        "widgets",
		Branch:      "main",
		GeneratedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Records: []timeline.CommitRecord{
			{
				SHA:     "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
				Date:    "2023-05-01T12:00:00Z",
				Message: "Initial commit",
				Author:  "Ada",
				Files: []timeline.FileChange{
					{Filename: "main.go", Status: timeline.StatusAdded, Additions: 1, Patch: "@@ -0,0 +1 @@\n+package main"},
				},
				Diff: "--- a/main.go\n+++ b/main.go\n@@ -0,0 +1 @@\n+package main",
			},
			{
				SHA:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
				Date:    "2023-05-02T08:00:00Z",
				Message: "Add logo\n\nBinary asset only.",
				Author:  "Grace",
				Files: []timeline.FileChange{
					{Filename: "logo.png", Status: timeline.StatusAdded},
				},
				Diff: "--- a/logo.png\n+++ b/logo.png\n# (added) No textual diff available.",
			},
		},
	}
}

func TestGetWriter(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"html", false},
		{"", false},
		{"json", false},
		{"markdown", false},
		{"md", false},
		{"pdf", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w, err := GetWriter(tt.format, Options{})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unsupported format")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w == nil {
				t.Fatal("writer is nil")
			}
		})
	}
}

func TestDefaultOutPath(t *testing.T) {
	tests := []struct {
		repo, branch, format string
		want                 string
	}{
		{"widgets", "main", "html", "widgets-main-timeline.html"},
		{"widgets", "feature/x", "json", "widgets-feature-x-timeline.json"},
		{"widgets", "dev", "markdown", "widgets-dev-timeline.md"},
	}
	for _, tt := range tests {
		if got := DefaultOutPath(tt.repo, tt.branch, tt.format); got != tt.want {
			t.Errorf("DefaultOutPath(%q, %q, %q) = %q, want %q", tt.repo, tt.branch, tt.format, got, tt.want)
		}
	}
}

func TestWriteDocument_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	n, err := WriteDocument(testDocument(), "json", path, Options{})
	if err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Errorf("reported %d bytes, file has %d", n, len(data))
	}

	var got timeline.Document
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if diff := cmp.Diff(testDocument(), &got); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the output file in %s, found %d entries", dir, len(entries))
	}
}

func TestWriteDocument_UnwritableLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "out.html")

	if _, err := WriteDocument(testDocument(), "html", path, Options{}); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat err = %v", err)
	}
}

func TestWriteDocument_KeepsExistingOnRenderError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteDocument(testDocument(), "pdf", path, Options{}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "previous" {
		t.Errorf("existing file was modified: %q", data)
	}
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &MarkdownWriter{Options: Options{Title: "Widgets <history>"}}
	if err := w.Write(&buf, testDocument()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Widgets &lt;history&gt;",
		"2 commits",
		"## 1. Initial commit",
		"## 2. Add logo",
		"[`bbbbbbb`](https://github.com/acme/widgets/commit/bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb)",
		"Binary asset only.",
		"```diff\n--- a/main.go",
		"# (added) No textual diff available.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Index(out, "Initial commit") > strings.Index(out, "Add logo") {
		t.Error("commits are not in document order")
	}
}

func TestDiffFence(t *testing.T) {
	tests := []struct {
		diff string
		want string
	}{
		{"+plain", "```"},
		{"+uses `code`", "```"},
		{"+```go", "````"},
		{"+`````", "``````"},
	}
	for _, tt := range tests {
		if got := diffFence(tt.diff); got != tt.want {
			t.Errorf("diffFence(%q) = %q, want %q", tt.diff, got, tt.want)
		}
	}
}

func TestJSONWriter_KeepsMarkup(t *testing.T) {
	doc := testDocument()
	doc.Records[0].Diff = "+if a < b && c > d {"
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `"diff": "+if a < b && c > d {"`) {
		t.Errorf("diff was rewritten:\n%s", buf.String())
	}
}
